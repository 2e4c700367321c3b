package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/avnixm/pcapsum/internal/core"
	"github.com/avnixm/pcapsum/internal/decoder"
)

const topN = 10

// Unix timestamps representable as a calendar date. Values outside this
// range (or non-finite ones) fall back to a raw numeric rendering instead
// of failing the scan: crafted captures carry nonsense timestamps.
const (
	minValidUnix = -62135596800 // year 1
	maxValidUnix = 253402300799 // year 9999
)

// build assembles the final summary from the accumulated aggregates.
func (a *aggregator) build(file string, hdr core.CaptureHeader) *core.CaptureSummary {
	summary := &core.CaptureSummary{
		File:              file,
		Format:            hdr.Format,
		PacketsAnalyzed:   a.packets,
		BytesObserved:     a.bytes,
		PacketLimit:       a.limit,
		Truncated:         a.truncated,
		LinkType:          decoder.LinkTypeName(hdr.LinkType),
		ProtocolBreakdown: a.sortedProtocols(),
		TopTalkers:        a.sortedTalkers(),
		TopConversations:  a.sortedConversations(),
		Samples:           a.samples,
	}
	if summary.Samples == nil {
		summary.Samples = []core.PacketSample{}
	}

	if hdr.Format == core.FormatLegacy {
		summary.PcapVersion = fmt.Sprintf("%d.%d", hdr.VersionMajor, hdr.VersionMinor)
		tz, sigfigs, snaplen := hdr.ThisZone, hdr.SigFigs, hdr.SnapLen
		summary.TimezoneOffset = &tz
		summary.SigFigs = &sigfigs
		summary.SnapLen = &snaplen
	}

	if a.haveSpan {
		summary.CapturePeriod = capturePeriod(a.firstTS, a.lastTS)
	}
	return summary
}

func (a *aggregator) sortedProtocols() []core.ProtocolCount {
	out := make([]core.ProtocolCount, 0, len(a.protocols))
	for proto, count := range a.protocols {
		out = append(out, core.ProtocolCount{Protocol: proto, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Protocol < out[j].Protocol
	})
	return out
}

func (a *aggregator) sortedTalkers() []core.TalkerCount {
	out := make([]core.TalkerCount, 0, len(a.talkers))
	for addr, count := range a.talkers {
		out = append(out, core.TalkerCount{Address: addr, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Address < out[j].Address
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func (a *aggregator) sortedConversations() []core.Conversation {
	out := make([]core.Conversation, 0, len(a.conversations))
	for key, stat := range a.conversations {
		out = append(out, core.Conversation{
			Src:      key.src,
			Dst:      key.dst,
			Protocol: key.protocol,
			Packets:  stat.packets,
			Bytes:    stat.bytes,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Packets != out[j].Packets {
			return out[i].Packets > out[j].Packets
		}
		if out[i].Bytes != out[j].Bytes {
			return out[i].Bytes > out[j].Bytes
		}
		if out[i].Src != out[j].Src {
			return out[i].Src < out[j].Src
		}
		return out[i].Dst < out[j].Dst
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// capturePeriod renders the scan's time span, falling back to raw numeric
// values when a timestamp cannot be represented as a date.
func capturePeriod(start, end float64) *core.CapturePeriod {
	duration := end - start
	if duration < 0 || math.IsNaN(duration) {
		duration = 0
	}
	if !validTimestamp(start) || !validTimestamp(end) {
		return &core.CapturePeriod{
			Start:           fmt.Sprintf("raw:%v", start),
			End:             fmt.Sprintf("raw:%v", end),
			DurationSeconds: duration,
		}
	}
	return &core.CapturePeriod{
		Start:           isoTimestamp(start),
		End:             isoTimestamp(end),
		DurationSeconds: math.Round(duration*1e6) / 1e6,
	}
}

func validTimestamp(ts float64) bool {
	return !math.IsNaN(ts) && !math.IsInf(ts, 0) && ts >= minValidUnix && ts <= maxValidUnix
}

// isoTimestamp renders a float Unix timestamp as ISO-8601 UTC, or the
// "invalid-timestamp" placeholder when out of range.
func isoTimestamp(ts float64) string {
	if !validTimestamp(ts) {
		return "invalid-timestamp"
	}
	sec := math.Floor(ts)
	nsec := int64(math.Round((ts - sec) * 1e9))
	return time.Unix(int64(sec), nsec).UTC().Format(time.RFC3339Nano)
}
