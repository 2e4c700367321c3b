package analyzer

import (
	"encoding/hex"

	"github.com/avnixm/pcapsum/internal/core"
)

const (
	// sampleCap bounds the sample list regardless of the packet limit.
	sampleCap = 25
	// hexPreviewLen bounds the optional hex preview of a sampled packet.
	hexPreviewLen = 64
)

type conversationKey struct {
	src, dst, protocol string
}

type conversationStat struct {
	packets uint64
	bytes   uint64
}

// aggregator accumulates per-frame statistics for one scan.
type aggregator struct {
	limit      uint
	includeHex bool
	maxSamples int

	packets   uint64
	bytes     uint64
	truncated bool

	protocols     map[string]uint64
	talkers       map[string]uint64
	conversations map[conversationKey]*conversationStat
	samples       []core.PacketSample

	haveSpan bool
	firstTS  float64
	lastTS   float64
}

func newAggregator(limit uint, includeHex bool) *aggregator {
	maxSamples := sampleCap
	if limit < sampleCap {
		maxSamples = int(limit)
	}
	return &aggregator{
		limit:         limit,
		includeHex:    includeHex,
		maxSamples:    maxSamples,
		protocols:     make(map[string]uint64),
		talkers:       make(map[string]uint64),
		conversations: make(map[conversationKey]*conversationStat),
	}
}

// add folds one decoded frame into the running aggregates.
func (a *aggregator) add(rec core.PacketRecord, frame core.ParsedFrame) {
	a.packets++
	a.bytes += uint64(rec.OriginalLen)

	if !a.haveSpan {
		a.firstTS = rec.Timestamp
		a.haveSpan = true
	}
	a.lastTS = rec.Timestamp

	a.protocols[frame.Protocol]++

	if frame.SrcIP != "" {
		a.talkers[frame.SrcIP]++
	}
	if frame.DstIP != "" {
		a.talkers[frame.DstIP]++
	}

	key := conversationKey{src: frame.SrcLabel(), dst: frame.DstLabel(), protocol: frame.Protocol}
	stat := a.conversations[key]
	if stat == nil {
		stat = &conversationStat{}
		a.conversations[key] = stat
	}
	stat.packets++
	stat.bytes += uint64(rec.OriginalLen)

	if len(a.samples) < a.maxSamples {
		a.samples = append(a.samples, a.buildSample(rec, frame))
	}
}

// limitReached reports whether the caller-supplied packet limit is hit.
func (a *aggregator) limitReached() bool {
	return a.packets >= uint64(a.limit)
}

func (a *aggregator) buildSample(rec core.PacketRecord, frame core.ParsedFrame) core.PacketSample {
	sample := core.PacketSample{
		Index:     rec.Index,
		Timestamp: isoTimestamp(rec.Timestamp),
		Protocol:  frame.Protocol,
		Length:    len(rec.Data),
		Info:      frame.Info,
	}
	if src := frame.SrcLabel(); src != "unknown" {
		sample.Src = src
	}
	if dst := frame.DstLabel(); dst != "unknown" {
		sample.Dst = dst
	}
	if a.includeHex && len(rec.Data) > 0 {
		preview := rec.Data
		if len(preview) > hexPreviewLen {
			preview = preview[:hexPreviewLen]
		}
		sample.HexPreview = hex.EncodeToString(preview)
	}
	return sample
}
