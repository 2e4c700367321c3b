// Package analyzer turns one capture file into a CaptureSummary.
//
// A scan is a single synchronous pass: open, sniff, stream records, decode,
// aggregate, build. No state survives the call, so independent scans may run
// concurrently without synchronization.
package analyzer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/avnixm/pcapsum/internal/capture"
	"github.com/avnixm/pcapsum/internal/core"
	"github.com/avnixm/pcapsum/internal/decoder"
)

// DefaultPacketLimit bounds a scan when the caller does not say otherwise.
const DefaultPacketLimit = 200

// Options control one summarization call.
type Options struct {
	// PacketLimit is the hard stop on analyzed packets. Zero means
	// DefaultPacketLimit.
	PacketLimit uint
	// IncludeHex adds a bounded hex preview to each sampled packet.
	IncludeHex bool
}

// Summarize scans the capture file at path and returns its summary.
//
// Only two conditions abort the call: an unreadable file and an
// unrecognized container format. Structural truncation mid-file, malformed
// frames, and hitting the packet limit all degrade into the summary's
// truncated flag and coarse protocol labels.
func Summarize(path string, opts Options) (*core.CaptureSummary, error) {
	limit := opts.PacketLimit
	if limit == 0 {
		limit = DefaultPacketLimit
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pcapsum: open capture: %w", err)
	}
	defer f.Close()

	reader, err := capture.NewReader(f)
	if err != nil {
		return nil, err
	}

	agg := newAggregator(limit, opts.IncludeHex)
	for !agg.limitReached() {
		rec, err := reader.Next()
		if err != nil {
			break
		}
		agg.add(rec, decoder.Decode(rec.Data, rec.LinkType))
	}
	if agg.limitReached() {
		// The limit only counts as truncation when it cut something off.
		if _, err := reader.Next(); err == nil {
			agg.truncated = true
		}
	}
	if reader.Truncated() {
		agg.truncated = true
	}

	file := path
	if abs, err := filepath.Abs(path); err == nil {
		file = abs
	}

	hdr := reader.Header()
	slog.Debug("capture scan finished",
		"file", file,
		"format", hdr.Format,
		"packets", agg.packets,
		"truncated", agg.truncated,
	)
	return agg.build(file, hdr), nil
}
