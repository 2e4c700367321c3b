// Package capture reads Legacy PCAP and PCAPNG container files.
//
// Both readers stream records one at a time and never load the whole file
// into memory. Structural problems mid-file (a record or block running past
// end-of-file, a bad trailing length) end the stream instead of failing it:
// hand-crafted and corrupted captures are the norm in forensic work, and the
// packets read so far are still worth reporting.
package capture

import (
	"bufio"
	"io"

	"github.com/avnixm/pcapsum/internal/core"
)

// Reader iterates the packet records of one capture file.
type Reader interface {
	// Header returns the capture-level metadata. For PCAPNG it reflects
	// the most recently seen Interface Description Block.
	Header() core.CaptureHeader

	// Next returns the next packet record, or io.EOF when the capture is
	// exhausted. No other errors are returned: short or corrupt trailing
	// data ends the stream and is reported through Truncated.
	Next() (core.PacketRecord, error)

	// Truncated reports whether the stream ended because of structural
	// corruption rather than a clean end-of-file.
	Truncated() bool
}

// Sanity caps for attacker-controlled length fields. Declared lengths above
// these are treated as corruption, not as allocation requests.
const (
	maxFrameLen = 1 << 20 // legacy incl_len
	maxBlockLen = 1 << 24 // pcapng block_length
)

// NewReader sniffs the leading bytes of r and returns the matching reader.
// Unrecognized magic yields core.ErrUnknownFormat; a file too short to
// carry a capture header yields core.ErrFileTooShort.
func NewReader(r io.Reader) (Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, core.ErrFileTooShort
	}

	if isPCAPNGMagic(magic) {
		return newNGReader(br)
	}
	if order, divisor, ok := legacyMagic(magic); ok {
		return newLegacyReader(br, order, divisor)
	}
	return nil, core.ErrUnknownFormat
}
