// Package core defines core data structures shared by the capture readers,
// the frame decoder, and the analyzer.
package core

// Format identifies the container format of a capture file.
type Format string

const (
	FormatLegacy Format = "Legacy"
	FormatPCAPNG Format = "PCAPNG"
)

// LinkTypeEthernet is the DLT code for Ethernet framing.
const LinkTypeEthernet = 1

// CaptureHeader carries per-scan metadata derived from the capture's global
// or section header. Immutable once the reader has produced it.
type CaptureHeader struct {
	Format    Format
	BigEndian bool
	LinkType  uint32
	// TimeDivisor is timestamp ticks per second: 1e6 or 1e9 for legacy
	// captures, the if_tsresol-derived resolution for PCAPNG.
	TimeDivisor float64
	SnapLen     uint32

	// Legacy-only header fields, zero for PCAPNG.
	VersionMajor uint16
	VersionMinor uint16
	ThisZone     int32
	SigFigs      uint32
}

// PacketRecord is one captured packet as read from the file.
type PacketRecord struct {
	Index       int     // 1-based sequence number within the capture
	Timestamp   float64 // seconds since the Unix epoch
	CapturedLen uint32
	OriginalLen uint32
	LinkType    uint32 // link type in effect for this record
	Data        []byte
}
