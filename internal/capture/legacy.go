package capture

import (
	"bufio"
	"encoding/binary"
	"io"
	"log/slog"

	"github.com/avnixm/pcapsum/internal/core"
)

const (
	legacyHeaderLen = 24
	recordHeaderLen = 16

	microDivisor = 1e6
	nanoDivisor  = 1e9
)

// legacyMagic maps the four legacy magic byte sequences to the byte order
// and timestamp divisor they imply. The on-disk bytes D4C3B2A1 are the
// little-endian encoding of the canonical magic 0xA1B2C3D4.
func legacyMagic(magic []byte) (binary.ByteOrder, float64, bool) {
	switch {
	case magic[0] == 0xD4 && magic[1] == 0xC3 && magic[2] == 0xB2 && magic[3] == 0xA1:
		return binary.LittleEndian, microDivisor, true
	case magic[0] == 0xA1 && magic[1] == 0xB2 && magic[2] == 0xC3 && magic[3] == 0xD4:
		return binary.BigEndian, microDivisor, true
	case magic[0] == 0x4D && magic[1] == 0x3C && magic[2] == 0xB2 && magic[3] == 0xA1:
		return binary.LittleEndian, nanoDivisor, true
	case magic[0] == 0xA1 && magic[1] == 0xB2 && magic[2] == 0x3C && magic[3] == 0x4D:
		return binary.BigEndian, nanoDivisor, true
	default:
		return nil, 0, false
	}
}

// legacyReader streams records of a classic libpcap capture.
type legacyReader struct {
	br        *bufio.Reader
	order     binary.ByteOrder
	header    core.CaptureHeader
	index     int
	truncated bool
	done      bool
}

func newLegacyReader(br *bufio.Reader, order binary.ByteOrder, divisor float64) (*legacyReader, error) {
	var global [legacyHeaderLen]byte
	if _, err := io.ReadFull(br, global[:]); err != nil {
		return nil, core.ErrFileTooShort
	}

	header := core.CaptureHeader{
		Format:       core.FormatLegacy,
		BigEndian:    order == binary.BigEndian,
		TimeDivisor:  divisor,
		VersionMajor: order.Uint16(global[4:6]),
		VersionMinor: order.Uint16(global[6:8]),
		ThisZone:     int32(order.Uint32(global[8:12])),
		SigFigs:      order.Uint32(global[12:16]),
		SnapLen:      order.Uint32(global[16:20]),
		LinkType:     order.Uint32(global[20:24]),
	}

	return &legacyReader{br: br, order: order, header: header}, nil
}

func (r *legacyReader) Header() core.CaptureHeader { return r.header }

func (r *legacyReader) Truncated() bool { return r.truncated }

func (r *legacyReader) Next() (core.PacketRecord, error) {
	if r.done {
		return core.PacketRecord{}, io.EOF
	}

	var hdr [recordHeaderLen]byte
	if _, err := io.ReadFull(r.br, hdr[:]); err != nil {
		// A clean EOF on a record boundary is the normal end of the
		// capture; a partial header is structural truncation.
		r.stop(err != io.EOF, "partial record header")
		return core.PacketRecord{}, io.EOF
	}

	tsSec := r.order.Uint32(hdr[0:4])
	tsFrac := r.order.Uint32(hdr[4:8])
	inclLen := r.order.Uint32(hdr[8:12])
	origLen := r.order.Uint32(hdr[12:16])

	if inclLen > maxFrameLen {
		r.stop(true, "record length exceeds sanity cap")
		return core.PacketRecord{}, io.EOF
	}

	data := make([]byte, inclLen)
	if _, err := io.ReadFull(r.br, data); err != nil {
		r.stop(true, "record payload runs past end of file")
		return core.PacketRecord{}, io.EOF
	}

	r.index++
	return core.PacketRecord{
		Index:       r.index,
		Timestamp:   float64(tsSec) + float64(tsFrac)/r.header.TimeDivisor,
		CapturedLen: inclLen,
		OriginalLen: origLen,
		LinkType:    r.header.LinkType,
		Data:        data,
	}, nil
}

func (r *legacyReader) stop(truncated bool, reason string) {
	r.done = true
	if truncated && !r.truncated {
		r.truncated = true
		slog.Debug("legacy capture ended early", "reason", reason, "records", r.index)
	}
}
