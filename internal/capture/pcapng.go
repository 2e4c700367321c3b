package capture

import (
	"bufio"
	"encoding/binary"
	"io"
	"log/slog"
	"math"

	"github.com/avnixm/pcapsum/internal/core"
)

// Block types.
const (
	blockTypeSHB = 0x0A0D0D0A
	blockTypeIDB = 0x00000001
	blockTypeEPB = 0x00000006
)

// Section Header Block byte-order magic, as written by a little-endian
// producer. A big-endian producer writes it byte-swapped.
const (
	byteOrderMagic        = 0x1A2B3C4D
	byteOrderMagicSwapped = 0x4D3C2B1A
)

// Interface Description Block option codes.
const (
	optEndOfOpt = 0
	optTSResol  = 9
)

const (
	blockOverhead = 12 // type + length + trailing length
	epbFixedLen   = 20 // interface id, ts high/low, captured len, original len
	shbMinLen     = 28 // smallest well-formed Section Header Block
)

func isPCAPNGMagic(magic []byte) bool {
	return magic[0] == 0x0A && magic[1] == 0x0D && magic[2] == 0x0D && magic[3] == 0x0A
}

// ngReader streams Enhanced Packet Blocks of a PCAPNG capture. Link type and
// timestamp resolution follow the most recent Interface Description Block.
type ngReader struct {
	br         *bufio.Reader
	order      binary.ByteOrder
	bigEndian  bool
	linkType   uint32
	resolution float64
	index      int
	truncated  bool
	done       bool
}

func newNGReader(br *bufio.Reader) (*ngReader, error) {
	// The SHB header must be read before the byte order is known: type and
	// byte-order magic are position-detectable, the length field is not.
	var head [12]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return nil, core.ErrFileTooShort
	}

	order := binary.ByteOrder(binary.LittleEndian)
	switch binary.LittleEndian.Uint32(head[8:12]) {
	case byteOrderMagic:
		order = binary.LittleEndian
	case byteOrderMagicSwapped:
		order = binary.BigEndian
	}

	r := &ngReader{
		br:         br,
		order:      order,
		bigEndian:  order == binary.BigEndian,
		linkType:   core.LinkTypeEthernet,
		resolution: microDivisor,
	}

	// Skip the remainder of the SHB, validating its trailing length. The
	// 12 bytes already consumed leave blockLen-12 bytes, trailer included.
	blockLen := order.Uint32(head[4:8])
	if blockLen < shbMinLen || blockLen > maxBlockLen {
		r.stop(true, "section header block length out of range")
		return r, nil
	}
	rest := make([]byte, blockLen-blockOverhead)
	if _, err := io.ReadFull(br, rest); err != nil {
		r.stop(true, "section header block runs past end of file")
		return r, nil
	}
	if order.Uint32(rest[len(rest)-4:]) != blockLen {
		r.stop(true, "section header trailing length mismatch")
	}
	return r, nil
}

func (r *ngReader) Header() core.CaptureHeader {
	return core.CaptureHeader{
		Format:      core.FormatPCAPNG,
		BigEndian:   r.bigEndian,
		LinkType:    r.linkType,
		TimeDivisor: r.resolution,
	}
}

func (r *ngReader) Truncated() bool { return r.truncated }

func (r *ngReader) Next() (core.PacketRecord, error) {
	for {
		if r.done {
			return core.PacketRecord{}, io.EOF
		}

		var head [8]byte
		if _, err := io.ReadFull(r.br, head[:]); err != nil {
			r.stop(err != io.EOF, "partial block header")
			return core.PacketRecord{}, io.EOF
		}

		blockType := r.order.Uint32(head[0:4])
		blockLen := r.order.Uint32(head[4:8])
		if blockLen < blockOverhead || blockLen > maxBlockLen {
			r.stop(true, "block length out of range")
			return core.PacketRecord{}, io.EOF
		}

		body := make([]byte, blockLen-blockOverhead)
		if _, err := io.ReadFull(r.br, body); err != nil {
			r.stop(true, "block body runs past end of file")
			return core.PacketRecord{}, io.EOF
		}
		var trailer [4]byte
		if _, err := io.ReadFull(r.br, trailer[:]); err != nil {
			r.stop(true, "block trailer runs past end of file")
			return core.PacketRecord{}, io.EOF
		}
		if r.order.Uint32(trailer[:]) != blockLen {
			r.stop(true, "block trailing length mismatch")
			return core.PacketRecord{}, io.EOF
		}

		switch blockType {
		case blockTypeIDB:
			r.applyInterfaceDescription(body)
		case blockTypeEPB:
			if rec, ok := r.packetFromEPB(body); ok {
				return rec, nil
			}
			// Malformed EPB body: skip the block, keep scanning.
		default:
			// All other block types are skipped by their declared length.
		}
	}
}

// applyInterfaceDescription records the link type and timestamp resolution
// announced by an Interface Description Block.
func (r *ngReader) applyInterfaceDescription(body []byte) {
	if len(body) < 8 {
		return
	}
	r.linkType = uint32(r.order.Uint16(body[0:2]))

	// Option walk: (code:u16, len:u16, value) with values padded to 4 bytes.
	opts := body[8:]
	for len(opts) >= 4 {
		code := r.order.Uint16(opts[0:2])
		valLen := int(r.order.Uint16(opts[2:4]))
		if code == optEndOfOpt {
			break
		}
		if valLen > len(opts)-4 {
			break
		}
		if code == optTSResol && valLen >= 1 {
			r.resolution = tsResolution(opts[4])
		}
		advance := 4 + valLen
		advance += (4 - advance%4) % 4
		if advance > len(opts) {
			break
		}
		opts = opts[advance:]
	}
}

// tsResolution interprets an if_tsresol byte: with the high bit set the
// resolution is 2^(b&0x7F) ticks per second, otherwise 10^b.
func tsResolution(b byte) float64 {
	if b&0x80 != 0 {
		return math.Pow(2, float64(b&0x7F))
	}
	return math.Pow(10, float64(b))
}

// packetFromEPB extracts one record from an Enhanced Packet Block body.
func (r *ngReader) packetFromEPB(body []byte) (core.PacketRecord, bool) {
	if len(body) < epbFixedLen {
		return core.PacketRecord{}, false
	}

	tsHigh := r.order.Uint32(body[4:8])
	tsLow := r.order.Uint32(body[8:12])
	capturedLen := r.order.Uint32(body[12:16])
	origLen := r.order.Uint32(body[16:20])

	data := body[epbFixedLen:]
	if uint32(len(data)) > capturedLen {
		data = data[:capturedLen] // strip block padding
	}

	ts := (uint64(tsHigh) << 32) | uint64(tsLow)
	r.index++
	return core.PacketRecord{
		Index:       r.index,
		Timestamp:   float64(ts) / r.resolution,
		CapturedLen: capturedLen,
		OriginalLen: origLen,
		LinkType:    r.linkType,
		Data:        data,
	}, true
}

func (r *ngReader) stop(truncated bool, reason string) {
	r.done = true
	if truncated && !r.truncated {
		r.truncated = true
		slog.Debug("pcapng capture ended early", "reason", reason, "records", r.index)
	}
}
