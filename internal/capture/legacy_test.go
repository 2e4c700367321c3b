package capture

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/avnixm/pcapsum/internal/core"
)

var (
	magicLEMicro = []byte{0xD4, 0xC3, 0xB2, 0xA1}
	magicBEMicro = []byte{0xA1, 0xB2, 0xC3, 0xD4}
	magicLENano  = []byte{0x4D, 0x3C, 0xB2, 0xA1}
)

// writeLegacyHeader writes a 24-byte global header: version 2.4, zero
// timezone and sigfigs, the given snaplen and link type.
func writeLegacyHeader(buf *bytes.Buffer, magic []byte, order binary.ByteOrder, snaplen, linkType uint32) {
	buf.Write(magic)
	binary.Write(buf, order, uint16(2)) // version_major
	binary.Write(buf, order, uint16(4)) // version_minor
	binary.Write(buf, order, int32(0))  // thiszone
	binary.Write(buf, order, uint32(0)) // sigfigs
	binary.Write(buf, order, snaplen)
	binary.Write(buf, order, linkType)
}

func writeLegacyRecord(buf *bytes.Buffer, order binary.ByteOrder, tsSec, tsFrac uint32, data []byte, origLen uint32) {
	binary.Write(buf, order, tsSec)
	binary.Write(buf, order, tsFrac)
	binary.Write(buf, order, uint32(len(data)))
	binary.Write(buf, order, origLen)
	buf.Write(data)
}

func readAll(t *testing.T, r Reader) []core.PacketRecord {
	t.Helper()
	var records []core.PacketRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		records = append(records, rec)
	}
}

func TestLegacyReaderBasic(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLEMicro, binary.LittleEndian, 65535, 1)
	writeLegacyRecord(&buf, binary.LittleEndian, 1700000000, 500000, []byte{0xAA, 0xBB, 0xCC}, 60)
	writeLegacyRecord(&buf, binary.LittleEndian, 1700000001, 0, []byte{0xDD}, 1)

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	hdr := r.Header()
	if hdr.VersionMajor != 2 || hdr.VersionMinor != 4 {
		t.Errorf("Expected version 2.4, got %d.%d", hdr.VersionMajor, hdr.VersionMinor)
	}
	if hdr.SnapLen != 65535 {
		t.Errorf("Expected snaplen 65535, got %d", hdr.SnapLen)
	}
	if hdr.LinkType != 1 {
		t.Errorf("Expected link type 1, got %d", hdr.LinkType)
	}

	records := readAll(t, r)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Index != 1 || records[1].Index != 2 {
		t.Errorf("Expected 1-based indices, got %d and %d", records[0].Index, records[1].Index)
	}
	if math.Abs(records[0].Timestamp-1700000000.5) > 1e-6 {
		t.Errorf("Expected timestamp 1700000000.5, got %f", records[0].Timestamp)
	}
	if records[0].OriginalLen != 60 || records[0].CapturedLen != 3 {
		t.Errorf("Unexpected lengths: orig=%d captured=%d", records[0].OriginalLen, records[0].CapturedLen)
	}
	if !bytes.Equal(records[0].Data, []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("Unexpected frame data: %x", records[0].Data)
	}
	if r.Truncated() {
		t.Error("Clean end of capture must not be reported as truncated")
	}
}

func TestLegacyReaderBigEndian(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicBEMicro, binary.BigEndian, 262144, 113)
	writeLegacyRecord(&buf, binary.BigEndian, 100, 250000, []byte{0x01, 0x02}, 2)

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if !r.Header().BigEndian {
		t.Error("Expected big-endian header")
	}
	if r.Header().LinkType != 113 {
		t.Errorf("Expected link type 113, got %d", r.Header().LinkType)
	}

	records := readAll(t, r)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if math.Abs(records[0].Timestamp-100.25) > 1e-9 {
		t.Errorf("Expected timestamp 100.25, got %f", records[0].Timestamp)
	}
}

func TestLegacyReaderNanosecond(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLENano, binary.LittleEndian, 65535, 1)
	writeLegacyRecord(&buf, binary.LittleEndian, 7, 500000000, []byte{0x00}, 1)

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	records := readAll(t, r)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if math.Abs(records[0].Timestamp-7.5) > 1e-9 {
		t.Errorf("Expected timestamp 7.5, got %f", records[0].Timestamp)
	}
}

func TestLegacyReaderTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLEMicro, binary.LittleEndian, 65535, 1)
	writeLegacyRecord(&buf, binary.LittleEndian, 1, 0, []byte{0x11, 0x22}, 2)
	// Final record declares 100 payload bytes but carries only 4.
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(100))
	binary.Write(&buf, binary.LittleEndian, uint32(100))
	buf.Write([]byte{0x01, 0x02, 0x03, 0x04})

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	records := readAll(t, r)
	if len(records) != 1 {
		t.Fatalf("Expected 1 intact record, got %d", len(records))
	}
	if !r.Truncated() {
		t.Error("Short payload must be reported as truncation")
	}
}

func TestLegacyReaderPartialRecordHeader(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLEMicro, binary.LittleEndian, 65535, 1)
	writeLegacyRecord(&buf, binary.LittleEndian, 1, 0, []byte{0xAB}, 1)
	buf.Write([]byte{0x01, 0x02, 0x03}) // 3 stray bytes of a record header

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	records := readAll(t, r)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if !r.Truncated() {
		t.Error("Partial record header must be reported as truncation")
	}
}

func TestLegacyReaderOversizedRecordLength(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLEMicro, binary.LittleEndian, 65535, 1)
	// Adversarial incl_len: don't let it turn into an allocation.
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(0xFFFFFFFF))
	binary.Write(&buf, binary.LittleEndian, uint32(0xFFFFFFFF))

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	records := readAll(t, r)
	if len(records) != 0 {
		t.Fatalf("Expected no records, got %d", len(records))
	}
	if !r.Truncated() {
		t.Error("Oversized record length must be reported as truncation")
	}
}

func TestLegacyReaderEmptyCapture(t *testing.T) {
	var buf bytes.Buffer
	writeLegacyHeader(&buf, magicLEMicro, binary.LittleEndian, 65535, 1)

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if records := readAll(t, r); len(records) != 0 {
		t.Fatalf("Expected no records, got %d", len(records))
	}
	if r.Truncated() {
		t.Error("A header-only capture is complete, not truncated")
	}
}
