package decoder

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/avnixm/pcapsum/internal/core"
)

const (
	portFieldsLen   = 4  // src + dst port
	tcpFlagsByteOff = 13 // flags byte within the TCP header
)

// tcpFlagTable maps flag bits to their names, lowest bit first.
var tcpFlagTable = []struct {
	mask byte
	name string
}{
	{0x01, "FIN"},
	{0x02, "SYN"},
	{0x04, "RST"},
	{0x08, "PSH"},
	{0x10, "ACK"},
	{0x20, "URG"},
	{0x40, "ECE"},
	{0x80, "CWR"},
}

// decodeTCPUDP extracts ports and, for TCP, the flag set. A transport header
// too short for ports leaves the frame with bare IP endpoints.
func decodeTCPUDP(frame core.ParsedFrame, protocol string, transport []byte) core.ParsedFrame {
	frame.Protocol = protocol
	if len(transport) < portFieldsLen {
		return frame
	}

	frame.SrcPort = binary.BigEndian.Uint16(transport[0:2])
	frame.DstPort = binary.BigEndian.Uint16(transport[2:4])
	frame.HasPorts = true

	parts := []string{fmt.Sprintf("%d → %d", frame.SrcPort, frame.DstPort)}
	if protocol == "TCP" && len(transport) > tcpFlagsByteOff {
		if flags := tcpFlagNames(transport[tcpFlagsByteOff]); len(flags) > 0 {
			parts = append(parts, strings.Join(flags, ","))
		}
	}
	frame.Info = strings.Join(parts, " | ")
	return frame
}

// decodeICMP reads the ICMP type and code bytes when present.
func decodeICMP(frame core.ParsedFrame, transport []byte) core.ParsedFrame {
	frame.Protocol = "ICMP"
	if len(transport) >= 2 {
		frame.Info = fmt.Sprintf("ICMP type %d, code %d", transport[0], transport[1])
	}
	return frame
}

// tcpFlagNames decodes a TCP flags byte into its flag names.
func tcpFlagNames(flags byte) []string {
	var names []string
	for _, f := range tcpFlagTable {
		if flags&f.mask != 0 {
			names = append(names, f.name)
		}
	}
	return names
}
