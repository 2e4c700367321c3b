package decoder

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/avnixm/pcapsum/internal/core"
)

const (
	ethernetHeaderLen = 14

	// EtherType values
	etherTypeIPv4 = 0x0800
	etherTypeARP  = 0x0806
	etherTypeIPv6 = 0x86DD
)

// decodeEthernet decodes the Ethernet frame header and dispatches on the
// EtherType. IPv6 payloads are labeled but not decoded.
func decodeEthernet(data []byte) core.ParsedFrame {
	if len(data) < ethernetHeaderLen {
		return core.ParsedFrame{Protocol: "Ethernet"}
	}

	// Destination MAC (6 bytes), source MAC (6 bytes), EtherType (2 bytes)
	dstMAC := formatMAC(data[0:6])
	srcMAC := formatMAC(data[6:12])
	etherType := binary.BigEndian.Uint16(data[12:14])
	payload := data[ethernetHeaderLen:]

	switch etherType {
	case etherTypeIPv4:
		return decodeIPv4(srcMAC, dstMAC, payload)
	case etherTypeARP:
		return decodeARP(srcMAC, dstMAC, payload)
	case etherTypeIPv6:
		return core.ParsedFrame{Protocol: "IPv6", SrcMAC: srcMAC, DstMAC: dstMAC}
	default:
		return core.ParsedFrame{
			Protocol: fmt.Sprintf("Ethertype 0x%04x", etherType),
			SrcMAC:   srcMAC,
			DstMAC:   dstMAC,
		}
	}
}

// formatMAC renders 6 bytes as lowercase colon-hex.
func formatMAC(b []byte) string {
	return net.HardwareAddr(b).String()
}
