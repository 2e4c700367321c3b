package decoder

import (
	"fmt"
	"net/netip"

	"github.com/avnixm/pcapsum/internal/core"
)

const (
	ipv4HeaderMinLen = 20

	// Protocol numbers
	protocolICMP = 1
	protocolTCP  = 6
	protocolUDP  = 17
)

// decodeIPv4 decodes the IPv4 header and dispatches on the protocol byte.
// A bad version nibble or an IHL the payload cannot cover degrades to the
// bare "IPv4" label with MAC addresses only.
func decodeIPv4(srcMAC, dstMAC string, payload []byte) core.ParsedFrame {
	frame := core.ParsedFrame{Protocol: "IPv4", SrcMAC: srcMAC, DstMAC: dstMAC}
	if len(payload) < ipv4HeaderMinLen {
		return frame
	}

	versionIHL := payload[0]
	if versionIHL>>4 != 4 {
		return frame
	}
	headerLen := int(versionIHL&0x0F) * 4 // IHL is in 32-bit words
	if headerLen < ipv4HeaderMinLen || len(payload) < headerLen {
		return frame
	}

	protoNum := payload[9]
	frame.SrcIP = formatIPv4(payload[12:16])
	frame.DstIP = formatIPv4(payload[16:20])

	transport := payload[headerLen:]
	switch protoNum {
	case protocolTCP:
		return decodeTCPUDP(frame, "TCP", transport)
	case protocolUDP:
		return decodeTCPUDP(frame, "UDP", transport)
	case protocolICMP:
		return decodeICMP(frame, transport)
	default:
		frame.Protocol = fmt.Sprintf("IP proto %d", protoNum)
		return frame
	}
}

// formatIPv4 renders 4 bytes as dotted decimal.
func formatIPv4(b []byte) string {
	return netip.AddrFrom4([4]byte(b)).String()
}
