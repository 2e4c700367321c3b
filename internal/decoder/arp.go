package decoder

import (
	"encoding/binary"
	"fmt"

	"github.com/avnixm/pcapsum/internal/core"
)

const arpHeaderLen = 28

// decodeARP decodes an ARP payload. Operation, sender and target addresses
// go into the info string; endpoints stay at the MAC level.
func decodeARP(srcMAC, dstMAC string, payload []byte) core.ParsedFrame {
	frame := core.ParsedFrame{Protocol: "ARP", SrcMAC: srcMAC, DstMAC: dstMAC}
	if len(payload) < arpHeaderLen {
		return frame
	}

	var operation string
	switch op := binary.BigEndian.Uint16(payload[6:8]); op {
	case 1:
		operation = "request"
	case 2:
		operation = "reply"
	default:
		operation = fmt.Sprintf("op %d", op)
	}

	senderIP := formatIPv4(payload[14:18])
	targetIP := formatIPv4(payload[24:28])
	frame.Info = fmt.Sprintf("%s: %s → %s", operation, senderIP, targetIP)
	return frame
}
