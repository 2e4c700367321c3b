package decoder

import "fmt"

// linkTypeNames covers the DLT codes seen in practice in CTF captures.
var linkTypeNames = map[uint32]string{
	0:   "Null/loopback",
	1:   "Ethernet",
	6:   "IEEE 802.5",
	7:   "Arcnet",
	101: "Raw IP",
	105: "IEEE 802.11",
	113: "Linux cooked capture",
	147: "User0",
}

// LinkTypeName returns the human-readable name for a link-type code.
func LinkTypeName(code uint32) string {
	if name, ok := linkTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("DLT %d", code)
}
