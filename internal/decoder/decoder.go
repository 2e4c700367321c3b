// Package decoder implements L2-L4 protocol decoding for captured frames.
//
// Decoding never fails: a short or malformed frame degrades to the coarsest
// protocol label its bytes allow, so one crafted packet cannot abort the
// analysis of the rest of a capture.
package decoder

import "github.com/avnixm/pcapsum/internal/core"

// Decode decodes one captured frame according to its link type.
// Non-Ethernet link types are labeled but not decoded further.
func Decode(data []byte, linkType uint32) core.ParsedFrame {
	if linkType != core.LinkTypeEthernet {
		return core.ParsedFrame{Protocol: LinkTypeName(linkType)}
	}
	return decodeEthernet(data)
}
