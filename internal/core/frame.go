package core

import "strconv"

// ParsedFrame is the result of decoding one frame. All fields are optional
// except Protocol; the decoder fills in whatever the frame bytes allow.
type ParsedFrame struct {
	Protocol string
	SrcMAC   string
	DstMAC   string
	SrcIP    string
	DstIP    string
	SrcPort  uint16
	DstPort  uint16
	HasPorts bool
	Info     string
}

// SrcLabel returns the best available source endpoint label:
// ip:port, then bare IP, then MAC, then "unknown".
func (f ParsedFrame) SrcLabel() string {
	return endpointLabel(f.SrcIP, f.SrcPort, f.HasPorts, f.SrcMAC)
}

// DstLabel returns the best available destination endpoint label.
func (f ParsedFrame) DstLabel() string {
	return endpointLabel(f.DstIP, f.DstPort, f.HasPorts, f.DstMAC)
}

func endpointLabel(ip string, port uint16, hasPort bool, mac string) string {
	switch {
	case ip != "" && hasPort:
		return ip + ":" + strconv.Itoa(int(port))
	case ip != "":
		return ip
	case mac != "":
		return mac
	default:
		return "unknown"
	}
}
