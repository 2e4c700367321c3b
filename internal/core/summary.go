package core

import "encoding/json"

// CaptureSummary is the terminal output of one capture scan.
type CaptureSummary struct {
	File            string `json:"file"`
	Format          Format `json:"format"`
	PacketsAnalyzed uint64 `json:"packets_analyzed"`
	BytesObserved   uint64 `json:"bytes_observed"`
	PacketLimit     uint   `json:"packet_limit"`
	Truncated       bool   `json:"truncated"`

	// Legacy global header fields, absent for PCAPNG captures.
	PcapVersion    string  `json:"pcap_version,omitempty"`
	TimezoneOffset *int32  `json:"timezone_offset,omitempty"`
	SigFigs        *uint32 `json:"sigfigs,omitempty"`
	SnapLen        *uint32 `json:"snaplen,omitempty"`

	LinkType string `json:"linktype,omitempty"`

	ProtocolBreakdown []ProtocolCount `json:"protocol_breakdown"`
	TopTalkers        []TalkerCount   `json:"top_talkers"`
	TopConversations  []Conversation  `json:"top_conversations"`
	Samples           []PacketSample  `json:"samples"`
	CapturePeriod     *CapturePeriod  `json:"capture_period,omitempty"`
}

// ProtocolCount is one protocol histogram entry.
// It marshals as a [protocol, count] pair.
type ProtocolCount struct {
	Protocol string
	Count    uint64
}

func (p ProtocolCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Protocol, p.Count})
}

func (p *ProtocolCount) UnmarshalJSON(data []byte) error {
	pair := []any{&p.Protocol, &p.Count}
	return json.Unmarshal(data, &pair)
}

// TalkerCount is one observed address with its occurrence count.
// It marshals as an [address, count] pair.
type TalkerCount struct {
	Address string
	Count   uint64
}

func (t TalkerCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Address, t.Count})
}

func (t *TalkerCount) UnmarshalJSON(data []byte) error {
	pair := []any{&t.Address, &t.Count}
	return json.Unmarshal(data, &pair)
}

// Conversation aggregates all packets sharing (src, dst, protocol).
// Direction matters: (a,b) and (b,a) are distinct conversations.
type Conversation struct {
	Src      string `json:"src"`
	Dst      string `json:"dst"`
	Protocol string `json:"protocol"`
	Packets  uint64 `json:"packets"`
	Bytes    uint64 `json:"bytes"`
}

// PacketSample is one entry of the bounded sample list.
type PacketSample struct {
	Index      int    `json:"index"`
	Timestamp  string `json:"timestamp"`
	Protocol   string `json:"protocol"`
	Src        string `json:"src,omitempty"`
	Dst        string `json:"dst,omitempty"`
	Length     int    `json:"length"`
	Info       string `json:"info,omitempty"`
	HexPreview string `json:"hex_preview,omitempty"`
}

// CapturePeriod is the time span covered by the analyzed packets.
type CapturePeriod struct {
	Start           string  `json:"start"`
	End             string  `json:"end"`
	DurationSeconds float64 `json:"duration_seconds"`
}
