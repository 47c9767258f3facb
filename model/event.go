package model

// ViolationLatency is the only SLO violation reason produced today.
const ViolationLatency = "latency"

// Candidate is a raw business operation before classification.
// The event source guarantees LatencyMs >= 0.
type Candidate struct {
	Timestamp int64          `json:"timestampMs"`
	Success   bool           `json:"success"`
	LatencyMs float64        `json:"latencyMs"`
	Category  string         `json:"category"`
	Origin    string         `json:"origin"`
	Context   map[string]any `json:"context,omitempty"`
}

// Event is one classified business operation. Compliance fields are
// computed once, against the latency target in effect at classification
// time, and never change afterwards.
type Event struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestampMs"`
	Success   bool           `json:"success"`
	LatencyMs float64        `json:"latencyMs"`
	Category  string         `json:"category"`
	Origin    string         `json:"origin"`
	Context   map[string]any `json:"context,omitempty"`

	SLOCompliant  bool     `json:"is_slo_compliant"`
	SLOViolations []string `json:"slo_violations"`
}
