package model

// Severity classifies how an alert should reach the operator.
type Severity string

const (
	SeverityPage   Severity = "page"
	SeverityTicket Severity = "ticket"
)

// AlertState is the lifecycle position of an alert.
type AlertState string

const (
	AlertOpen         AlertState = "open"
	AlertAcknowledged AlertState = "acknowledged"
	AlertResolved     AlertState = "resolved"
)

// Alert is one firing occurrence of a rule or demo check. Timestamps
// are demo-clock milliseconds; zero means unset.
type Alert struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	CreatedAt  int64    `json:"created_at_ms"`
	AckedAt    int64    `json:"acked_at_ms,omitempty"`
	ResolvedAt int64    `json:"resolved_at_ms,omitempty"`
}

// State derives the lifecycle state from the timestamps.
func (a Alert) State() AlertState {
	switch {
	case a.ResolvedAt != 0:
		return AlertResolved
	case a.AckedAt != 0:
		return AlertAcknowledged
	default:
		return AlertOpen
	}
}

// Open reports whether the alert still blocks a new firing of its type.
func (a Alert) Open() bool {
	return a.ResolvedAt == 0
}
