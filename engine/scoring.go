package engine

import (
	"sync"

	"github.com/aaeabdo/sloburn/model"
)

// Slot weights for the blended ops score.
var scoreWeights = map[string]float64{
	"budget":         0.40,
	"hygiene":        0.30,
	"responsiveness": 0.30,
}

// Responsiveness ladder: acks at or under fastAckMs score 1.0, decaying
// linearly to 0 at slowAckMs. Hygiene decays the same way as the oldest
// open page ages toward stalePageMs. All in demo-clock milliseconds.
const (
	fastAckMs   = 30_000
	slowAckMs   = 600_000
	stalePageMs = 600_000
)

// ScoreSnapshot is the operator scorecard at one instant.
type ScoreSnapshot struct {
	EventsTotal  int64   `json:"events_total"`
	PagesFired   int     `json:"pages_fired"`
	TicketsFired int     `json:"tickets_fired"`
	Acked        int     `json:"acked"`
	Resolved     int     `json:"resolved"`
	MeanAckMs    float64 `json:"mean_ack_ms"`
	Budget       float64 `json:"budget"`         // 0..1
	Hygiene      float64 `json:"hygiene"`        // 0..1
	Responsive   float64 `json:"responsiveness"` // 0..1
	Score        float64 `json:"score"`          // 0..100
	Grade        string  `json:"grade"`
}

// Scoreboard accumulates operator performance over a session: how hot
// the budget ran, whether pages sat unattended, and how quickly they
// were acknowledged once fired.
type Scoreboard struct {
	events     int64
	pages      int
	tickets    int
	acks       int
	resolves   int
	ackLatency float64 // summed ms

	paceBurn    float64 // burn of the slowest long window, threshold 1x
	oldestPage  int64   // ms the oldest open page has been open
	pagesSeen   bool
	mu          sync.Mutex
}

// NewScoreboard returns an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{}
}

// RecordIngest counts classified events.
func (s *Scoreboard) RecordIngest(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events += int64(n)
}

// RecordFiring counts a fired alert by severity.
func (s *Scoreboard) RecordFiring(sev model.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sev == model.SeverityPage {
		s.pages++
		s.pagesSeen = true
	} else {
		s.tickets++
	}
}

// RecordAck counts an acknowledgement and its latency since firing.
func (s *Scoreboard) RecordAck(latencyMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acks++
	s.ackLatency += float64(latencyMs)
}

// RecordResolve counts a resolution.
func (s *Scoreboard) RecordResolve() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolves++
}

// UpdateHealth feeds the per-evaluation inputs: the burn of the slowest
// long window (1.0 = exactly sustainable) and the age of the oldest
// open page.
func (s *Scoreboard) UpdateHealth(paceBurn float64, oldestPageMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paceBurn = paceBurn
	s.oldestPage = oldestPageMs
}

// Snapshot computes the current scorecard.
func (s *Scoreboard) Snapshot() ScoreSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Budget: full marks at zero burn, zero at twice the sustainable pace.
	budget := clamp01(1 - s.paceBurn/2)

	hygiene := 1.0
	if s.oldestPage > 0 {
		hygiene = clamp01(1 - float64(s.oldestPage)/float64(stalePageMs))
	}

	resp := 1.0
	switch {
	case s.acks > 0:
		mean := s.ackLatency / float64(s.acks)
		resp = clamp01(1 - (mean-fastAckMs)/float64(slowAckMs-fastAckMs))
	case s.pagesSeen:
		// Pages fired but nothing acknowledged yet: neutral until proven.
		resp = 0.5
	}

	score := 100 * (scoreWeights["budget"]*budget +
		scoreWeights["hygiene"]*hygiene +
		scoreWeights["responsiveness"]*resp)

	snap := ScoreSnapshot{
		EventsTotal:  s.events,
		PagesFired:   s.pages,
		TicketsFired: s.tickets,
		Acked:        s.acks,
		Resolved:     s.resolves,
		Budget:       budget,
		Hygiene:      hygiene,
		Responsive:   resp,
		Score:        score,
		Grade:        grade(score),
	}
	if s.acks > 0 {
		snap.MeanAckMs = s.ackLatency / float64(s.acks)
	}
	return snap
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
