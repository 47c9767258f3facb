package engine

import (
	"encoding/json"
	"math"

	"github.com/aaeabdo/sloburn/model"
)

// WindowStats summarizes one rolling slice of the event history.
// Burn is the rate at which the slice consumes error budget: 1.0 means
// exactly the sustainable pace, 14.4 means the budget would be gone in
// 1/14.4 of the SLO period.
type WindowStats struct {
	Total      int     `json:"total"`
	BadCount   int     `json:"bad_count"`
	BadPercent float64 `json:"bad_percent"`
	Burn       float64 `json:"burn"`
}

// SliceWindow aggregates the events inside [nowMs-durationSec*1000, nowMs],
// classifying goodness live against the current policy rather than the
// compliance flags frozen at ingest. An empty slice yields all zeros; a
// non-empty slice under a zero budget burns at +Inf.
func SliceWindow(events []model.Event, pol model.Policy, durationSec float64, nowMs int64) WindowStats {
	cutoff := nowMs - int64(durationSec*1000)
	var total, bad int
	for i := range events {
		if events[i].Timestamp < cutoff || events[i].Timestamp > nowMs {
			continue
		}
		total++
		if !pol.Good(events[i]) {
			bad++
		}
	}
	return windowStats(total, bad, pol.ErrorBudget())
}

func windowStats(total, bad int, budget float64) WindowStats {
	s := WindowStats{Total: total, BadCount: bad}
	if total == 0 {
		return s
	}
	s.BadPercent = 100 * float64(bad) / float64(total)
	if budget <= 0 {
		s.Burn = math.Inf(1)
		return s
	}
	s.Burn = s.BadPercent / budget
	return s
}

// MarshalJSON clamps an infinite burn to MaxFloat64 because JSON has no
// Infinity literal. Session frames and status dumps stay parseable.
func (s WindowStats) MarshalJSON() ([]byte, error) {
	type plain WindowStats
	p := plain(s)
	if math.IsInf(p.Burn, 1) {
		p.Burn = math.MaxFloat64
	}
	return json.Marshal(p)
}
