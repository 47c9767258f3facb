package engine

import (
	"sync"

	"github.com/aaeabdo/sloburn/model"
)

// AlertLog stores alerts newest first, bounded by a capacity that only
// ever trims the oldest entries. Lifecycle transitions are idempotent:
// repeated or misdirected acknowledge/resolve calls are silent no-ops.
type AlertLog struct {
	alerts []model.Alert
	cap    int
	mu     sync.RWMutex
}

// NewAlertLog creates an empty log bounded at capacity.
func NewAlertLog(capacity int) *AlertLog {
	if capacity < 1 {
		capacity = 1
	}
	return &AlertLog{cap: capacity}
}

// Prepend inserts a freshly fired alert at the head of the log and trims
// the tail beyond capacity.
func (l *AlertLog) Prepend(a model.Alert) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = append([]model.Alert{a}, l.alerts...)
	if len(l.alerts) > l.cap {
		l.alerts = l.alerts[:l.cap]
	}
}

// All returns a copy of the log, newest first.
func (l *AlertLog) All() []model.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// OpenTypes reports which alert types currently have an open alert.
// Evaluation consults this for dedup before firing.
func (l *AlertLog) OpenTypes() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	open := make(map[string]bool)
	for i := range l.alerts {
		if l.alerts[i].Open() {
			open[l.alerts[i].Type] = true
		}
	}
	return open
}

// OpenCounts returns the number of open alerts per severity.
func (l *AlertLog) OpenCounts() (pages, tickets int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.alerts {
		if !l.alerts[i].Open() {
			continue
		}
		if l.alerts[i].Severity == model.SeverityPage {
			pages++
		} else {
			tickets++
		}
	}
	return pages, tickets
}

// OldestOpenPageAgeMs returns how long the oldest open page has been
// open, or 0 when no page is open.
func (l *AlertLog) OldestOpenPageAgeMs(nowMs int64) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var oldest int64
	for i := range l.alerts {
		a := &l.alerts[i]
		if a.Open() && a.Severity == model.SeverityPage && (oldest == 0 || a.CreatedAt < oldest) {
			oldest = a.CreatedAt
		}
	}
	if oldest == 0 {
		return 0
	}
	return nowMs - oldest
}

// Acknowledge marks an open, unacknowledged alert as acknowledged and
// returns the updated copy. Unknown ids, resolved alerts and repeat
// calls change nothing and report false.
func (l *AlertLog) Acknowledge(id string, nowMs int64) (model.Alert, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.alerts {
		a := &l.alerts[i]
		if a.ID != id {
			continue
		}
		if a.ResolvedAt != 0 || a.AckedAt != 0 {
			return model.Alert{}, false
		}
		a.AckedAt = nowMs
		return *a, true
	}
	return model.Alert{}, false
}

// Resolve marks an open alert as resolved, with or without a prior
// acknowledgement, and returns the updated copy. Resolution is terminal
// and frees the alert's type for a future firing. Unknown ids and
// repeat calls change nothing and report false.
func (l *AlertLog) Resolve(id string, nowMs int64) (model.Alert, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.alerts {
		a := &l.alerts[i]
		if a.ID != id {
			continue
		}
		if a.ResolvedAt != 0 {
			return model.Alert{}, false
		}
		a.ResolvedAt = nowMs
		return *a, true
	}
	return model.Alert{}, false
}
