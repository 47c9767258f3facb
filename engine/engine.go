package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aaeabdo/sloburn/model"
)

// Engine owns the event history, the alert log and the policy, and keeps
// them consistent. Every state mutation re-evaluates all rules and checks
// synchronously before returning, so alerting reacts to changes instantly
// without any timer of its own. The engine never reads the wall clock;
// callers pass the demo-clock time with each call, which keeps evaluation
// identical at any time compression.
type Engine struct {
	history *History
	alerts  *AlertLog
	score   *Scoreboard

	rules  []model.WindowRule
	checks CheckConfig
	pol    model.Policy
	tier   model.Tier
	gauges model.Gauges

	seq   int64
	nowMs int64
	total int64
	good  int64
	bad   int64

	log zerolog.Logger
	mu  sync.Mutex // serializes mutations and evaluation passes
}

// IngestCounts are cumulative classification tallies since startup.
// Good and bad reflect the policy at ingest time.
type IngestCounts struct {
	Total int64 `json:"total"`
	Good  int64 `json:"good"`
	Bad   int64 `json:"bad"`
}

// RuleStatus is the live picture of one burn-rate rule.
type RuleStatus struct {
	Rule        model.WindowRule `json:"rule"`
	Short       WindowStats      `json:"short"`
	Long        WindowStats      `json:"long"`
	ExpectedBad float64          `json:"expected_bad_percent"`
	Firing      bool             `json:"firing"`
}

// Status is everything a frontend renders for one instant. Recent events
// ride along for live views but stay out of the JSON forms; session
// files and status dumps carry derived numbers only.
type Status struct {
	NowMs    int64         `json:"nowMs"`
	Policy   model.Policy  `json:"policy"`
	Tier     model.Tier    `json:"tier"`
	Gauges   model.Gauges  `json:"gauges"`
	Rules    []RuleStatus  `json:"rules"`
	Contrast WindowStats   `json:"contrast_window"`
	P95Ms    float64       `json:"p95_ms"`
	Alerts   []model.Alert `json:"alerts"`
	Score    ScoreSnapshot `json:"score"`
	Ingested IngestCounts  `json:"ingested"`
	Events   []model.Event `json:"-"`
}

// New creates an engine with the default rules and checks. historySize
// bounds the event ring; alertCap bounds the alert log.
func New(historySize, alertCap int, pol model.Policy, logger zerolog.Logger) *Engine {
	return &Engine{
		history: NewHistory(historySize),
		alerts:  NewAlertLog(alertCap),
		score:   NewScoreboard(),
		rules:   DefaultRules(),
		checks:  DefaultChecks(),
		pol:     sanitizePolicy(pol, defaultPolicy()),
		log:     logger,
	}
}

func defaultPolicy() model.Policy {
	return model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99.9}
}

// Ingest classifies a batch of candidates against the current policy,
// appends them to history and re-evaluates. Returns any alerts fired by
// this pass.
func (e *Engine) Ingest(batch []model.Candidate, nowMs int64) []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	for _, c := range batch {
		e.seq++
		ev := Classify(fmt.Sprintf("evt-%d", e.seq), c, e.pol)
		e.history.Push(ev)
		e.total++
		if e.pol.Good(ev) {
			e.good++
		} else {
			e.bad++
		}
	}
	e.score.RecordIngest(len(batch))
	return e.evaluateLocked(nowMs)
}

// SetPolicy replaces the live policy after clamping and re-evaluates.
// History is untouched; windows immediately reflect the new goodness and
// budget while each event's frozen compliance fields stay as classified.
func (e *Engine) SetPolicy(p model.Policy, nowMs int64) []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	e.pol = sanitizePolicy(p, e.pol)
	e.log.Info().
		Bool("bakeSLI", e.pol.BakeSLI).
		Float64("latencyTargetMs", e.pol.LatencyTargetMs).
		Float64("availabilityTarget", e.pol.AvailabilityTarget).
		Bool("lockExpected", e.pol.LockExpected).
		Msg("policy updated")
	return e.evaluateLocked(nowMs)
}

// SetTier applies a tier's targets to the policy and re-evaluates.
func (e *Engine) SetTier(t model.Tier, nowMs int64) []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	next := e.pol
	next.AvailabilityTarget = t.AvailabilityTarget
	next.LatencyTargetMs = t.LatencyTargetMs
	e.pol = sanitizePolicy(next, e.pol)
	e.tier = t
	e.log.Info().
		Str("tier", t.Name).
		Float64("availabilityTarget", t.AvailabilityTarget).
		Float64("latencyTargetMs", t.LatencyTargetMs).
		Msg("tier applied")
	return e.evaluateLocked(nowMs)
}

// SetGauges updates the sampled host gauges and re-evaluates.
func (e *Engine) SetGauges(g model.Gauges, nowMs int64) []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	e.gauges = g
	return e.evaluateLocked(nowMs)
}

// Acknowledge marks an alert acknowledged. Unknown ids and repeat calls
// are silent no-ops.
func (e *Engine) Acknowledge(id string, nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	if a, ok := e.alerts.Acknowledge(id, nowMs); ok {
		e.score.RecordAck(nowMs - a.CreatedAt)
		e.log.Info().Str("id", id).Str("type", a.Type).Msg("alert acknowledged")
	}
}

// Resolve marks an alert resolved, freeing its type to fire again on the
// next evaluation. Unknown ids and repeat calls are silent no-ops.
func (e *Engine) Resolve(id string, nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)
	if a, ok := e.alerts.Resolve(id, nowMs); ok {
		e.score.RecordResolve()
		e.log.Info().Str("id", id).Str("type", a.Type).Msg("alert resolved")
	}
}

// evaluateLocked runs one evaluation pass. Callers hold e.mu.
func (e *Engine) evaluateLocked(nowMs int64) []model.Alert {
	events := e.history.Snapshot()
	candidates := evaluate(evalInput{
		events: events,
		pol:    e.pol,
		rules:  e.rules,
		checks: e.checks,
		gauges: e.gauges,
		nowMs:  nowMs,
	})

	open := e.alerts.OpenTypes()
	var fired []model.Alert
	for _, c := range candidates {
		if open[c.Type] {
			continue
		}
		c.ID = uuid.NewString()
		c.CreatedAt = nowMs
		e.alerts.Prepend(c)
		e.score.RecordFiring(c.Severity)
		fired = append(fired, c)
		open[c.Type] = true
		e.log.Warn().
			Str("id", c.ID).
			Str("type", c.Type).
			Str("severity", string(c.Severity)).
			Str("message", c.Message).
			Msg("alert fired")
	}

	pace := SliceWindow(events, e.pol, e.rules[len(e.rules)-1].LongSec, nowMs)
	e.score.UpdateHealth(pace.Burn, e.alerts.OldestOpenPageAgeMs(nowMs))
	return fired
}

// advance keeps the engine's notion of the latest demo time monotonic.
func (e *Engine) advance(nowMs int64) {
	if nowMs > e.nowMs {
		e.nowMs = nowMs
	}
}

// NowMs returns the latest demo-clock time the engine has seen.
func (e *Engine) NowMs() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nowMs
}

// Policy returns the live policy.
func (e *Engine) Policy() model.Policy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pol
}

// Tier returns the most recently applied tier.
func (e *Engine) Tier() model.Tier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tier
}

// Rules returns a copy of the standing rules.
func (e *Engine) Rules() []model.WindowRule {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.WindowRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// WindowMetrics aggregates one ad hoc window against the live policy.
func (e *Engine) WindowMetrics(durationSec float64, nowMs int64) WindowStats {
	e.mu.Lock()
	pol := e.pol
	e.mu.Unlock()
	return SliceWindow(e.history.Snapshot(), pol, durationSec, nowMs)
}

// ExpectedBadPercent reports the bad percentage a window would show at
// exactly threshold times the sustainable burn under the live policy.
func (e *Engine) ExpectedBadPercent(threshold float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ExpectedBadPercent(e.pol, threshold)
}

// Alerts returns the alert log, newest first.
func (e *Engine) Alerts() []model.Alert {
	return e.alerts.All()
}

// Events returns up to n recent events, newest first.
func (e *Engine) Events(n int) []model.Event {
	return e.history.Recent(n)
}

// Score returns the current operator scorecard.
func (e *Engine) Score() ScoreSnapshot {
	return e.score.Snapshot()
}

// Status assembles the full render state for one instant.
func (e *Engine) Status(nowMs int64) Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance(nowMs)

	events := e.history.Snapshot()
	st := Status{
		NowMs:    nowMs,
		Policy:   e.pol,
		Tier:     e.tier,
		Gauges:   e.gauges,
		Alerts:   e.alerts.All(),
		Score:    e.score.Snapshot(),
		Ingested: IngestCounts{Total: e.total, Good: e.good, Bad: e.bad},
	}
	for _, r := range e.rules {
		short := SliceWindow(events, e.pol, r.ShortSec, nowMs)
		long := SliceWindow(events, e.pol, r.LongSec, nowMs)
		st.Rules = append(st.Rules, RuleStatus{
			Rule:        r,
			Short:       short,
			Long:        long,
			ExpectedBad: ExpectedBadPercent(e.pol, r.Threshold),
			Firing:      ruleFiring(r, short, long),
		})
	}
	scan := scanContrastWindow(events, e.pol, e.checks, nowMs)
	st.Contrast = scan.stats
	st.P95Ms = Percentile(scan.latencies, 0.95)

	n := 50
	if n > len(events) {
		n = len(events)
	}
	recent := make([]model.Event, n)
	for i := 0; i < n; i++ {
		recent[i] = events[len(events)-1-i]
	}
	st.Events = recent
	return st
}

// ExportEvents writes the full event history as an indented JSON array,
// oldest first, with the compliance fields exactly as frozen at ingest.
func (e *Engine) ExportEvents(w io.Writer) error {
	events := e.history.Snapshot()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encoding event history: %w", err)
	}
	return nil
}
