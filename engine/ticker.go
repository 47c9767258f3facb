package engine

import "github.com/aaeabdo/sloburn/model"

// Source produces one step of traffic on the demo clock. The generator
// in the simulate package is the usual implementation.
type Source interface {
	Advance(stepSec float64) ([]model.Candidate, model.Gauges, int64)
	Scenario() string
}

// Ticker abstracts a frame producer: a live session or a replayed file.
// ok is false when no frame can be produced (an empty session file).
type Ticker interface {
	Tick() (Frame, bool)
}

// LiveTicker advances a source through an engine each tick, feeding the
// optional recorder and metrics exporter along the way.
type LiveTicker struct {
	src     Source
	eng     *Engine
	stepSec float64
	rec     *Recorder
	metrics *Metrics
}

// NewLiveTicker wires a source to an engine with a fixed demo-seconds
// step per tick.
func NewLiveTicker(src Source, eng *Engine, stepSec float64) *LiveTicker {
	return &LiveTicker{src: src, eng: eng, stepSec: stepSec}
}

// WithRecorder makes every tick append a frame to r.
func (t *LiveTicker) WithRecorder(r *Recorder) *LiveTicker {
	t.rec = r
	return t
}

// WithMetrics makes every tick refresh the Prometheus exporter.
func (t *LiveTicker) WithMetrics(m *Metrics) *LiveTicker {
	t.metrics = m
	return t
}

// Tick generates one step of traffic, runs it through the engine and
// assembles the frame.
func (t *LiveTicker) Tick() (Frame, bool) {
	batch, gauges, now := t.src.Advance(t.stepSec)
	fired := t.eng.SetGauges(gauges, now)
	fired = append(fired, t.eng.Ingest(batch, now)...)

	f := Frame{Scenario: t.src.Scenario(), Status: t.eng.Status(now)}
	if t.rec != nil {
		t.rec.Record(f)
	}
	if t.metrics != nil {
		t.metrics.Update(f.Status)
		t.metrics.ObserveFired(fired)
	}
	return f, true
}
