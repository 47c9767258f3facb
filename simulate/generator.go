package simulate

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/aaeabdo/sloburn/model"
)

// Generator produces candidate batches on a compressed demo clock. It
// owns the clock: every Advance moves demo time forward and emits the
// traffic that "happened" during that step. A fixed seed replays the
// same traffic exactly.
type Generator struct {
	rnd     *rand.Rand
	kind    Kind
	nowMs   int64
	sinceMs int64 // demo time the current scenario was selected
	log     zerolog.Logger
}

// New creates a generator at demo time startMs running the given
// scenario. Unknown scenario names fall back to steady.
func New(kind Kind, seed int64, startMs int64, logger zerolog.Logger) *Generator {
	if _, ok := profiles[kind]; !ok {
		kind = Steady
	}
	g := &Generator{
		rnd:     rand.New(rand.NewSource(seed)),
		kind:    kind,
		nowMs:   startMs,
		sinceMs: startMs,
		log:     logger,
	}
	g.log.Info().Str("scenario", string(kind)).Int64("seed", seed).Msg("generator started")
	return g
}

// Kind returns the active scenario.
func (g *Generator) Kind() Kind {
	return g.kind
}

// Scenario returns the active scenario name.
func (g *Generator) Scenario() string {
	return string(g.kind)
}

// NowMs returns the current demo-clock time.
func (g *Generator) NowMs() int64 {
	return g.nowMs
}

// SetKind switches scenarios. The switch takes effect on the next
// Advance; latency creep restarts its drift from here.
func (g *Generator) SetKind(kind Kind) {
	if _, ok := profiles[kind]; !ok {
		return
	}
	if kind == g.kind {
		return
	}
	g.kind = kind
	g.sinceMs = g.nowMs
	g.log.Info().Str("scenario", string(kind)).Msg("scenario switched")
}

// Advance moves the demo clock forward stepSec demo seconds and returns
// the candidates generated during the step, the sampled host gauges and
// the new demo time. Timestamps are spread across the step and latencies
// are clamped non-negative before they leave the source.
func (g *Generator) Advance(stepSec float64) ([]model.Candidate, model.Gauges, int64) {
	stepMs := int64(stepSec * 1000)
	if stepMs < 1 {
		stepMs = 1
	}
	g.nowMs += stepMs

	elapsedMin := float64(g.nowMs-g.sinceMs) / 60000
	p := profileFor(g.kind, elapsedMin)

	// Jittered event count for the step, +/-25% around the profile rate.
	rate := p.eventsPerMin * stepSec / 60
	count := int(math.Round(rate * (0.75 + 0.5*g.rnd.Float64())))
	if count < 0 {
		count = 0
	}

	batch := make([]model.Candidate, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, g.candidate(p, stepMs))
	}

	gauges := model.Gauges{CPUPct: clampPct(p.cpuPct + p.cpuJitter*g.rnd.NormFloat64())}
	return batch, gauges, g.nowMs
}

func (g *Generator) candidate(p profile, stepMs int64) model.Candidate {
	success := g.rnd.Float64() >= p.errorRate
	median := p.latMedianMs
	if !success {
		median *= p.failFactor
	}
	lat := median * math.Exp(p.latSigma*g.rnd.NormFloat64())
	if lat < 0 {
		lat = 0
	}
	return model.Candidate{
		Timestamp: g.nowMs - g.rnd.Int63n(stepMs),
		Success:   success,
		LatencyMs: lat,
		Category:  pickWeighted(g.rnd, categories, categoryWeight),
		Origin:    pickWeighted(g.rnd, origins, originWeight),
		Context: map[string]any{
			"scenario": string(g.kind),
			"region":   regions[g.rnd.Intn(len(regions))],
		},
	}
}

func pickWeighted(rnd *rand.Rand, items []string, weights []float64) string {
	r := rnd.Float64()
	var acc float64
	for i, w := range weights {
		acc += w
		if r < acc {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
