package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/aaeabdo/sloburn/model"
)

func evt(ts int64, success bool, latencyMs float64) model.Event {
	return model.Event{Timestamp: ts, Success: success, LatencyMs: latencyMs}
}

func TestWindowStats(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		bad     int
		budget  float64
		wantPct float64
		wantBrn float64
	}{
		{"empty window is all zeros", 0, 0, 0.1, 0, 0},
		{"no bad events burns nothing", 100, 0, 0.1, 0, 0},
		{"10% bad on 0.5 budget burns 20x", 100, 10, 0.5, 10, 20},
		{"all bad on 1.0 budget burns 100x", 50, 50, 1.0, 100, 100},
		{"sustainable pace burns exactly 1x", 1000, 1, 0.1, 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := windowStats(tt.total, tt.bad, tt.budget)
			if got.Total != tt.total || got.BadCount != tt.bad {
				t.Fatalf("counts = %d/%d, want %d/%d", got.Total, got.BadCount, tt.total, tt.bad)
			}
			if math.Abs(got.BadPercent-tt.wantPct) > 1e-9 {
				t.Errorf("BadPercent = %v, want %v", got.BadPercent, tt.wantPct)
			}
			if math.Abs(got.Burn-tt.wantBrn) > 1e-9 {
				t.Errorf("Burn = %v, want %v", got.Burn, tt.wantBrn)
			}
		})
	}
}

func TestWindowStatsZeroBudget(t *testing.T) {
	// Events under a zero budget burn infinitely fast.
	got := windowStats(10, 1, 0)
	if !math.IsInf(got.Burn, 1) {
		t.Errorf("Burn with zero budget = %v, want +Inf", got.Burn)
	}

	// The empty-window rule wins over the degenerate budget.
	got = windowStats(0, 0, 0)
	if got.Burn != 0 || got.BadPercent != 0 {
		t.Errorf("empty window with zero budget = %+v, want all zeros", got)
	}

	// Negative budget (target above 100) behaves like zero.
	got = windowStats(10, 0, -0.5)
	if !math.IsInf(got.Burn, 1) {
		t.Errorf("Burn with negative budget = %v, want +Inf", got.Burn)
	}
}

func TestSliceWindowFiltersByTime(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	events := []model.Event{
		evt(1_000, true, 100),   // too old for a 10s window ending at 20s
		evt(11_000, true, 100),  // inside
		evt(15_000, false, 100), // inside, bad
		evt(20_000, true, 100),  // boundary, inside
		evt(21_000, false, 100), // future, excluded
	}

	got := SliceWindow(events, pol, 10, 20_000)
	if got.Total != 3 {
		t.Fatalf("Total = %d, want 3", got.Total)
	}
	if got.BadCount != 1 {
		t.Errorf("BadCount = %d, want 1", got.BadCount)
	}
}

func TestSliceWindowBakeSLI(t *testing.T) {
	// One success over the latency target: bad only when SLI is baked in.
	events := []model.Event{
		evt(5_000, true, 100),
		evt(6_000, true, 900),
	}

	baked := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	got := SliceWindow(events, baked, 60, 10_000)
	if got.BadCount != 1 {
		t.Errorf("baked SLI: BadCount = %d, want 1", got.BadCount)
	}

	plain := baked
	plain.BakeSLI = false
	got = SliceWindow(events, plain, 60, 10_000)
	if got.BadCount != 0 {
		t.Errorf("availability only: BadCount = %d, want 0", got.BadCount)
	}
}

func TestSliceWindowRejudgesLive(t *testing.T) {
	// The same history judged under a tighter latency target turns bad.
	events := []model.Event{
		evt(5_000, true, 250),
		evt(6_000, true, 250),
	}

	loose := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	if got := SliceWindow(events, loose, 60, 10_000); got.BadCount != 0 {
		t.Fatalf("loose target: BadCount = %d, want 0", got.BadCount)
	}

	tight := loose
	tight.LatencyTargetMs = 200
	if got := SliceWindow(events, tight, 60, 10_000); got.BadCount != 2 {
		t.Errorf("tight target: BadCount = %d, want 2", got.BadCount)
	}
}

func TestWindowStatsMarshalClampsInf(t *testing.T) {
	s := windowStats(10, 5, 0)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal infinite burn: %v", err)
	}

	var back struct {
		Burn float64 `json:"burn"`
	}
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Burn != math.MaxFloat64 {
		t.Errorf("clamped burn = %v, want MaxFloat64", back.Burn)
	}
}
