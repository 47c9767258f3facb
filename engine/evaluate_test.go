package engine

import (
	"testing"

	"github.com/aaeabdo/sloburn/model"
)

func TestRuleFiring(t *testing.T) {
	rule := model.WindowRule{
		Name: "burn-1h", ShortSec: 300, LongSec: 3600,
		Threshold: 14.4, Severity: model.SeverityPage, MinSamples: 20,
	}

	tests := []struct {
		name  string
		short WindowStats
		long  WindowStats
		want  bool
	}{
		{
			"both windows hot fires",
			WindowStats{Total: 100, Burn: 20},
			WindowStats{Total: 500, Burn: 15},
			true,
		},
		{
			"short hot alone does not fire",
			WindowStats{Total: 100, Burn: 20},
			WindowStats{Total: 500, Burn: 2},
			false,
		},
		{
			"long hot alone does not fire",
			WindowStats{Total: 100, Burn: 1},
			WindowStats{Total: 500, Burn: 20},
			false,
		},
		{
			"burn exactly at threshold fires",
			WindowStats{Total: 100, Burn: 14.4},
			WindowStats{Total: 500, Burn: 14.4},
			true,
		},
		{
			"short window too thin stays quiet",
			WindowStats{Total: 20, Burn: 99},
			WindowStats{Total: 500, Burn: 99},
			false,
		},
		{
			"long window too thin stays quiet",
			WindowStats{Total: 100, Burn: 99},
			WindowStats{Total: 20, Burn: 99},
			false,
		},
		{
			"one past the sample gate fires",
			WindowStats{Total: 21, Burn: 99},
			WindowStats{Total: 21, Burn: 99},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ruleFiring(rule, tt.short, tt.long)
			if got != tt.want {
				t.Errorf("ruleFiring() = %v, want %v", got, tt.want)
			}
		})
	}
}

// burstEvents spreads count events evenly over the window ending at
// nowMs, marking the first badCount of them as failures.
func burstEvents(count, badCount int, windowSec float64, nowMs int64, latencyMs float64, category string) []model.Event {
	out := make([]model.Event, count)
	stepMs := int64(windowSec*1000) / int64(count)
	for i := range out {
		out[i] = model.Event{
			Timestamp: nowMs - int64(i)*stepMs,
			Success:   i >= badCount,
			LatencyMs: latencyMs,
			Category:  category,
		}
	}
	return out
}

func TestEvaluateBurnRule(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	rule := model.WindowRule{
		Name: "burn-1h", ShortSec: 300, LongSec: 3600,
		Threshold: 14.4, Severity: model.SeverityPage, MinSamples: 20,
	}
	nowMs := int64(4_000_000)

	// 30% bad on a 1% budget burns 30x in both windows.
	events := burstEvents(100, 30, 300, nowMs, 100, "checkout")

	got := evaluate(evalInput{
		events: events,
		pol:    pol,
		rules:  []model.WindowRule{rule},
		checks: CheckConfig{WindowSec: 300, MinSamples: 1000, CPUCeilingPct: 85, OrderFloorPerMin: 0, OrderCategory: "checkout"},
		nowMs:  nowMs,
	})

	if len(got) != 1 {
		t.Fatalf("candidates = %d (%v), want just the burn rule", len(got), got)
	}
	if got[0].Type != "burn-1h" || got[0].Severity != model.SeverityPage {
		t.Errorf("candidate = %s/%s, want burn-1h/page", got[0].Type, got[0].Severity)
	}
	if got[0].ID != "" || got[0].CreatedAt != 0 {
		t.Errorf("candidate carries id/timestamp %q/%d, want unset for the caller", got[0].ID, got[0].CreatedAt)
	}
}

func TestEvaluateRequiresBothWindows(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	rule := model.WindowRule{
		Name: "burn-1h", ShortSec: 300, LongSec: 3600,
		Threshold: 14.4, Severity: model.SeverityPage, MinSamples: 20,
	}
	nowMs := int64(4_000_000)

	// A hot recent burst plus a long stretch of clean traffic: the short
	// window breaches, the long one dilutes below threshold.
	events := burstEvents(100, 30, 300, nowMs, 100, "checkout")
	clean := burstEvents(2000, 0, 3000, nowMs-400_000, 100, "checkout")
	events = append(events, clean...)

	got := evaluate(evalInput{
		events: events,
		pol:    pol,
		rules:  []model.WindowRule{rule},
		checks: CheckConfig{WindowSec: 300, MinSamples: 1000, CPUCeilingPct: 85, OrderFloorPerMin: 0, OrderCategory: "checkout"},
		nowMs:  nowMs,
	})

	for _, a := range got {
		if a.Type == "burn-1h" {
			t.Errorf("burn-1h fired on a short-window blip the long window should absorb")
		}
	}
}

func TestContrastSLOBreach(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, CPUCeilingPct: 85, OrderFloorPerMin: 0, OrderCategory: "checkout"}
	nowMs := int64(4_000_000)

	// 5% bad leaves 95% availability, under the 99% target.
	events := burstEvents(100, 5, 300, nowMs, 100, "checkout")
	sc := scanContrastWindow(events, pol, cfg, nowMs)
	got := contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 40})

	if len(got) != 1 || got[0].Type != CheckSLOBreach {
		t.Fatalf("checks = %v, want one slo-breach", got)
	}
	if got[0].Severity != model.SeverityPage {
		t.Errorf("slo-breach severity = %s, want page", got[0].Severity)
	}
}

func TestContrastChecksSampleGate(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, CPUCeilingPct: 85, OrderFloorPerMin: 10, OrderCategory: "checkout"}
	nowMs := int64(4_000_000)

	// Ten events, all bad: hugely out of SLO but under the sample gate.
	events := burstEvents(10, 10, 300, nowMs, 900, "api")
	sc := scanContrastWindow(events, pol, cfg, nowMs)
	got := contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 40})

	if len(got) != 0 {
		t.Errorf("checks below the sample gate = %v, want none", got)
	}
}

func TestContrastLatencyP95(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 90}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, CPUCeilingPct: 85, OrderFloorPerMin: 0, OrderCategory: "checkout"}
	nowMs := int64(4_000_000)

	// All successes, but every latency sits above the target.
	events := burstEvents(50, 0, 300, nowMs, 450, "checkout")
	sc := scanContrastWindow(events, pol, cfg, nowMs)
	got := contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 40})

	foundP95 := false
	for _, a := range got {
		if a.Type == CheckLatencyP95 {
			foundP95 = true
			if a.Severity != model.SeverityTicket {
				t.Errorf("latency-p95 severity = %s, want ticket", a.Severity)
			}
		}
	}
	if !foundP95 {
		t.Errorf("checks = %v, want latency-p95 among them", got)
	}
}

func TestContrastOrderRate(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 90}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, CPUCeilingPct: 85, OrderFloorPerMin: 10, OrderCategory: "checkout"}
	nowMs := int64(4_000_000)

	// Healthy traffic, but only 10 checkout events in 5 minutes = 2/min.
	other := burstEvents(90, 0, 300, nowMs, 100, "api")
	orders := burstEvents(10, 0, 300, nowMs-1, 100, "checkout")
	events := append(other, orders...)

	sc := scanContrastWindow(events, pol, cfg, nowMs)
	got := contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 40})

	if len(got) != 1 || got[0].Type != CheckOrderRate {
		t.Fatalf("checks = %v, want one order-rate", got)
	}
}

func TestContrastCPUSaturation(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, CPUCeilingPct: 85, OrderFloorPerMin: 0, OrderCategory: "checkout"}

	// CPU is a gauge signal: it needs no event samples at all.
	sc := scanContrastWindow(nil, pol, cfg, 4_000_000)
	got := contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 92})

	if len(got) != 1 || got[0].Type != CheckCPUSaturation {
		t.Fatalf("checks = %v, want one cpu-saturation", got)
	}

	// At the ceiling exactly, nothing fires.
	got = contrastChecks(sc, pol, cfg, model.Gauges{CPUPct: 85})
	if len(got) != 0 {
		t.Errorf("cpu at ceiling fired %v, want none", got)
	}
}

func TestScanContrastWindowCountsOrders(t *testing.T) {
	pol := model.Policy{BakeSLI: true, LatencyTargetMs: 300, AvailabilityTarget: 99}
	cfg := CheckConfig{WindowSec: 300, MinSamples: 20, OrderCategory: "checkout"}
	nowMs := int64(4_000_000)

	events := []model.Event{
		{Timestamp: nowMs - 1000, Success: true, LatencyMs: 100, Category: "checkout"},
		{Timestamp: nowMs - 2000, Success: true, LatencyMs: 100, Category: "api"},
		{Timestamp: nowMs - 3000, Success: true, LatencyMs: 100, Category: "checkout"},
		{Timestamp: nowMs - 999_000, Success: true, LatencyMs: 100, Category: "checkout"}, // outside
	}

	sc := scanContrastWindow(events, pol, cfg, nowMs)
	if sc.orders != 2 {
		t.Errorf("orders = %d, want 2", sc.orders)
	}
	if sc.stats.Total != 3 {
		t.Errorf("Total = %d, want 3", sc.stats.Total)
	}
	if len(sc.latencies) != 3 {
		t.Errorf("latencies collected = %d, want 3", len(sc.latencies))
	}
}
