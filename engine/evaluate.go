package engine

import (
	"fmt"

	"github.com/aaeabdo/sloburn/model"
)

// evalInput bundles the consistent snapshot one evaluation pass sees.
type evalInput struct {
	events []model.Event
	pol    model.Policy
	rules  []model.WindowRule
	checks CheckConfig
	gauges model.Gauges
	nowMs  int64
}

// contrastScan is a single pass over the contrast-check window that
// feeds all the naive checks at once.
type contrastScan struct {
	stats     WindowStats
	latencies []float64
	orders    int
}

// evaluate runs every burn-rate rule and contrast check against the
// snapshot and returns candidates for each condition that holds right
// now. Candidates carry type, severity and message only; the caller
// dedups against open alerts and assigns ids and timestamps.
func evaluate(in evalInput) []model.Alert {
	var out []model.Alert

	for _, r := range in.rules {
		short := SliceWindow(in.events, in.pol, r.ShortSec, in.nowMs)
		long := SliceWindow(in.events, in.pol, r.LongSec, in.nowMs)
		if !ruleFiring(r, short, long) {
			continue
		}
		out = append(out, model.Alert{
			Type:     r.Name,
			Severity: r.Severity,
			Message: fmt.Sprintf("burn %.1fx over %s and %.1fx over %s exceed %.1fx (bakeSLI=%v)",
				short.Burn, windowLabel(r.ShortSec), long.Burn, windowLabel(r.LongSec), r.Threshold, in.pol.BakeSLI),
		})
	}

	scan := scanContrastWindow(in.events, in.pol, in.checks, in.nowMs)
	out = append(out, contrastChecks(scan, in.pol, in.checks, in.gauges)...)
	return out
}

// ruleFiring reports whether both windows of a rule breach its threshold
// with enough samples to trust. Infinite burns count as breaching.
func ruleFiring(r model.WindowRule, short, long WindowStats) bool {
	if short.Total <= r.MinSamples || long.Total <= r.MinSamples {
		return false
	}
	return short.Burn >= r.Threshold && long.Burn >= r.Threshold
}

func scanContrastWindow(events []model.Event, pol model.Policy, cfg CheckConfig, nowMs int64) contrastScan {
	cutoff := nowMs - int64(cfg.WindowSec*1000)
	var sc contrastScan
	var total, bad int
	for i := range events {
		e := &events[i]
		if e.Timestamp < cutoff || e.Timestamp > nowMs {
			continue
		}
		total++
		if !pol.Good(events[i]) {
			bad++
		}
		sc.latencies = append(sc.latencies, e.LatencyMs)
		if e.Category == cfg.OrderCategory {
			sc.orders++
		}
	}
	sc.stats = windowStats(total, bad, pol.ErrorBudget())
	return sc
}

func contrastChecks(sc contrastScan, pol model.Policy, cfg CheckConfig, gauges model.Gauges) []model.Alert {
	var out []model.Alert
	label := windowLabel(cfg.WindowSec)
	enough := sc.stats.Total > cfg.MinSamples

	if enough {
		if avail := 100 - sc.stats.BadPercent; avail < pol.AvailabilityTarget {
			out = append(out, model.Alert{
				Type:     CheckSLOBreach,
				Severity: model.SeverityPage,
				Message: fmt.Sprintf("availability %.2f%% below %.2f%% target over %s",
					avail, pol.AvailabilityTarget, label),
			})
		}
		if p95 := Percentile(sc.latencies, 0.95); p95 > pol.LatencyTargetMs {
			out = append(out, model.Alert{
				Type:     CheckLatencyP95,
				Severity: model.SeverityTicket,
				Message: fmt.Sprintf("p95 latency %.0fms above %.0fms target over %s",
					p95, pol.LatencyTargetMs, label),
			})
		}
		perMin := float64(sc.orders) / (cfg.WindowSec / 60)
		if perMin < cfg.OrderFloorPerMin {
			out = append(out, model.Alert{
				Type:     CheckOrderRate,
				Severity: model.SeverityPage,
				Message: fmt.Sprintf("%s rate %.1f/min below %.1f/min floor over %s",
					cfg.OrderCategory, perMin, cfg.OrderFloorPerMin, label),
			})
		}
	}

	if gauges.CPUPct > cfg.CPUCeilingPct {
		out = append(out, model.Alert{
			Type:     CheckCPUSaturation,
			Severity: model.SeverityTicket,
			Message: fmt.Sprintf("cpu at %.1f%% above %.1f%% ceiling",
				gauges.CPUPct, cfg.CPUCeilingPct),
		})
	}
	return out
}
