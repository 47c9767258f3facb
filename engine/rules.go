package engine

import (
	"fmt"

	"github.com/aaeabdo/sloburn/model"
)

// Alert types emitted by the burn-rate rules and the contrast checks.
// At most one open alert exists per type at any time.
const (
	CheckSLOBreach     = "slo-breach"
	CheckLatencyP95    = "latency-p95"
	CheckCPUSaturation = "cpu-saturation"
	CheckOrderRate     = "order-rate"
)

// DefaultRules returns the four standing multi-window burn-rate pairs.
// Each long window is 12x its short window; thresholds follow the usual
// ladder where faster detection demands a hotter burn before paging.
func DefaultRules() []model.WindowRule {
	return []model.WindowRule{
		{Name: "burn-1h", ShortSec: 300, LongSec: 3600, Threshold: 14.4, Severity: model.SeverityPage, MinSamples: 20},
		{Name: "burn-6h", ShortSec: 1800, LongSec: 21600, Threshold: 6, Severity: model.SeverityPage, MinSamples: 20},
		{Name: "burn-24h", ShortSec: 7200, LongSec: 86400, Threshold: 3, Severity: model.SeverityTicket, MinSamples: 20},
		{Name: "burn-3d", ShortSec: 21600, LongSec: 259200, Threshold: 1, Severity: model.SeverityTicket, MinSamples: 20},
	}
}

// CheckConfig holds the thresholds for the naive single-window checks
// that run alongside the burn-rate rules for contrast.
type CheckConfig struct {
	WindowSec        float64
	MinSamples       int
	CPUCeilingPct    float64
	OrderFloorPerMin float64
	OrderCategory    string
}

// DefaultChecks mirrors the burn rules' fastest window and sample gate.
func DefaultChecks() CheckConfig {
	return CheckConfig{
		WindowSec:        300,
		MinSamples:       20,
		CPUCeilingPct:    85,
		OrderFloorPerMin: 10,
		OrderCategory:    "checkout",
	}
}

// windowLabel renders a window length for rule names and alert text,
// e.g. 300 -> "5m", 21600 -> "6h", 259200 -> "3d".
func windowLabel(sec float64) string {
	s := int64(sec)
	switch {
	case s >= 86400 && s%86400 == 0:
		return fmt.Sprintf("%dd", s/86400)
	case s >= 3600 && s%3600 == 0:
		return fmt.Sprintf("%dh", s/3600)
	case s >= 60 && s%60 == 0:
		return fmt.Sprintf("%dm", s/60)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
