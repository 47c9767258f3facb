package model

// WindowRule is one multi-window burn-rate pair. Rules are immutable;
// by convention ShortSec*12 == LongSec, though nothing enforces it.
type WindowRule struct {
	Name       string   `json:"name"`
	ShortSec   float64  `json:"short_sec"`
	LongSec    float64  `json:"long_sec"`
	Threshold  float64  `json:"threshold"`
	Severity   Severity `json:"severity"`
	MinSamples int      `json:"min_samples"`
}
