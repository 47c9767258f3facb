package model

// Policy is the operator-controlled SLO configuration. Evaluation code
// receives it by value so a pass can never observe a half-applied write.
type Policy struct {
	// BakeSLI folds latency compliance into goodness: when true an event
	// is good only if it succeeded AND met the latency target.
	BakeSLI bool `json:"bake_sli"`

	// LatencyTargetMs is the per-event latency ceiling, used both to
	// classify new events and to re-score retained ones.
	LatencyTargetMs float64 `json:"latency_target_ms"`

	// AvailabilityTarget is the SLO in (0,100]. Error budget is
	// 100 - AvailabilityTarget.
	AvailabilityTarget float64 `json:"availability_target"`

	// LockExpected freezes the target used by expected-bad% displays at
	// LockedTarget. Reporting only; firing always uses the live target.
	LockExpected bool    `json:"lock_expected"`
	LockedTarget float64 `json:"locked_target"`
}

// ErrorBudget returns the allowed bad percentage. Zero or negative
// means the budget is degenerate and burn is unbounded.
func (p Policy) ErrorBudget() float64 {
	return 100 - p.AvailabilityTarget
}

// Good reports whether an event counts as good under this policy.
// This is a live judgment against the current latency target, distinct
// from the event's frozen classification.
func (p Policy) Good(e Event) bool {
	return e.Success && (!p.BakeSLI || e.LatencyMs <= p.LatencyTargetMs)
}

// Tier is one entry of the service-tier catalog. Selecting a tier
// copies both targets into the policy.
type Tier struct {
	Name               string  `yaml:"name" json:"name"`
	AvailabilityTarget float64 `yaml:"availability_target" json:"availability_target"`
	LatencyTargetMs    float64 `yaml:"latency_target_ms" json:"latency_target_ms"`
	Description        string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// Gauges carries the simulator's system-level signals that are not
// derivable from the event stream.
type Gauges struct {
	CPUPct float64 `json:"cpu_pct"`
}
