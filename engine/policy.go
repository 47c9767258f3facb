package engine

import "github.com/aaeabdo/sloburn/model"

// ExpectedBadPercent is the display-side inverse of the burn formula:
// the bad percentage a window would show if it burned at exactly
// threshold times the sustainable pace. With the expectation locked, the
// locked target is used instead of the live one so that the reference
// column stays put while an operator experiments with targets.
func ExpectedBadPercent(pol model.Policy, threshold float64) float64 {
	target := pol.AvailabilityTarget
	if pol.LockExpected {
		target = pol.LockedTarget
	}
	return (100 - target) * threshold
}

// sanitizePolicy clamps operator input at the write boundary. Fields
// outside their legal range keep the current value instead of poisoning
// the evaluator; toggling the lock on without a stored target snapshots
// the live one.
func sanitizePolicy(next, cur model.Policy) model.Policy {
	if next.LatencyTargetMs <= 0 {
		next.LatencyTargetMs = cur.LatencyTargetMs
	}
	if next.AvailabilityTarget <= 0 || next.AvailabilityTarget > 100 {
		next.AvailabilityTarget = cur.AvailabilityTarget
	}
	if next.LockedTarget < 0 || next.LockedTarget > 100 {
		next.LockedTarget = cur.LockedTarget
	}
	if next.LockExpected && next.LockedTarget == 0 {
		next.LockedTarget = next.AvailabilityTarget
	}
	return next
}
