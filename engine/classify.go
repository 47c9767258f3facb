package engine

import "github.com/aaeabdo/sloburn/model"

// Classify turns a candidate into an immutable Event, judging latency
// against the target in effect right now. The compliance fields are
// frozen from this moment on; later policy changes never rewrite them.
// Pure function: the caller owns id generation and history append.
func Classify(id string, c model.Candidate, pol model.Policy) model.Event {
	violations := []string{}
	if c.LatencyMs > pol.LatencyTargetMs {
		violations = append(violations, model.ViolationLatency)
	}
	return model.Event{
		ID:            id,
		Timestamp:     c.Timestamp,
		Success:       c.Success,
		LatencyMs:     c.LatencyMs,
		Category:      c.Category,
		Origin:        c.Origin,
		Context:       c.Context,
		SLOCompliant:  len(violations) == 0,
		SLOViolations: violations,
	}
}
