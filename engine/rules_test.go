package engine

import (
	"testing"

	"github.com/aaeabdo/sloburn/model"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != 4 {
		t.Fatalf("len(rules) = %d, want 4", len(rules))
	}

	for _, r := range rules {
		if r.LongSec != 12*r.ShortSec {
			t.Errorf("%s: long window %v is not 12x short %v", r.Name, r.LongSec, r.ShortSec)
		}
		if r.MinSamples != 20 {
			t.Errorf("%s: MinSamples = %d, want 20", r.Name, r.MinSamples)
		}
	}

	// Ordered fastest to slowest, thresholds strictly descending: quick
	// detection requires a hotter burn, the slow ladder pages earlier in
	// budget terms.
	for i := 1; i < len(rules); i++ {
		if rules[i].ShortSec <= rules[i-1].ShortSec {
			t.Errorf("rules not ordered by window: %s after %s", rules[i].Name, rules[i-1].Name)
		}
		if rules[i].Threshold >= rules[i-1].Threshold {
			t.Errorf("thresholds not descending: %s=%v after %s=%v",
				rules[i].Name, rules[i].Threshold, rules[i-1].Name, rules[i-1].Threshold)
		}
	}

	if rules[0].Severity != model.SeverityPage || rules[3].Severity != model.SeverityTicket {
		t.Errorf("severity ladder wrong: fastest=%s slowest=%s", rules[0].Severity, rules[3].Severity)
	}
}

func TestWindowLabel(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{45, "45s"},
		{300, "5m"},
		{3600, "1h"},
		{21600, "6h"},
		{86400, "1d"},
		{259200, "3d"},
		{90, "90s"}, // not a whole number of minutes
	}
	for _, tt := range tests {
		if got := windowLabel(tt.sec); got != tt.want {
			t.Errorf("windowLabel(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
