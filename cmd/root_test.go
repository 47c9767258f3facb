package cmd

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ── clockOf ──────────────────────────────────────────────────────────────────

func TestClockOf(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{59_999, "00:00:59"},
		{37_230_000, "10:20:30"},
		{86_400_000, "00:00:00"}, // wraps at 24h
		{90_061_000, "01:01:01"},
	}
	for _, tt := range tests {
		if got := clockOf(tt.ms); got != tt.want {
			t.Errorf("clockOf(%d) = %q; want %q", tt.ms, got, tt.want)
		}
	}
}

// ── fmtBurnPlain ─────────────────────────────────────────────────────────────

func TestFmtBurnPlain(t *testing.T) {
	tests := []struct {
		burn float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{14.4, "14.4"},
		{1e6, "inf"},
		{math.Inf(1), "inf"},
	}
	for _, tt := range tests {
		if got := fmtBurnPlain(tt.burn); got != tt.want {
			t.Errorf("fmtBurnPlain(%v) = %q; want %q", tt.burn, got, tt.want)
		}
	}
}

// ── buildSession ─────────────────────────────────────────────────────────────

func testConfig() Config {
	return Config{
		Interval:    time.Second,
		Speed:       60,
		Seed:        42,
		Scenario:    "steady",
		HistorySize: 3000,
		AlertCap:    100,
		Tier:        "gold",
	}
}

func TestBuildSessionUnknownTier(t *testing.T) {
	cfg := testConfig()
	cfg.Tier = "adamantium"

	_, err := buildSession(cfg, zerolog.Nop())
	if err == nil {
		t.Fatal("buildSession with unknown tier should fail")
	}
	if !strings.Contains(err.Error(), "adamantium") {
		t.Errorf("error should name the tier; got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "gold") {
		t.Errorf("error should list the catalog; got %q", err.Error())
	}
}

func TestBuildSessionDefaults(t *testing.T) {
	s, err := buildSession(testConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("buildSession failed: %v", err)
	}
	if got := s.catalog[s.tierIdx].Name; got != "gold" {
		t.Errorf("tierIdx points at %q; want %q", got, "gold")
	}
	if s.gen == nil || s.eng == nil || s.ticker == nil {
		t.Fatal("session is missing a component")
	}
}

func TestFastForwardProducesTraffic(t *testing.T) {
	cfg := testConfig()
	cfg.Minutes = 2

	s, err := buildSession(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildSession failed: %v", err)
	}
	frame := fastForward(s, cfg)

	if frame.Scenario != "steady" {
		t.Errorf("frame scenario = %q; want %q", frame.Scenario, "steady")
	}
	if frame.Status.Ingested.Total == 0 {
		t.Error("two demo minutes of steady traffic should classify events")
	}
	if got := len(frame.Status.Rules); got != 4 {
		t.Errorf("frame carries %d rules; want 4", got)
	}
}

func TestFastForwardMinimumOneTick(t *testing.T) {
	cfg := testConfig()
	cfg.Minutes = 0 // below one step, still ticks once

	s, err := buildSession(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildSession failed: %v", err)
	}
	frame := fastForward(s, cfg)
	if frame.Status.NowMs == 0 {
		t.Error("fastForward should produce at least one frame")
	}
}
