package ui

import (
	"fmt"
	"strings"

	"github.com/aaeabdo/sloburn/engine"
	"github.com/aaeabdo/sloburn/model"
)

func renderPolicyPage(f engine.Frame, catalog []model.Tier, width, height int) string {
	var sb strings.Builder
	st := f.Status

	sb.WriteString(titleStyle.Render("POLICY"))
	sb.WriteString("\n\n")

	bake := okStyle.Render("on")
	if !st.Policy.BakeSLI {
		bake = warnStyle.Render("off")
	}
	lock := dimStyle.Render("off")
	if st.Policy.LockExpected {
		lock = orangeStyle.Render(fmt.Sprintf("on (%.2f%%)", st.Policy.LockedTarget))
	}

	innerW := pageInnerW(width)
	if innerW > 64 {
		innerW = 64
	}
	sb.WriteString(renderKVBox([]kv{
		{"availability", fmt.Sprintf("%.2f%%", st.Policy.AvailabilityTarget)},
		{"error budget", fmt.Sprintf("%.3f%%", st.Policy.ErrorBudget())},
		{"latency target", fmtMs(st.Policy.LatencyTargetMs)},
	}, innerW))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s %s   %s %s\n",
		dimStyle.Render("bakeSLI (latency counts as bad):"), bake,
		dimStyle.Render("expected-bad lock:"), lock))
	sb.WriteString("\n")

	// Tier catalog.
	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %14s %10s  %s",
		"TIER", "AVAILABILITY", "LATENCY", "DESCRIPTION")))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + strings.Repeat("─", width-4)))
	sb.WriteString("\n")
	for _, t := range catalog {
		line := fmt.Sprintf("  %-10s %13.2f%% %10s  %s",
			t.Name, t.AvailabilityTarget, fmtMs(t.LatencyTargetMs), t.Description)
		if t.Name == st.Tier.Name {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	// Expected bad% per rule under the current (or locked) target.
	sb.WriteString(headerStyle.Render("  EXPECTED BAD% AT THRESHOLD"))
	sb.WriteString("\n")
	for _, r := range st.Rules {
		sb.WriteString(fmt.Sprintf("  %-10s x%-5.1f -> %s\n",
			r.Rule.Name, r.Rule.Threshold, valueStyle.Render(fmtPct(r.ExpectedBad))))
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  b: bakeSLI  L: lock expected  +/-: latency ±25ms  </>: availability ladder  t: cycle tier"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  Policy edits re-judge ALL retained events instantly; frozen event flags never change."))
	return sb.String()
}
