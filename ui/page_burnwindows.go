package ui

import (
	"fmt"
	"strings"

	"github.com/aaeabdo/sloburn/engine"
)

func renderWindowsPage(f engine.Frame, width, height int) string {
	var sb strings.Builder
	st := f.Status

	sb.WriteString(titleStyle.Render("BURN-RATE WINDOWS"))
	lockNote := ""
	if st.Policy.LockExpected {
		lockNote = fmt.Sprintf("  expected-bad locked to %.2f%%", st.Policy.LockedTarget)
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  budget=%.3f%%  bakeSLI=%v%s",
		st.Policy.ErrorBudget(), st.Policy.BakeSLI, lockNote)))
	sb.WriteString("\n\n")

	hdr := fmt.Sprintf("  %-10s %-7s %-7s %7s %8s %9s   %-7s %7s %8s %9s  %9s %8s",
		"RULE", "SEV", "SHORT", "N", "BAD%", "BURN", "LONG", "N", "BAD%", "BURN", "EXP.BAD%", "STATE")
	sb.WriteString(headerStyle.Render(hdr))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + strings.Repeat("─", width-4)))
	sb.WriteString("\n")

	for _, r := range st.Rules {
		state := okStyle.Render("ok")
		if r.Firing {
			state = critStyle.Render("FIRING")
		} else if r.Short.Total <= r.Rule.MinSamples || r.Long.Total <= r.Rule.MinSamples {
			state = dimStyle.Render("low-n")
		}
		sb.WriteString(fmt.Sprintf("  %-10s %-7s %-7s %7d %8s %s   %-7s %7d %8s %s  %9s %8s\n",
			r.Rule.Name,
			string(r.Rule.Severity),
			windowName(r.Rule.ShortSec),
			r.Short.Total,
			fmtPct(r.Short.BadPercent),
			styledPad(burnStyle(r.Short.Burn, r.Rule.Threshold).Render(padLeft(fmtBurn(r.Short.Burn), 9)), 9),
			windowName(r.Rule.LongSec),
			r.Long.Total,
			fmtPct(r.Long.BadPercent),
			styledPad(burnStyle(r.Long.Burn, r.Rule.Threshold).Render(padLeft(fmtBurn(r.Long.Burn), 9)), 9),
			fmtPct(r.ExpectedBad),
			state))
	}

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("  CONTRAST CHECKS (single 5m window)"))
	sb.WriteString("\n")
	avail := 100 - st.Contrast.BadPercent
	availStyle := okStyle
	if avail < st.Policy.AvailabilityTarget {
		availStyle = critStyle
	}
	p95Style := okStyle
	if st.P95Ms > st.Policy.LatencyTargetMs {
		p95Style = critStyle
	}
	sb.WriteString(fmt.Sprintf("  %-16s %s  (target %.2f%%, n=%d)\n",
		"availability", availStyle.Render(fmt.Sprintf("%.2f%%", avail)), st.Policy.AvailabilityTarget, st.Contrast.Total))
	sb.WriteString(fmt.Sprintf("  %-16s %s  (target %s)\n",
		"p95 latency", p95Style.Render(fmtMs(st.P95Ms)), fmtMs(st.Policy.LatencyTargetMs)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  A rule fires only when BOTH its windows burn past the threshold with enough samples."))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  EXP.BAD% is the bad rate a window would show burning at exactly the threshold."))
	return sb.String()
}
