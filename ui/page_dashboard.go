package ui

import (
	"fmt"
	"strings"

	"github.com/aaeabdo/sloburn/engine"
)

func renderDashboard(f engine.Frame, charts series, width, height int) string {
	var sb strings.Builder
	st := f.Status

	tierName := st.Tier.Name
	if tierName == "" {
		tierName = "custom"
	}
	sb.WriteString(titleStyle.Render("SLO BURN"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  tier=%s  target=%.2f%%  latency=%s  budget=%.3f%%",
		tierName, st.Policy.AvailabilityTarget, fmtMs(st.Policy.LatencyTargetMs), st.Policy.ErrorBudget())))
	sb.WriteString("\n\n")

	// Burn chart for the fastest rule's short window.
	if len(st.Rules) > 0 {
		r := st.Rules[0]
		chartH := height / 3
		if chartH < 4 {
			chartH = 4
		}
		if chartH > 8 {
			chartH = 8
		}
		maxY := autoScale(charts.burn, 1000)
		if maxY < r.Rule.Threshold*1.2 {
			maxY = r.Rule.Threshold * 1.2
		}
		startMs, endMs := charts.span()
		label := fmt.Sprintf("burn rate (%s window)", windowName(r.Rule.ShortSec))
		sb.WriteString(areaChart(charts.burn, label, width-2, chartH, 0, maxY,
			r.Rule.Threshold, thresholdChartColor(r.Rule.Threshold), startMs, endMs))
		sb.WriteString("\n\n")
	}

	// Rule strip: one line per rule.
	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %-8s %14s %14s %10s %8s",
		"RULE", "SEV", "SHORT BURN", "LONG BURN", "THRESHOLD", "STATE")))
	sb.WriteString("\n")
	for _, r := range st.Rules {
		state := okStyle.Render("ok")
		if r.Firing {
			state = critStyle.Render("FIRING")
		} else if r.Short.Total <= r.Rule.MinSamples || r.Long.Total <= r.Rule.MinSamples {
			state = dimStyle.Render("low-n")
		}
		sb.WriteString(fmt.Sprintf("  %-10s %-8s %s %s %10s %s\n",
			r.Rule.Name,
			string(r.Rule.Severity),
			styledPad(burnStyle(r.Short.Burn, r.Rule.Threshold).Render(padLeft(fmtBurn(r.Short.Burn), 14)), 14),
			styledPad(burnStyle(r.Long.Burn, r.Rule.Threshold).Render(padLeft(fmtBurn(r.Long.Burn), 14)), 14),
			fmt.Sprintf("%.1fx", r.Rule.Threshold),
			state))
	}
	sb.WriteString("\n")

	// Gauges + contrast window summary.
	sb.WriteString(fmt.Sprintf("  %s %s %s   %s %s %s   %s %s\n",
		dimStyle.Render("cpu"),
		bar(st.Gauges.CPUPct, 20),
		valueStyle.Render(fmtPct(st.Gauges.CPUPct)),
		dimStyle.Render("5m bad"),
		sparkline(charts.bad, 15, 0, autoScale(charts.bad, 100)),
		valueStyle.Render(fmtPct(st.Contrast.BadPercent)),
		dimStyle.Render("5m p95"),
		valueStyle.Render(fmtMs(st.P95Ms))))
	sb.WriteString("\n")

	// Open alerts strip.
	open := 0
	for i := range st.Alerts {
		if st.Alerts[i].Open() {
			open++
		}
	}
	if open == 0 {
		sb.WriteString(okStyle.Render("  No open alerts"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(critStyle.Render(fmt.Sprintf("  %d open alert(s)", open)))
		sb.WriteString("\n")
		shown := 0
		for i := range st.Alerts {
			a := &st.Alerts[i]
			if !a.Open() || shown >= 3 {
				continue
			}
			sb.WriteString(fmt.Sprintf("   %s %s %s %s\n",
				sevStyle(a.Severity).Render(padRight(string(a.Severity), 6)),
				valueStyle.Render(padRight(a.Type, 16)),
				dimStyle.Render(fmtAge(st.NowMs-a.CreatedAt)+" ago"),
				truncate(a.Message, width-40)))
			shown++
		}
	}
	sb.WriteString("\n")

	// Score badge.
	sb.WriteString(fmt.Sprintf("  %s %s  %s\n",
		dimStyle.Render("ops score"),
		gradeStyle(st.Score.Grade).Render(fmt.Sprintf("%.0f (%s)", st.Score.Score, st.Score.Grade)),
		dimStyle.Render(fmt.Sprintf("events %s", fmtCount(st.Ingested.Total)))))

	return sb.String()
}

// windowName formats a window length for labels.
func windowName(sec float64) string {
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
