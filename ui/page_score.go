package ui

import (
	"fmt"
	"strings"

	"github.com/aaeabdo/sloburn/engine"
)

func renderScorePage(f engine.Frame, width, height int) string {
	var sb strings.Builder
	sc := f.Status.Score

	sb.WriteString(titleStyle.Render("OPS SCORE"))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  %s %s\n\n",
		gradeStyle(sc.Grade).Render(fmt.Sprintf("  %s  ", sc.Grade)),
		valueStyle.Render(fmt.Sprintf("%.0f / 100", sc.Score))))

	component := func(name string, v float64, weight string) string {
		return fmt.Sprintf("  %-16s %s %s  %s",
			name, bar(v*100, 24), valueStyle.Render(fmt.Sprintf("%3.0f%%", v*100)), dimStyle.Render(weight))
	}
	sb.WriteString(component("budget health", sc.Budget, "40%  cold budget beats a hot one") + "\n")
	sb.WriteString(component("page hygiene", sc.Hygiene, "30%  open pages age against you") + "\n")
	sb.WriteString(component("responsiveness", sc.Responsive, "30%  fast acks on pages") + "\n")
	sb.WriteString("\n")

	mtta := "-"
	if sc.MeanAckMs > 0 {
		mtta = fmtAge(int64(sc.MeanAckMs))
	}
	innerW := pageInnerW(width)
	if innerW > 56 {
		innerW = 56
	}
	sb.WriteString(renderKVBox([]kv{
		{"events", fmtCount(sc.EventsTotal)},
		{"pages fired", fmt.Sprintf("%d", sc.PagesFired)},
		{"tickets fired", fmt.Sprintf("%d", sc.TicketsFired)},
		{"acknowledged", fmt.Sprintf("%d", sc.Acked)},
		{"resolved", fmt.Sprintf("%d", sc.Resolved)},
		{"mean time to ack", mtta},
	}, innerW))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  Scores move on the demo clock: a page left open ten demo minutes zeroes hygiene."))
	return sb.String()
}
