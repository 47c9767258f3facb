package ui

import (
	"fmt"
	"strings"

	"github.com/aaeabdo/sloburn/engine"
)

func renderEventsPage(f engine.Frame, scroll int, replay bool, width, height int) string {
	var sb strings.Builder

	st := f.Status
	sb.WriteString(titleStyle.Render(fmt.Sprintf("EVENTS  (%s ingested, %s bad)",
		fmtCount(st.Ingested.Total), fmtCount(st.Ingested.Bad))))
	sb.WriteString("\n\n")

	if replay {
		sb.WriteString(dimStyle.Render("  Session files carry derived numbers only — no event stream to show."))
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("  Switch to the Windows page to follow the replayed burn rates."))
		return sb.String()
	}

	if len(st.Events) == 0 {
		sb.WriteString(dimStyle.Render("  No events yet — the generator warms up on the first ticks."))
		return sb.String()
	}

	hdr := fmt.Sprintf("  %-9s %-10s %-8s %9s  %-4s %-9s %s",
		"TIME", "CATEGORY", "ORIGIN", "LATENCY", "OK", "SLI", "VIOLATIONS")
	sb.WriteString(headerStyle.Render(hdr))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + strings.Repeat("─", width-4)))
	sb.WriteString("\n")

	rows := height - 8
	if rows < 5 {
		rows = 5
	}
	events := st.Events
	if scroll >= len(events) {
		scroll = len(events) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	if scroll > 0 && scroll < len(events) {
		events = events[scroll:]
	}
	if len(events) > rows {
		events = events[:rows]
	}

	for i := range events {
		e := &events[i]
		okCol := okStyle.Render("yes")
		if !e.Success {
			okCol = critStyle.Render("no ")
		}
		sli := okStyle.Render("good")
		if !e.SLOCompliant {
			sli = warnStyle.Render("bad ")
		}
		violations := strings.Join(e.SLOViolations, ",")
		latStyle := valueStyle
		if !e.SLOCompliant {
			latStyle = warnStyle
		}
		sb.WriteString(fmt.Sprintf("  %-9s %-10s %-8s %s  %s %s  %s\n",
			fmtClock(e.Timestamp),
			padRight(e.Category, 10),
			padRight(e.Origin, 8),
			styledPad(latStyle.Render(padLeft(fmtMs(e.LatencyMs), 9)), 9),
			okCol, sli,
			dimStyle.Render(violations)))
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf(
		"  j/k: scroll  newest first, %d buffered  SLI column is frozen at ingest; windows re-judge live",
		len(st.Events))))
	return sb.String()
}
