package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aaeabdo/sloburn/engine"
)

func renderAlertsPage(f engine.Frame, selected int, live bool, width, height int) string {
	var sb strings.Builder
	st := f.Status

	open, acked := 0, 0
	for i := range st.Alerts {
		switch {
		case st.Alerts[i].ResolvedAt != 0:
		case st.Alerts[i].AckedAt != 0:
			acked++
		default:
			open++
		}
	}
	sb.WriteString(titleStyle.Render(fmt.Sprintf("ALERTS  (%d total, %d open, %d acked)",
		len(st.Alerts), open, acked)))
	sb.WriteString("\n\n")

	if len(st.Alerts) == 0 {
		sb.WriteString(okStyle.Render("  Nothing has fired — keep the budget cold."))
		return sb.String()
	}

	hdr := fmt.Sprintf("  %-6s %-8s %-16s %9s  %s",
		"SEV", "STATE", "TYPE", "AGE", "MESSAGE")
	sb.WriteString(headerStyle.Render(hdr))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("  " + strings.Repeat("─", width-4)))
	sb.WriteString("\n")

	rows := height - 12
	if rows < 5 {
		rows = 5
	}
	alerts := st.Alerts
	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}
	last := first + rows
	if last > len(alerts) {
		last = len(alerts)
	}

	for i := first; i < last; i++ {
		a := &alerts[i]
		state := a.State()
		line := fmt.Sprintf("  %s %s %-16s %9s  %s",
			styledPad(sevStyle(a.Severity).Render(string(a.Severity)), 6),
			styledPad(stateStyle(state).Render(string(state)), 8),
			padRight(a.Type, 16),
			fmtAge(st.NowMs-a.CreatedAt),
			truncate(a.Message, width-50))
		if i == selected {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")

		// Expanded detail for the selected alert.
		if i == selected {
			rel := humanize.RelTime(time.UnixMilli(a.CreatedAt), time.UnixMilli(st.NowMs), "ago", "from now")
			sb.WriteString(dimStyle.Render(fmt.Sprintf("    id: %s  opened %s", a.ID, rel)))
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("    %s\n", valueStyle.Render(a.Message)))
			timeline := fmt.Sprintf("    fired %s", fmtClock(a.CreatedAt))
			if a.AckedAt != 0 {
				timeline += fmt.Sprintf("  acked %s (+%s)", fmtClock(a.AckedAt), fmtAge(a.AckedAt-a.CreatedAt))
			}
			if a.ResolvedAt != 0 {
				timeline += fmt.Sprintf("  resolved %s (+%s)", fmtClock(a.ResolvedAt), fmtAge(a.ResolvedAt-a.CreatedAt))
			}
			sb.WriteString(dimStyle.Render(timeline))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if live {
		sb.WriteString(dimStyle.Render("  j/k: select  a: acknowledge  r: resolve  one open alert per type at a time"))
	} else {
		sb.WriteString(dimStyle.Render("  j/k: select  replay is read-only"))
	}
	return sb.String()
}
