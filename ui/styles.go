package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aaeabdo/sloburn/model"
)

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")
	colorPanel   = lipgloss.Color("#44475A")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	valueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle   = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorWhite)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	orangeStyle   = lipgloss.NewStyle().Foreground(colorOrange)
)

// sevStyle colors an alert severity.
func sevStyle(sev model.Severity) lipgloss.Style {
	if sev == model.SeverityPage {
		return critStyle
	}
	return warnStyle
}

// stateStyle colors an alert lifecycle state.
func stateStyle(st model.AlertState) lipgloss.Style {
	switch st {
	case model.AlertOpen:
		return critStyle
	case model.AlertAcknowledged:
		return warnStyle
	default:
		return okStyle
	}
}

// burnStyle colors a burn rate against a rule threshold.
func burnStyle(burn, threshold float64) lipgloss.Style {
	switch {
	case burn >= threshold:
		return critStyle
	case burn >= threshold/2:
		return warnStyle
	case burn >= 1:
		return orangeStyle
	default:
		return okStyle
	}
}

// gradeStyle colors an ops grade.
func gradeStyle(grade string) lipgloss.Style {
	switch grade {
	case "A", "B":
		return okStyle
	case "C":
		return warnStyle
	default:
		return critStyle
	}
}
