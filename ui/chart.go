package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// areaChart renders a multi-line area chart with Y-axis labels and
// sub-cell resolution using fractional block characters. An optional
// threshold draws a marker row so breaches read at a glance. Time labels
// come from the demo clock.
func areaChart(data []float64, label string, width, height int, minVal, maxVal, threshold float64,
	colorFn func(float64) lipgloss.Style, startMs, endMs int64) string {

	if height < 2 {
		height = 2
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	axisW := 5 // e.g. "100.0│" clipped to 5
	chartW := width - axisW - 1
	if chartW < 10 {
		chartW = 10
	}

	resampled := resampleData(data, chartW)
	subBlocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var sb strings.Builder

	last := float64(0)
	if len(resampled) > 0 {
		last = resampled[len(resampled)-1]
	}
	sb.WriteString(titleStyle.Render(label))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  now: %.2f", last)))
	sb.WriteString("\n")

	rangeVal := maxVal - minVal

	// Which row holds the threshold marker, -1 for none.
	thresholdRow := -1
	if threshold > minVal && threshold <= maxVal {
		thresholdRow = int((threshold - minVal) / rangeVal * float64(height))
		if thresholdRow >= height {
			thresholdRow = height - 1
		}
	}

	for row := height - 1; row >= 0; row-- {
		yVal := minVal + (float64(row+1)/float64(height))*rangeVal
		sb.WriteString(dimStyle.Render(padLeft(fmt.Sprintf("%.0f", yVal), axisW-1)))
		sb.WriteString(dimStyle.Render("│"))

		for col := 0; col < len(resampled); col++ {
			val := resampled[col]
			normalized := (val - minVal) / rangeVal * float64(height)

			cellBottom := float64(row)
			cellTop := float64(row + 1)

			var ch rune
			switch {
			case normalized >= cellTop:
				ch = '█'
			case normalized <= cellBottom:
				ch = ' '
			default:
				fraction := normalized - cellBottom
				idx := int(fraction * 8)
				if idx >= len(subBlocks) {
					idx = len(subBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				ch = subBlocks[idx]
			}

			if ch == ' ' {
				if row == thresholdRow {
					sb.WriteString(critStyle.Render("┄"))
				} else {
					sb.WriteRune(' ')
				}
				continue
			}
			sb.WriteString(colorFn(val).Render(string(ch)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render(strings.Repeat(" ", axisW-1) + "└" + strings.Repeat("─", len(resampled))))
	sb.WriteString("\n")

	if startMs > 0 && endMs > startMs {
		left := fmtClock(startMs)
		right := fmtClock(endMs)
		gap := len(resampled) - len(left) - len(right) + axisW
		if gap < 1 {
			gap = 1
		}
		sb.WriteString(dimStyle.Render(strings.Repeat(" ", axisW-1) + left + strings.Repeat(" ", gap) + right))
	}

	return sb.String()
}

// resampleData reduces or returns data to fit targetWidth columns,
// averaging source buckets.
func resampleData(data []float64, targetWidth int) []float64 {
	if len(data) == 0 {
		return data
	}
	if len(data) <= targetWidth {
		return data
	}
	result := make([]float64, targetWidth)
	for i := 0; i < targetWidth; i++ {
		srcStart := i * len(data) / targetWidth
		srcEnd := (i + 1) * len(data) / targetWidth
		if srcEnd > len(data) {
			srcEnd = len(data)
		}
		if srcStart >= srcEnd {
			srcStart = srcEnd - 1
			if srcStart < 0 {
				srcStart = 0
			}
		}
		sum := float64(0)
		count := 0
		for j := srcStart; j < srcEnd; j++ {
			sum += data[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}

// thresholdChartColor colors values against a breach threshold.
func thresholdChartColor(threshold float64) func(float64) lipgloss.Style {
	return func(val float64) lipgloss.Style {
		switch {
		case val >= threshold:
			return critStyle
		case val >= threshold/2:
			return warnStyle
		default:
			return okStyle
		}
	}
}

// autoScale computes a "nice" Y-axis max based on actual data values.
func autoScale(data []float64, hardMax float64) float64 {
	maxVal := float64(0)
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 5 // minimum scale for all-zero data
	}
	target := maxVal * 1.3 // 30% headroom
	nice := []float64{1, 2, 5, 10, 15, 20, 25, 30, 40, 50, 75, 100, 200, 500, 1000}
	for _, n := range nice {
		if target <= n {
			return n
		}
	}
	return hardMax
}
