package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// padRight / padLeft / truncate: rune-aware width handling
// ---------------------------------------------------------------------------

func TestPadRight_ASCIIShorterThanWidth(t *testing.T) {
	got := padRight("abc", 10)
	if got != "abc       " {
		t.Errorf("padRight(%q, 10) = %q, want %q", "abc", got, "abc       ")
	}
}

func TestPadRight_ASCIIExactWidth(t *testing.T) {
	got := padRight("abcde", 5)
	if got != "abcde" {
		t.Errorf("padRight(%q, 5) = %q, want %q", "abcde", got, "abcde")
	}
}

func TestPadRight_ASCIILongerTruncatedWithEllipsis(t *testing.T) {
	got := padRight("hello world", 8)
	want := "hello..."
	if got != want {
		t.Errorf("padRight(%q, 8) = %q, want %q", "hello world", got, want)
	}
}

func TestPadRight_ASCIILongerWidthLE3_NoEllipsis(t *testing.T) {
	got := padRight("hello", 3)
	want := "hel"
	if got != want {
		t.Errorf("padRight(%q, 3) = %q, want %q", "hello", got, want)
	}
}

func TestPadRight_MultiByteGlyph(t *testing.T) {
	// ∞ is one rune across three bytes; padding must count runes.
	got := padRight("∞", 4)
	runes := []rune(got)
	if len(runes) != 4 {
		t.Errorf("padRight(%q, 4): %d runes (%q), want 4", "∞", len(runes), got)
	}
	if runes[0] != '∞' || string(runes[1:]) != "   " {
		t.Errorf("padRight(%q, 4) = %q, want glyph plus 3 spaces", "∞", got)
	}
}

func TestPadRight_UTF8TruncatesWithEllipsis(t *testing.T) {
	input := "日本語テスト" // 6 runes
	got := padRight(input, 5)
	want := "日本..."
	if got != want {
		t.Errorf("padRight(%q, 5) = %q, want %q", input, got, want)
	}
}

func TestPadLeft_Padding(t *testing.T) {
	got := padLeft("42", 6)
	if got != "    42" {
		t.Errorf("padLeft(%q, 6) = %q, want %q", "42", got, "    42")
	}
}

func TestPadLeft_MultiByteGlyph(t *testing.T) {
	got := padLeft("∞", 6)
	if len([]rune(got)) != 6 {
		t.Errorf("padLeft(%q, 6) = %q (%d runes), want 6 runes", "∞", got, len([]rune(got)))
	}
}

func TestPadLeft_TruncatesWhenTooLong(t *testing.T) {
	got := padLeft("hello world", 5)
	if got != "hello" {
		t.Errorf("padLeft(%q, 5) = %q, want %q", "hello world", got, "hello")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"hi", 10, "hi"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 1, "h"},
		{"日本語テスト", 5, "日本..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// styledPad: ANSI-aware padding
// ---------------------------------------------------------------------------

func TestStyledPad_ANSIAware(t *testing.T) {
	styled := critStyle.Render("RED")
	padded := styledPad(styled, 10)
	if visW := lipgloss.Width(padded); visW != 10 {
		t.Errorf("styledPad visual width = %d, want 10", visW)
	}
}

func TestStyledPad_AlreadyWideEnough(t *testing.T) {
	styled := critStyle.Render("REALLY LONG TEXT")
	if padded := styledPad(styled, 5); padded != styled {
		t.Error("styledPad should return the original when already wide enough")
	}
}

// ---------------------------------------------------------------------------
// bar / sparkline
// ---------------------------------------------------------------------------

func TestBarFill(t *testing.T) {
	tests := []struct {
		pct        float64
		width      int
		wantFilled int
	}{
		{50, 10, 5},
		{0, 10, 0},
		{100, 10, 10},
		{-20, 10, 0},  // clamps low
		{150, 10, 10}, // clamps high
		{55, 10, 5},   // floors partial cells
	}
	for _, tt := range tests {
		got := bar(tt.pct, tt.width)
		if filled := strings.Count(got, "█"); filled != tt.wantFilled {
			t.Errorf("bar(%v, %d) filled = %d, want %d", tt.pct, tt.width, filled, tt.wantFilled)
		}
		if cells := strings.Count(got, "█") + strings.Count(got, "░"); cells != tt.width {
			t.Errorf("bar(%v, %d) cells = %d, want %d", tt.pct, tt.width, cells, tt.width)
		}
	}
}

func TestSparklineEmptyData(t *testing.T) {
	if got := sparkline(nil, 10, 0, 100); lipgloss.Width(got) != 0 {
		t.Errorf("sparkline(nil) = %q, want empty", got)
	}
}

func TestSparklineWidths(t *testing.T) {
	// Short series render one cell per point; long series resample down.
	short := sparkline([]float64{10, 50, 90}, 10, 0, 100)
	if w := lipgloss.Width(short); w != 3 {
		t.Errorf("short sparkline width = %d, want 3", w)
	}

	long := make([]float64, 100)
	for i := range long {
		long[i] = float64(i)
	}
	resampled := sparkline(long, 20, 0, 100)
	if w := lipgloss.Width(resampled); w != 20 {
		t.Errorf("resampled sparkline width = %d, want 20", w)
	}
}

func TestSparklineEqualMinMax(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sparkline with equal min/max panicked: %v", r)
		}
	}()
	if got := sparkline([]float64{50, 50, 50}, 5, 50, 50); got == "" {
		t.Error("sparkline with equal min/max returned empty string")
	}
}

// ---------------------------------------------------------------------------
// formatters
// ---------------------------------------------------------------------------

func TestFmtBurn(t *testing.T) {
	tests := []struct {
		burn float64
		want string
	}{
		{0, "0.0x"},
		{2.5, "2.5x"},
		{14.4, "14.4x"},
		{150, "150x"},
		{math.Inf(1), "∞"},
		{math.MaxFloat64, "∞"}, // the JSON clamp round-trips back to the symbol
	}
	for _, tt := range tests {
		if got := fmtBurn(tt.burn); got != tt.want {
			t.Errorf("fmtBurn(%v) = %q, want %q", tt.burn, got, tt.want)
		}
	}
}

func TestFmtMs(t *testing.T) {
	tests := []struct {
		ms   float64
		want string
	}{
		{0, "0ms"},
		{750, "750ms"},
		{999, "999ms"},
		{1000, "1.00s"},
		{1250, "1.25s"},
	}
	for _, tt := range tests {
		if got := fmtMs(tt.ms); got != tt.want {
			t.Errorf("fmtMs(%v) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFmtAge(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{-5_000, "0s"},
		{0, "0s"},
		{47_000, "47s"},
		{192_000, "3m12s"},
		{3_660_000, "1h1m"},
	}
	for _, tt := range tests {
		if got := fmtAge(tt.ms); got != tt.want {
			t.Errorf("fmtAge(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFmtClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00"},
		{37_230_000, "10:20:30"},
		{90_061_000, "01:01:01"}, // wraps at the demo day
	}
	for _, tt := range tests {
		if got := fmtClock(tt.ms); got != tt.want {
			t.Errorf("fmtClock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFmtCount(t *testing.T) {
	if got := fmtCount(1_234_567); got != "1,234,567" {
		t.Errorf("fmtCount = %q, want 1,234,567", got)
	}
}

func TestWindowName(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{300, "5m"},
		{3600, "1h"},
		{259200, "3d"},
		{45, "45s"},
	}
	for _, tt := range tests {
		if got := windowName(tt.sec); got != tt.want {
			t.Errorf("windowName(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
