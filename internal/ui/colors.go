package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// Color palette using ANSI color codes for terminal compatibility.
// The dashboard skins carry their own true-colour palettes; these are for
// line-oriented CLI output, which should follow the user's terminal theme.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// StatusColor maps a classified status onto a semantic color.
func StatusColor(s metrics.Status) lipgloss.Color {
	switch s {
	case metrics.StatusCritical:
		return ColorError
	case metrics.StatusWarning:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// StatusStyle returns a foreground style for a classified status.
// Warning and critical are bold so they stand out in monochrome too.
func StatusStyle(s metrics.Status) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(StatusColor(s))
	if s != metrics.StatusOK {
		st = st.Bold(true)
	}
	return st
}

// MutedStyle is used for secondary text and unavailable values.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches lipgloss to plain ASCII output (for --no-color
// and non-terminal stdout).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
