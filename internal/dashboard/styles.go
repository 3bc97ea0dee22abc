package dashboard

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/internal/render"
)

// styles are the lipgloss styles for one palette.
type styles struct {
	header   lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	muted    lipgloss.Style
	panel    lipgloss.Style
	errorBox lipgloss.Style
	helpBox  lipgloss.Style

	ok, warning, critical lipgloss.Style
}

func lg(c color.Color) lipgloss.Color {
	return lipgloss.Color(render.Hex(c))
}

func newStyles(pal render.Palette) styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(lg(pal.Text)).
			Background(lg(pal.Panel)).
			Bold(true).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Foreground(lg(pal.Temperature)).
			Bold(true),
		label: lipgloss.NewStyle().Foreground(lg(pal.Muted)),
		value: lipgloss.NewStyle().Foreground(lg(pal.Text)),
		muted: lipgloss.NewStyle().Foreground(lg(pal.Muted)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lg(pal.Border)).
			MarginRight(1),
		errorBox: lipgloss.NewStyle().
			Foreground(lg(pal.Critical)).
			Padding(0, 1),
		helpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lg(pal.Temperature)).
			Background(lg(pal.Panel)).
			Padding(1, 2),
		ok:       lipgloss.NewStyle().Foreground(lg(pal.OK)),
		warning:  lipgloss.NewStyle().Foreground(lg(pal.Warning)).Bold(true),
		critical: lipgloss.NewStyle().Foreground(lg(pal.Critical)).Bold(true),
	}
}

func (s styles) status(st metrics.Status) lipgloss.Style {
	switch st {
	case metrics.StatusCritical:
		return s.critical
	case metrics.StatusWarning:
		return s.warning
	default:
		return s.ok
	}
}

// Indicator glyphs shown in the header.
const (
	glyphPending = "◐"
	glyphNominal = "◉"
	glyphError   = "◌"
)

func (s styles) indicator(i Indicator) string {
	switch i {
	case IndicatorNominal:
		return s.ok.Render(glyphNominal + " nominal")
	case IndicatorError:
		return s.critical.Render(glyphError + " error")
	default:
		return s.muted.Render(glyphPending + " connecting")
	}
}
