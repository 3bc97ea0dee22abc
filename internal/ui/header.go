package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // e.g. "v0.3.0"
	Source  string // where telemetry comes from, e.g. "http://nas:5000" or "local"
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the title line, source and a divider.
func RenderHeader(info HeaderInfo) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(ColorInfo).Bold(true).Render("vitals"))
	if info.Version != "" {
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Version))
	}
	b.WriteString("\n")

	if info.Source != "" {
		b.WriteString(MutedStyle().Render(info.Source))
		b.WriteString("\n")
	}

	b.WriteString(MutedStyle().Render(strings.Repeat("━", HeaderWidth)))
	b.WriteString("\n")
	return b.String()
}
