package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.Foreground(ColorPrimary)
	// Nothing is focused, so the selected row must look like any other.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// LevelRow is one classified metric in the status table.
type LevelRow struct {
	Name      string
	Value     string // formatted value with unit
	Status    metrics.Status
	Available bool
	Detail    string // failure reason when unavailable
}

// RenderLevelTable renders classified metrics, one per line, with a
// status symbol and colored value.
func RenderLevelTable(rows []LevelRow) string {
	if len(rows) == 0 {
		return "No metrics reported"
	}

	muted := MutedStyle()
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	nameWidth := len("METRIC")
	for _, r := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(r.Name))
	}
	nameWidth += 2

	var b strings.Builder
	b.WriteString(headerStyle.Render("  " + padRight("METRIC", nameWidth) + padRight("VALUE", 12) + "STATUS"))
	b.WriteString("\n")

	for _, r := range rows {
		if !r.Available {
			b.WriteString("  " + muted.Render(SymbolUnavailable) + " ")
			b.WriteString(padRight(r.Name, nameWidth))
			b.WriteString(padRight(muted.Render("--"), 12))
			b.WriteString(muted.Render("unavailable: " + r.Detail))
			b.WriteString("\n")
			continue
		}

		st := StatusStyle(r.Status)
		b.WriteString("  " + st.Render(statusSymbol(r.Status)) + " ")
		b.WriteString(padRight(r.Name, nameWidth))
		b.WriteString(padRight(st.Render(r.Value), 12))
		b.WriteString(st.Render(r.Status.String()))
		b.WriteString("\n")
	}

	return b.String()
}

func statusSymbol(s metrics.Status) string {
	switch s {
	case metrics.StatusCritical:
		return SymbolFail
	case metrics.StatusWarning:
		return SymbolWarning
	default:
		return SymbolOK
	}
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
