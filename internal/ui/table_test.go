package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/vitals/internal/metrics"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "PID", Width: 8},
		{Title: "PROCESS", Width: 20},
	}
	rows := []table.Row{
		{"812", "plex"},
		{"1", "systemd"},
	}

	view := NewTable(columns, rows).View()

	assert.Contains(t, view, "PID")
	assert.Contains(t, view, "PROCESS")
	assert.Contains(t, view, "plex")
	assert.Contains(t, view, "systemd")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "Name", Width: 20}}, []table.Row{}).View()
	assert.Contains(t, view, "Name")
}

func TestRenderSimpleTable(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		contains []string
		empty    bool
	}{
		{
			name:     "container rows",
			rows:     [][]string{{"plex", "running"}, {"db", "exited"}},
			contains: []string{"CONTAINER", "STATUS", "plex", "running", "db", "exited"},
		},
		{
			name:  "no rows",
			rows:  nil,
			empty: true,
		},
	}

	columns := []TableColumn{
		{Title: "CONTAINER", Width: 15},
		{Title: "STATUS", Width: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSimpleTable(columns, tt.rows)
			if tt.empty {
				assert.Empty(t, out)
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestRenderLevelTable(t *testing.T) {
	out := RenderLevelTable([]LevelRow{
		{Name: "cpu temperature", Value: "72.5°C", Status: metrics.StatusWarning, Available: true},
		{Name: "memory", Value: "55.0%", Status: metrics.StatusOK, Available: true},
		{Name: "disk /data", Value: "96.0%", Status: metrics.StatusCritical, Available: true},
		{Name: "container db", Available: false, Detail: "inspect failed"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header, border, four rows
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "METRIC")

	assert.Contains(t, lines[2], SymbolWarning)
	assert.Contains(t, lines[2], "72.5°C")
	assert.Contains(t, lines[2], "warning")

	assert.Contains(t, lines[3], SymbolOK)
	assert.Contains(t, lines[3], "ok")

	assert.Contains(t, lines[4], SymbolFail)
	assert.Contains(t, lines[4], "critical")

	assert.Contains(t, lines[5], SymbolUnavailable)
	assert.Contains(t, lines[5], "unavailable: inspect failed")
}

func TestRenderLevelTable_Empty(t *testing.T) {
	assert.Equal(t, "No metrics reported", RenderLevelTable(nil))
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 5, "ab   "},
		{"abcdef", 3, "abcdef"},
		{"°C", 4, "°C  "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, padRight(tt.in, tt.width))
	}
}
