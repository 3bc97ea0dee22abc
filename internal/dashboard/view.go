package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/vitals/internal/metrics"
	"github.com/rileyhilliard/vitals/internal/render"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// renderDashboard renders the complete dashboard. It runs under the
// orchestrator lock, so it may read the braille surfaces.
func (m Model) renderDashboard(st State) string {
	var b strings.Builder

	b.WriteString(m.renderHeader(st))
	b.WriteString("\n")
	if line := m.renderError(st); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	p := m.panels
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.panel.Render(p.tempGauge.Render()),
		m.styles.panel.Render(p.memGauge.Render()),
		m.styles.panel.Render(p.tempWave.Render()),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.panel.Render(p.loadWave.Render()),
		m.styles.panel.Render(p.memWave.Render()),
	))
	b.WriteString("\n")

	bars := []string{p.memBar.Render()}
	if disks, ok := st.Snapshot.Disk.Get(); ok {
		for _, d := range disks {
			if s, ok := p.disks[d.Key]; ok {
				bars = append(bars, s.Render())
			}
		}
	} else if st.HasSnapshot {
		bars = append(bars, m.unavailable("disks", st.Snapshot.Disk.Reason()))
	}
	b.WriteString(m.styles.panel.Render(strings.Join(bars, "\n")))
	b.WriteString("\n")

	if tiles := m.renderTiles(st); tiles != "" {
		b.WriteString(tiles)
		b.WriteString("\n")
	}
	if detail := m.renderDetail(st); detail != "" {
		b.WriteString(detail)
		b.WriteString("\n")
	}

	b.WriteString(m.tables.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

// renderHeader renders the title bar with the indicator and data age.
func (m Model) renderHeader(st State) string {
	title := m.styles.title.Render("vitals")

	parts := []string{
		m.styles.indicator(st.Indicator),
		m.styles.label.Render("range " + formatRange(st.Hours)),
	}
	if !st.LastUpdated.IsZero() {
		parts = append(parts, m.styles.label.Render("updated "+formatAge(m.now().Sub(st.LastUpdated))))
	}
	if st.Stats.TotalRecords.Valid {
		parts = append(parts, m.styles.label.Render(fmt.Sprintf("%s records · %s MB",
			st.Stats.TotalRecords.Format(0), st.Stats.DatabaseSizeMB.Format(1))))
	}

	return m.styles.header.Render(title + m.styles.label.Render(" | ") + strings.Join(parts, m.styles.label.Render(" | ")))
}

// renderError shows the first line of the last live failure.
func (m Model) renderError(st State) string {
	err := st.Err
	if err == nil {
		err = st.HistoryErr
	}
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(strings.TrimPrefix(strings.SplitN(err.Error(), "\n", 2)[0], "✗"))
	return m.styles.errorBox.Render("✗ " + msg)
}

func (m Model) renderTiles(st State) string {
	containers, ok := st.Snapshot.Docker.Get()
	if !ok || len(containers) == 0 {
		return ""
	}
	perRow := max((m.panels.width)/(tileCols+panelChrome), 1)

	var rows, row []string
	for _, c := range containers {
		s, ok := m.panels.containers[c.Key]
		if !ok {
			continue
		}
		row = append(row, m.styles.panel.Render(s.Render()))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderDetail lists memory totals, load and SMART health.
func (m Model) renderDetail(st State) string {
	if !st.HasSnapshot {
		return ""
	}
	snap := st.Snapshot
	var lines []string

	if mem, ok := snap.Memory.Get(); ok {
		line := m.styles.label.Render("memory ") + m.styles.value.Render(fmt.Sprintf("%s / %s GB",
			gb(mem.UsedMB), gb(mem.TotalMB)))
		if mem.SwapTotalMB.Valid && mem.SwapTotalMB.Value > 0 {
			line += m.styles.label.Render("  swap ") + m.styles.value.Render(fmt.Sprintf("%s / %s GB",
				gb(mem.SwapUsedMB), gb(mem.SwapTotalMB)))
		}
		lines = append(lines, line)
	}

	if ld, ok := snap.LoadAverages().Get(); ok {
		line := m.styles.label.Render("load ") + m.styles.value.Render(fmt.Sprintf("%s %s %s",
			ld.One.Format(2), ld.Five.Format(2), ld.Fifteen.Format(2)))
		if ld.RunningProcesses != "" {
			line += m.styles.label.Render("  procs ") + m.styles.value.Render(ld.RunningProcesses)
		}
		if ld.UptimeSeconds.Valid {
			line += m.styles.label.Render("  up ") + m.styles.value.Render(formatAge(time.Duration(ld.UptimeSeconds.Value)*time.Second))
		}
		lines = append(lines, line)
	}

	if smart, ok := snap.SMART.Get(); ok {
		for _, e := range smart {
			lines = append(lines, m.renderSmart(e))
		}
	} else if snap.SMART.State() == metrics.Failed {
		lines = append(lines, m.unavailable("smart", snap.SMART.Reason()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSmart(e metrics.Keyed[metrics.Smart]) string {
	name := m.styles.label.Render(render.BaseDevice(e.Key) + " ")
	s, ok := e.Reading.Get()
	if !ok {
		return name + m.styles.muted.Render("unavailable: "+e.Reading.Reason())
	}

	badge := render.BadgeUnknown
	if s.HealthPassed != nil {
		badge = render.BadgeFail
		if *s.HealthPassed {
			badge = render.BadgePass
		}
	}
	st := m.styles.muted
	switch badge {
	case render.BadgePass:
		st = m.styles.ok
	case render.BadgeFail:
		st = m.styles.critical
	}

	line := name + st.Render(badge.Glyph()+" "+badge.String()) + m.styles.value.Render(" "+s.Model)
	if s.TemperatureCelsius.Valid {
		line += m.styles.label.Render("  ") + m.styles.value.Render(s.TemperatureCelsius.Format(0)+"°C")
	}
	if days := s.PowerOnDays(); days.Valid {
		line += m.styles.label.Render("  on ") + m.styles.value.Render(days.Format(0)+"d")
	}
	return line
}

// renderTables renders the process and container tables.
func (m Model) renderTables(st State) string {
	var sections []string

	if procs, ok := st.Snapshot.Processes.Get(); ok && len(procs) > 0 {
		rows := make([][]string, 0, len(procs))
		for _, p := range procs {
			rows = append(rows, []string{
				fmt.Sprintf("%d", p.PID),
				p.Name,
				p.MemMB.Format(1),
				p.MemPercent.Format(1),
			})
		}
		sections = append(sections, ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "PID", Width: 8},
			{Title: "PROCESS", Width: 24},
			{Title: "MEM MB", Width: 10},
			{Title: "MEM %", Width: 8},
		}, rows))
	} else if st.Snapshot.Processes.State() == metrics.Failed {
		sections = append(sections, m.unavailable("processes", st.Snapshot.Processes.Reason()))
	}

	if containers, ok := st.Snapshot.Docker.Get(); ok && len(containers) > 0 {
		rows := make([][]string, 0, len(containers))
		for _, e := range containers {
			c, ok := e.Reading.Get()
			if !ok {
				rows = append(rows, []string{e.Key, "unavailable", "", "", "", ""})
				continue
			}
			rows = append(rows, []string{
				e.Key,
				string(c.Status),
				string(c.Health),
				c.CPUPercent.Format(1),
				c.MemoryMB.Format(0),
				c.RestartCount.Format(0),
			})
		}
		sections = append(sections, ui.RenderSimpleTable([]ui.TableColumn{
			{Title: "CONTAINER", Width: 20},
			{Title: "STATUS", Width: 12},
			{Title: "HEALTH", Width: 10},
			{Title: "CPU %", Width: 7},
			{Title: "MEM MB", Width: 8},
			{Title: "RESTARTS", Width: 9},
		}, rows))
	} else if st.Snapshot.Docker.State() == metrics.Failed {
		sections = append(sections, m.unavailable("containers", st.Snapshot.Docker.Reason()))
	}

	if len(sections) == 0 {
		return m.styles.muted.Render("no process or container data")
	}
	return strings.Join(sections, "\n")
}

// unavailable renders the line shown in place of a group whose whole
// reading failed.
func (m Model) unavailable(group, reason string) string {
	return m.styles.label.Render(group+" ") + m.styles.muted.Render("unavailable: "+reason)
}

// renderHelpOverlay renders a centered help box.
func (m Model) renderHelpOverlay() string {
	box := m.styles.helpBox.Render(
		m.styles.title.Render("Keyboard Shortcuts") + "\n\n" +
			m.help.View(keys) + "\n\n" +
			m.styles.label.Render("Press ? to close"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func gb(mb metrics.Num) string {
	if !mb.Valid {
		return "--"
	}
	return fmt.Sprintf("%.1f", mb.Value/1024)
}

func formatRange(hours int) string {
	if hours%24 == 0 && hours >= 48 {
		return fmt.Sprintf("%dd", hours/24)
	}
	return fmt.Sprintf("%dh", hours)
}

// formatAge renders a duration the way the header shows data age.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
