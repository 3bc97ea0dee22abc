package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/vitals/internal/render"
)

// Notifier turns orchestrator change callbacks into Bubble Tea messages.
// Bursts of changes collapse into one pending notification.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier creates a Notifier. Pass its Notify method as Options.OnChange.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify records a change without blocking.
func (n *Notifier) Notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Notifier) wait(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-n.ch:
			return changedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// changedMsg signals that the orchestrator state changed.
type changedMsg struct{}

// clockMsg refreshes relative times in the header.
type clockMsg time.Time

// startedMsg arrives once the first cycles have run.
type startedMsg struct{}

const clockInterval = time.Second

// Model is the Bubble Tea model for the terminal dashboard.
type Model struct {
	orch     *Orchestrator
	notifier *Notifier
	ctx      context.Context
	cancel   context.CancelFunc
	panels   *panels
	styles   styles
	help     help.Model
	tables   viewport.Model
	now      func() time.Time

	width, height int
	showHelp      bool
	quitting      bool
}

// NewModel creates a dashboard model driving orch. The notifier must be
// the one wired into orch's OnChange.
func NewModel(orch *Orchestrator, notifier *Notifier, pal render.Palette) Model {
	ctx, cancel := context.WithCancel(context.Background())
	p := newPanels()
	p.layout(defaultWidth)
	return Model{
		orch:     orch,
		notifier: notifier,
		ctx:      ctx,
		cancel:   cancel,
		panels:   p,
		styles:   newStyles(pal),
		help:     help.New(),
		tables:   viewport.New(defaultWidth, tableRows),
		now:      time.Now,
	}
}

// Init runs the first cycles, then starts the live loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.initCmd(),
		m.notifier.wait(m.ctx),
		clockCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.orch.Resize(func() { m.panels.layout(msg.Width) })
		m.tables.Width = msg.Width
		m.tables.Height = m.tableHeight()
		m.refreshTables()

	case changedMsg:
		m.refreshTables()
		return m, m.notifier.wait(m.ctx)

	case startedMsg:
		return m, m.runCmd()

	case clockMsg:
		return m, clockCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case m.showHelp && msg.String() == "esc":
		m.showHelp = false
		m.help.ShowAll = false
		return m, nil

	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, keys.Range):
		return m, m.rangeCmd(nextRange(m.orch.Hours()))

	case key.Matches(msg, keys.Up, keys.Down):
		var cmd tea.Cmd
		m.tables, cmd = m.tables.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	var out string
	m.orch.View(func(st State) {
		out = m.renderDashboard(st)
	})
	return out
}

func (m Model) initCmd() tea.Cmd {
	return func() tea.Msg {
		m.orch.Initialize(m.ctx, m.panels.bindings())
		return startedMsg{}
	}
}

// runCmd blocks for the life of the program; Bubble Tea runs it on its
// own goroutine.
func (m Model) runCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.orch.Run(m.ctx)
		return nil
	}
}

// refreshCmd runs a manual live cycle. Its outcome reaches the view
// through the notifier.
func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.orch.RefreshNow(m.ctx)
		return nil
	}
}

func (m Model) rangeCmd(hours int) tea.Cmd {
	return func() tea.Msg {
		m.orch.SetTimeRange(m.ctx, hours)
		return nil
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) tableHeight() int {
	h := m.height - fixedRows
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) refreshTables() {
	st := m.orch.State()
	m.tables.SetContent(m.renderTables(st))
}
