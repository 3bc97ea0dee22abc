package dashboard

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard's key bindings.
type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Range   key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	Range: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "cycle time range"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Range, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Range},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// rangeSteps are the history windows the range key cycles through.
var rangeSteps = []int{1, 6, 24, 72, 168, 720}

// nextRange returns the step after hours, wrapping to the first.
func nextRange(hours int) int {
	for _, h := range rangeSteps {
		if h > hours {
			return h
		}
	}
	return rangeSteps[0]
}
