package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Settings   key.Binding
	Enter      key.Binding
	Up         key.Binding
	Down       key.Binding
	Submit     key.Binding
	Copy       key.Binding
	NextAction key.Binding
	PrevAction key.Binding
	Language   key.Binding
	Diff       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Actions    []key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "settings"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "run"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	NextAction: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next action"),
	),
	PrevAction: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous action"),
	),
	Language: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "language"),
	),
	Diff: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "diff"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll output"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll output"),
	),
	Actions: []key.Binding{
		key.NewBinding(key.WithKeys("alt+1")),
		key.NewBinding(key.WithKeys("alt+2")),
		key.NewBinding(key.WithKeys("alt+3")),
		key.NewBinding(key.WithKeys("alt+4")),
		key.NewBinding(key.WithKeys("alt+5")),
		key.NewBinding(key.WithKeys("alt+6")),
	},
}
