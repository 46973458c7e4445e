package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the checkout key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	ToggleAlt key.Binding
	Swap      key.Binding
	Delivery  key.Binding
	Packaging key.Binding
	Route     key.Binding
	Info      key.Binding
	LearnMore key.Binding
	Close     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		ToggleAlt: key.NewBinding(
			key.WithKeys("tab", "v"),
			key.WithHelp("tab/v", "greener option"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "swap"),
		),
		Delivery: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delivery"),
		),
		Packaging: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "packaging"),
		),
		Route: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "route details"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "why this score"),
		),
		LearnMore: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "learn more"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleAlt, k.Swap, k.Delivery, k.Packaging, k.Route, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.ToggleAlt, k.Swap},
		{k.Delivery, k.Packaging, k.Route, k.Close},
		{k.Info, k.LearnMore, k.Help, k.Quit},
	}
}
