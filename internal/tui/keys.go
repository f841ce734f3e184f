package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	Search        key.Binding
	CycleLocation key.Binding
	HideCompleted key.Binding
	ClearFilters  key.Binding

	MarkComplete    key.Binding
	ToggleImportant key.Binding
	Refresh         key.Binding

	Quit key.Binding
	Help key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to board"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search chores"),
		),
		CycleLocation: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "cycle location"),
		),
		HideCompleted: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide done chores"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear all filters"),
		),

		MarkComplete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "mark done"),
		),
		ToggleImportant: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle important"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.MarkComplete, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.MarkComplete, k.ToggleImportant, k.Refresh},
		{k.Search, k.CycleLocation, k.HideCompleted, k.ClearFilters},
		{k.Quit, k.Help},
	}
}
