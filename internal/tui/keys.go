package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	NextView    key.Binding
	Start       key.Binding
	Cancel      key.Binding
	Complete    key.Binding
	WaterAdd    key.Binding
	WaterRemove key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start fast"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel fast"),
		),
		Complete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "complete fast"),
		),
		WaterAdd: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "log water"),
		),
		WaterRemove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "undo water"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Start, k.WaterAdd, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.Start, k.Cancel, k.Complete},
		{k.WaterAdd, k.WaterRemove, k.Quit},
	}
}
