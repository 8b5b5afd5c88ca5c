package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Today    key.Binding
	Entries  key.Binding
	NewEntry key.Binding
	Settings key.Binding

	// Actions
	Save      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Export    key.Binding
	Import    key.Binding
	Confirm   key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	End  key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Entries:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "entries")),
	NewEntry:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
	Settings:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Import:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
	Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
}
