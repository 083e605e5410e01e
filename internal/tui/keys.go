package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding

	// Focus
	Next key.Binding
	Prev key.Binding

	// Actions
	Select     key.Binding
	AddLine    key.Binding
	RemoveLine key.Binding
	Save       key.Binding

	// Choice and calendar movement
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
	Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press / pick date")),
	AddLine:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add line")),
	RemoveLine: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove line")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save PDF")),
	Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
	Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "week back")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "week ahead")),
	PrevMonth:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "month back")),
	NextMonth:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "month ahead")),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.AddLine, k.RemoveLine, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Select},
		{k.AddLine, k.RemoveLine, k.Save},
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Help, k.Quit},
	}
}
