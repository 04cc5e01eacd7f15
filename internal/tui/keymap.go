package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Filters
	Search         key.Binding
	NextLevel      key.Binding
	PrevLevel      key.Binding
	NextLocation   key.Binding
	PrevLocation   key.Binding
	NextUniversity key.Binding
	PrevUniversity key.Binding
	NextCourse     key.Binding
	PrevCourse     key.Binding
	RaisePrice     key.Binding
	LowerPrice     key.Binding
	Reset          key.Binding

	// Actions
	Ask    key.Binding
	Delete key.Binding
	Yes    key.Binding
	No     key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/T", "level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("T"),
		),
		NextLocation: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l/L", "location"),
		),
		PrevLocation: key.NewBinding(
			key.WithKeys("L"),
		),
		NextUniversity: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u/U", "university"),
		),
		PrevUniversity: key.NewBinding(
			key.WithKeys("U"),
		),
		NextCourse: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c/C", "course"),
		),
		PrevCourse: key.NewBinding(
			key.WithKeys("C"),
		),
		RaisePrice: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "max price"),
		),
		LowerPrice: key.NewBinding(
			key.WithKeys("-", "_"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),

		Ask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "ask assistant"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextLevel, k.NextLocation, k.RaisePrice, k.Ask, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Search, k.NextLevel, k.NextLocation, k.NextUniversity, k.NextCourse},
		{k.RaisePrice, k.Reset, k.Ask, k.Delete},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
