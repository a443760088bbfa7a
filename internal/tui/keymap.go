package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Category selector
	PrevCategory key.Binding
	NextCategory key.Binding
	PickCategory key.Binding

	// Card actions
	Preview    key.Binding
	Categorize key.Binding

	// Preview modal
	ToggleRow      key.Binding
	SelectAll      key.Binding
	SelectNone     key.Binding
	ToggleAll      key.Binding
	CommitSelected key.Binding
	Close          key.Binding

	// Application
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next suggestion"),
		),

		PrevCategory: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous category"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next category"),
		),
		PickCategory: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search categories"),
		),

		Preview: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p/Enter", "preview transactions"),
		),
		Categorize: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "categorize all"),
		),

		ToggleRow: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("Space/x", "toggle row"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle all"),
		),
		CommitSelected: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "categorize selected"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),

		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/Ctrl+C", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Preview, k.Categorize, k.NextCategory, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevCategory, k.NextCategory, k.PickCategory},
		{k.Preview, k.Categorize},
		{k.ToggleRow, k.SelectAll, k.SelectNone, k.ToggleAll, k.CommitSelected, k.Close},
		{k.Reload, k.Help, k.Quit},
	}
}
