package tui

import "github.com/charmbracelet/bubbles/key"

// WatchKeys are the bindings for the live library view.
type WatchKeys struct {
	Quit    key.Binding
	Refresh key.Binding
}

// NewWatchKeys creates the watch view's key bindings.
func NewWatchKeys() WatchKeys {
	return WatchKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

// ShortHelp returns the bindings for the footer help line.
func (k WatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}
