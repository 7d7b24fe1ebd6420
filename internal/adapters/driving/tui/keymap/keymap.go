// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI. It satisfies help.KeyMap.
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Submit runs the typed query.
	Submit key.Binding

	// NewQuery clears the results and focuses the input.
	NewQuery key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		NewQuery: key.NewBinding(
			key.WithKeys("n", "/"),
			key.WithHelp("n", "new question"),
		),
	}
}

// ShortHelp returns the menu keybindings.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Submit, k.NewQuery, k.Back, k.Quit},
	}
}

// QueryHelp returns the keybindings of the query view.
func (k *KeyMap) QueryHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewQuery, k.Back}
}
