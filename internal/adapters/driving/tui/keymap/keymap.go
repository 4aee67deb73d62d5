// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the login panel.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Next moves focus to the next control.
	Next key.Binding

	// Prev moves focus to the previous control.
	Prev key.Binding

	// Activate presses the focused button, or submits from the code field.
	Activate key.Binding

	// Dismiss closes the error banner.
	Dismiss key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// FormHelp returns keybindings shown under the two-step form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Activate, k.Quit}
}

// ErrorHelp returns keybindings shown under the error banner.
func (k *KeyMap) ErrorHelp() []key.Binding {
	return []key.Binding{k.Dismiss, k.Quit}
}
