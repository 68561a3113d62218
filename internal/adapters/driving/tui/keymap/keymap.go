// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the case list.
	Back key.Binding

	// Up navigates up in the case list.
	Up key.Binding

	// Down navigates down in the case list.
	Down key.Binding

	// Select opens the highlighted case.
	Select key.Binding

	// Previous selects the previous image.
	Previous key.Binding

	// Next selects the next image.
	Next key.Binding

	// ZoomIn increases the zoom level.
	ZoomIn key.Binding

	// ZoomOut decreases the zoom level.
	ZoomOut key.Binding

	// ResetZoom returns to minimum zoom.
	ResetZoom key.Binding
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
			key.WithHelp("enter", "open"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous image"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next image"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		ResetZoom: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset zoom"),
		),
	}
}

// CasesHelp returns keybindings shown in the case list view.
func (k *KeyMap) CasesHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// ViewerHelp returns keybindings shown in the viewer view.
func (k *KeyMap) ViewerHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.ZoomIn, k.ZoomOut, k.ResetZoom, k.Back}
}
