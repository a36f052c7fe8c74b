// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the booking TUI.
type KeyMap struct {
	// Navigation (context-sensitive: form fields, list rows, or the
	// seat cursor depending on the active screen).
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Seat selection.
	Toggle key.Binding

	// Screen flow.
	Submit key.Binding // Submit form / open trip / confirm booking.
	Back   key.Binding // Return to the previous screen.

	// Seat screen.
	Refresh key.Binding

	// Profile screen.
	Profile  key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Cancel   key.Binding // Cancel the selected booking (admin).

	// Success screen.
	Export key.Binding // Save the ticket PDF.

	About key.Binding
	Quit  key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle seat"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh seats"),
	),
	Profile: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "bookings"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "previous page"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel booking"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "save ticket"),
	),
	About: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "about"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
