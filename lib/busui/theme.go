// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/seatmap"
)

// Theme defines the color palette for the booking TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Booking status colors.
	StatusPending   lipgloss.Color
	StatusConfirmed lipgloss.Color
	StatusCancelled lipgloss.Color

	// Seat colors, mirrored into the seat map renderer.
	SeatAvailable   lipgloss.Color
	SeatChosen      lipgloss.Color
	SeatUnavailable lipgloss.Color

	// UI chrome.
	HeaderBackground lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// StatusColor returns the color for a booking status string. Unknown
// values return FaintText.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case api.BookingPending:
		return theme.StatusPending
	case api.BookingConfirmed:
		return theme.StatusConfirmed
	case api.BookingCancelled:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}

// SeatStyles builds the seat map style set from the theme palette.
func (theme Theme) SeatStyles() seatmap.Styles {
	return seatmap.Styles{
		Available:   lipgloss.NewStyle().Foreground(theme.SeatAvailable),
		Chosen:      lipgloss.NewStyle().Foreground(theme.SeatChosen).Bold(true),
		Unavailable: lipgloss.NewStyle().Foreground(theme.SeatUnavailable).Strikethrough(true),
		Cursor:      lipgloss.NewStyle().Bold(true).Underline(true),
		Placeholder: lipgloss.NewStyle().Foreground(theme.FaintText),
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Seat colors
// match the web client: blue available, green chosen, red taken.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusPending:   lipgloss.Color("220"), // amber
	StatusConfirmed: lipgloss.Color("114"), // green
	StatusCancelled: lipgloss.Color("196"), // red

	SeatAvailable:   lipgloss.Color("75"),
	SeatChosen:      lipgloss.Color("114"),
	SeatUnavailable: lipgloss.Color("196"),

	HeaderBackground: lipgloss.Color("26"), // the web client's header blue
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),
}
