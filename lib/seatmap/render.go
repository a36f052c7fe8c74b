// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package seatmap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the visual treatment of seat cells. Style precedence when
// rendering is unavailable > chosen > available.
type Styles struct {
	Available   lipgloss.Style
	Chosen      lipgloss.Style
	Unavailable lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the standard terminal palette: blue available
// seats, green chosen, red unavailable, matching the web client's
// colors. ANSI 256 codes for broad terminal compatibility.
func DefaultStyles() Styles {
	return Styles{
		Available:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("27")),
		Chosen:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("34")),
		Unavailable: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")),
		Cursor:      lipgloss.NewStyle().Bold(true).Underline(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

const (
	// aisleGap separates the left and right seat pairs.
	aisleGap = "    "
	// seatGap separates adjacent seats in a group.
	seatGap = " "
	// placeholderCell occupies the spot of a missing seat number.
	placeholderCell = " ·· "
)

// Render draws the chart as a multi-line string. The cursor seat (0 for
// none) is bracketed and highlighted for keyboard navigation.
func (chart *Chart) Render(layout Layout, styles Styles, cursor int) string {
	rows := chart.Rows(layout)
	if len(rows) == 0 {
		return "No seats available for this trip."
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, chart.renderRow(row, styles, cursor))
	}
	return strings.Join(lines, "\n")
}

func (chart *Chart) renderRow(row Row, styles Styles, cursor int) string {
	cells := make([]string, 0, len(row.Seats))
	for _, number := range row.Seats {
		cells = append(cells, chart.renderSeat(number, styles, cursor))
	}

	switch row.Kind {
	case RowPair:
		left := strings.Join(cells[:min(2, len(cells))], seatGap)
		if len(cells) <= 2 {
			return left
		}
		return left + aisleGap + strings.Join(cells[2:], seatGap)
	case RowCenter:
		return strings.Repeat(" ", 10) + strings.Join(cells, seatGap)
	case RowSplit:
		left := strings.Join(cells[:min(2, len(cells))], seatGap)
		if len(cells) <= 2 {
			return left
		}
		return left + aisleGap + cells[2]
	default: // RowLeft, RowFull
		return strings.Join(cells, seatGap)
	}
}

func (chart *Chart) renderSeat(number int, styles Styles, cursor int) string {
	if number == 0 {
		return styles.Placeholder.Render(placeholderCell)
	}

	cell := fmt.Sprintf(" %2d ", number)
	if number == cursor {
		cell = fmt.Sprintf("[%2d]", number)
	}

	var style lipgloss.Style
	switch {
	case chart.IsUnavailable(number):
		style = styles.Unavailable
	case chart.IsChosen(number):
		style = styles.Chosen
	default:
		style = styles.Available
	}
	if number == cursor {
		style = style.Inherit(styles.Cursor)
	}
	return style.Render(cell)
}
