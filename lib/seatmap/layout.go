// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package seatmap

import (
	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// Layout selects the visual arrangement of a trip's seats.
type Layout int

const (
	// LayoutStandard is the full-size coach: rows of four with an aisle
	// between the left and right pair.
	LayoutStandard Layout = iota
	// LayoutMini is the mini bus: a fixed 1/2/3/3/4 row pattern filled
	// with seats in ascending order, then plain rows of four.
	LayoutMini
)

// LayoutFor maps a trip's bus type to its layout. Unknown types get the
// standard layout.
func LayoutFor(busType api.BusType) Layout {
	if busType == api.BusMini {
		return LayoutMini
	}
	return LayoutStandard
}

// RowKind describes how a row's seats are grouped on screen.
type RowKind int

const (
	// RowPair is a standard-coach row: two seats, aisle, two seats.
	RowPair RowKind = iota
	// RowCenter is a single centered seat (mini bus front).
	RowCenter
	// RowLeft is a group of seats flushed left.
	RowLeft
	// RowSplit is two seats left and one right with a gap between.
	RowSplit
	// RowFull is seats spread in one run with no aisle.
	RowFull
)

// Row is one on-screen row of seats. A zero seat number marks a
// placeholder for a gap in the trip's seat numbering.
type Row struct {
	Kind  RowKind
	Seats []int
}

// miniPattern is the mini bus arrangement: one centered seat, a left
// pair, two split rows, then a full back row.
var miniPattern = []struct {
	kind  RowKind
	seats int
}{
	{RowCenter, 1},
	{RowLeft, 2},
	{RowSplit, 3},
	{RowSplit, 3},
	{RowFull, 4},
}

// Rows projects the chart into layout rows.
func (chart *Chart) Rows(layout Layout) []Row {
	if layout == LayoutMini {
		return chart.miniRows()
	}
	return chart.standardRows()
}

// standardRows lays seats out four across by seat number. The row count
// comes from the maximum seat number present, and numbering gaps within
// that range become placeholders so every seat keeps its physical spot.
func (chart *Chart) standardRows() []Row {
	maxSeat := chart.MaxSeat()
	if maxSeat == 0 {
		return nil
	}
	totalRows := (maxSeat + 3) / 4

	rows := make([]Row, 0, totalRows)
	for rowIndex := 0; rowIndex < totalRows; rowIndex++ {
		row := Row{Kind: RowPair}
		for position := 1; position <= 4; position++ {
			number := rowIndex*4 + position
			if number > maxSeat {
				break
			}
			if !chart.present[number] {
				row.Seats = append(row.Seats, 0)
				continue
			}
			row.Seats = append(row.Seats, number)
		}
		rows = append(rows, row)
	}
	return rows
}

// miniRows fills the fixed mini pattern with seats in ascending order,
// ignoring seat numbers for placement. Seats beyond the pattern spill
// into full rows of four.
func (chart *Chart) miniRows() []Row {
	seats := chart.numbers
	rows := make([]Row, 0, len(miniPattern))
	index := 0

	for _, pattern := range miniPattern {
		if index >= len(seats) {
			break
		}
		row := Row{Kind: pattern.kind}
		for taken := 0; taken < pattern.seats && index < len(seats); taken++ {
			row.Seats = append(row.Seats, seats[index])
			index++
		}
		rows = append(rows, row)
	}

	for index < len(seats) {
		row := Row{Kind: RowFull}
		for taken := 0; taken < 4 && index < len(seats); taken++ {
			row.Seats = append(row.Seats, seats[index])
			index++
		}
		rows = append(rows, row)
	}
	return rows
}
