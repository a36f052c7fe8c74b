// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package seatmap tracks per-trip seat state and projects it into the
// two bus layouts. A Chart partitions seats into three disjoint sets
// (available, locally chosen, and server-reported unavailable) and
// keeps the invariant that a chosen seat is never unavailable.
//
// The chart holds no network or UI state; it is rebuilt from the
// server's seat-status map whenever the server reports a conflict.
package seatmap

import (
	"fmt"
	"slices"
	"strconv"
)

// statusAvailable is the only seat status that permits selection; every
// other value ("booked", "held", anything future) is unavailable.
const statusAvailable = "available"

// Chart is the client-side view of one trip's seats.
type Chart struct {
	numbers     []int
	present     map[int]bool
	unavailable map[int]bool
	chosen      []int
}

// New builds a Chart from the wire seat-status map (seat number as a
// string key, status as value). Seat numbers need not be contiguous.
func New(status map[string]string) (*Chart, error) {
	chart := &Chart{
		present:     make(map[int]bool, len(status)),
		unavailable: make(map[int]bool),
	}
	for key, value := range status {
		number, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("seat number %q: %w", key, err)
		}
		if number < 1 {
			return nil, fmt.Errorf("seat number %d out of range", number)
		}
		chart.numbers = append(chart.numbers, number)
		chart.present[number] = true
		if value != statusAvailable {
			chart.unavailable[number] = true
		}
	}
	slices.Sort(chart.numbers)
	return chart, nil
}

// Seats returns all seat numbers, ascending.
func (chart *Chart) Seats() []int {
	return slices.Clone(chart.numbers)
}

// Unavailable returns the server-reported booked/held seats, ascending.
func (chart *Chart) Unavailable() []int {
	seats := make([]int, 0, len(chart.unavailable))
	for number := range chart.unavailable {
		seats = append(seats, number)
	}
	slices.Sort(seats)
	return seats
}

// Available returns the selectable seats, ascending.
func (chart *Chart) Available() []int {
	seats := make([]int, 0, len(chart.numbers)-len(chart.unavailable))
	for _, number := range chart.numbers {
		if !chart.unavailable[number] {
			seats = append(seats, number)
		}
	}
	return seats
}

// Chosen returns the locally selected seats in the order the user
// picked them. The booking request preserves this order.
func (chart *Chart) Chosen() []int {
	return slices.Clone(chart.chosen)
}

// IsUnavailable reports whether a seat is booked or held server-side.
func (chart *Chart) IsUnavailable(number int) bool {
	return chart.unavailable[number]
}

// IsChosen reports whether a seat is locally selected.
func (chart *Chart) IsChosen(number int) bool {
	return slices.Contains(chart.chosen, number)
}

// Has reports whether the trip has a seat with this number.
func (chart *Chart) Has(number int) bool {
	return chart.present[number]
}

// Toggle flips local selection of a seat and reports whether anything
// changed. Toggling an unavailable or unknown seat is a no-op, which is
// what keeps chosen and unavailable disjoint.
func (chart *Chart) Toggle(number int) bool {
	if !chart.present[number] || chart.unavailable[number] {
		return false
	}
	if index := slices.Index(chart.chosen, number); index >= 0 {
		chart.chosen = slices.Delete(chart.chosen, index, index+1)
		return true
	}
	chart.chosen = append(chart.chosen, number)
	return true
}

// ClearChosen drops the local selection.
func (chart *Chart) ClearChosen() {
	chart.chosen = nil
}

// MaxSeat returns the highest seat number, or 0 for an empty chart.
// Layout row counts derive from this, not from the seat count, so
// numbering gaps render as placeholders instead of shifting seats.
func (chart *Chart) MaxSeat() int {
	if len(chart.numbers) == 0 {
		return 0
	}
	return chart.numbers[len(chart.numbers)-1]
}
