// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package seatmap

import (
	"slices"
	"strconv"
	"testing"
)

func mustChart(t *testing.T, status map[string]string) *Chart {
	t.Helper()
	chart, err := New(status)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return chart
}

// TestDerivedSets covers the canonical example: a three-seat map with
// one booked seat must yield unavailable = [2] and available = [1, 3].
func TestDerivedSets(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{"1": "available", "2": "booked", "3": "available"})

	if got := chart.Unavailable(); !slices.Equal(got, []int{2}) {
		t.Errorf("Unavailable() = %v, want [2]", got)
	}
	if got := chart.Available(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Available() = %v, want [1 3]", got)
	}
	if got := chart.Seats(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Seats() = %v, want [1 2 3]", got)
	}
}

// TestChosenNeverUnavailable enforces the set invariant: toggling an
// unavailable seat is rejected, so chosen and unavailable stay disjoint.
func TestChosenNeverUnavailable(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{
		"1": "available", "2": "booked", "3": "available", "4": "held",
	})

	if chart.Toggle(2) {
		t.Error("Toggle(2) changed a booked seat")
	}
	if chart.Toggle(4) {
		t.Error("Toggle(4) changed a held seat")
	}
	if !chart.Toggle(1) || !chart.Toggle(3) {
		t.Fatal("Toggle rejected available seats")
	}

	for _, chosen := range chart.Chosen() {
		if chart.IsUnavailable(chosen) {
			t.Errorf("seat %d is both chosen and unavailable", chosen)
		}
	}
}

func TestToggleUnknownSeat(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{"1": "available"})
	if chart.Toggle(99) {
		t.Error("Toggle(99) changed a seat the trip does not have")
	}
}

// TestChosenKeepsSelectionOrder verifies the booking request sees seats
// in the order the user picked them, not sorted.
func TestChosenKeepsSelectionOrder(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{
		"1": "available", "2": "available", "3": "available", "4": "available",
	})
	chart.Toggle(3)
	chart.Toggle(1)
	chart.Toggle(4)
	if got := chart.Chosen(); !slices.Equal(got, []int{3, 1, 4}) {
		t.Errorf("Chosen() = %v, want [3 1 4]", got)
	}

	// Toggling off removes from anywhere in the sequence.
	chart.Toggle(1)
	if got := chart.Chosen(); !slices.Equal(got, []int{3, 4}) {
		t.Errorf("Chosen() after deselect = %v, want [3 4]", got)
	}
}

func TestClearChosen(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{"1": "available", "2": "available"})
	chart.Toggle(1)
	chart.Toggle(2)
	chart.ClearChosen()
	if got := chart.Chosen(); len(got) != 0 {
		t.Errorf("Chosen() after clear = %v, want empty", got)
	}
}

func TestNewRejectsBadSeatNumbers(t *testing.T) {
	t.Parallel()

	if _, err := New(map[string]string{"twelve": "available"}); err == nil {
		t.Error("New accepted a non-numeric seat key")
	}
	if _, err := New(map[string]string{"0": "available"}); err == nil {
		t.Error("New accepted seat number 0")
	}
}

// TestStandardRowsFromMaxSeat verifies the row count derives from the
// maximum seat number, with numbering gaps kept as placeholders.
func TestStandardRowsFromMaxSeat(t *testing.T) {
	t.Parallel()

	// Seats 1-3 and 7-8: max 8 means two rows; 4, 5, 6 are gaps.
	chart := mustChart(t, map[string]string{
		"1": "available", "2": "available", "3": "booked",
		"7": "available", "8": "available",
	})

	rows := chart.Rows(LayoutStandard)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0].Seats; !slices.Equal(got, []int{1, 2, 3, 0}) {
		t.Errorf("row 0 = %v, want [1 2 3 0]", got)
	}
	if got := rows[1].Seats; !slices.Equal(got, []int{0, 0, 7, 8}) {
		t.Errorf("row 1 = %v, want [0 0 7 8]", got)
	}
	for _, row := range rows {
		if row.Kind != RowPair {
			t.Errorf("standard row kind = %v, want RowPair", row.Kind)
		}
	}
}

func TestStandardRowsPartialLastRow(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{
		"1": "available", "2": "available", "3": "available",
		"4": "available", "5": "available",
	})
	rows := chart.Rows(LayoutStandard)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[1].Seats; !slices.Equal(got, []int{5}) {
		t.Errorf("last row = %v, want [5]", got)
	}
}

// TestMiniRowsPattern verifies the 1/2/3/3/4 mini pattern filled in
// ascending seat order, plus overflow rows of four.
func TestMiniRowsPattern(t *testing.T) {
	t.Parallel()

	status := make(map[string]string)
	for seat := 1; seat <= 15; seat++ {
		status[strconv.Itoa(seat)] = "available"
	}
	chart := mustChart(t, status)

	rows := chart.Rows(LayoutMini)
	want := []struct {
		kind  RowKind
		seats []int
	}{
		{RowCenter, []int{1}},
		{RowLeft, []int{2, 3}},
		{RowSplit, []int{4, 5, 6}},
		{RowSplit, []int{7, 8, 9}},
		{RowFull, []int{10, 11, 12, 13}},
		{RowFull, []int{14, 15}},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for index, row := range rows {
		if row.Kind != want[index].kind {
			t.Errorf("row %d kind = %v, want %v", index, row.Kind, want[index].kind)
		}
		if !slices.Equal(row.Seats, want[index].seats) {
			t.Errorf("row %d seats = %v, want %v", index, row.Seats, want[index].seats)
		}
	}
}

func TestMiniRowsShortChart(t *testing.T) {
	t.Parallel()

	chart := mustChart(t, map[string]string{"1": "available", "2": "booked", "3": "available"})
	rows := chart.Rows(LayoutMini)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !slices.Equal(rows[0].Seats, []int{1}) || !slices.Equal(rows[1].Seats, []int{2, 3}) {
		t.Errorf("rows = %+v", rows)
	}
}
