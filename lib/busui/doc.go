// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package busui is the interactive terminal frontend for booking trips.
//
// The UI is a single bubbletea [Model] that walks the booking flow as a
// sequence of screens: search form, trip list, seat map, booking
// details, the held-seats review, and the finished booking. Submitting
// the details places the server-side hold; the review screen then asks
// for a final confirm, or releases the seats on cancel. A separate
// profile screen shows the booking history with pagination and, for
// admin accounts, cancellation.
//
// All network traffic runs through asynchronous tea.Cmd closures; the
// model itself never blocks. While a request is in flight the model
// drops keyboard input and shows a spinner, and the booking
// orchestrator independently rejects concurrent attempts.
//
// Seat conflicts are handled the way the seat map demands: when a hold
// or confirmation fails because another customer took a chosen seat,
// the model reloads the authoritative seat map and the user picks
// again from scratch.
package busui
