// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package ticketpdf

import (
	"bytes"
	"testing"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

func sampleBooking() *api.Booking {
	return &api.Booking{
		ID:     314,
		Status: api.BookingConfirmed,
		Trip: api.TripSummary{
			StartLocation: "Cairo",
			Destination:   "Hurghada",
			DepartureDate: "2026-09-02",
			BusType:       api.BusStandard,
		},
		SelectedSeats:    []int{7, 8},
		TotalPrice:       640,
		PaymentType:      api.PaymentOnline,
		PaymentStatus:    "PAID",
		PaymentReference: "PMB-55102",
		BookingDate:      "2026-08-30",
		CustomerName:     "Nour Hassan",
		CustomerPhone:    "01001234567",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	t.Parallel()

	data, err := Render(sampleBooking())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small ticket: %d bytes", len(data))
	}
}

func TestRenderToleratesMissingFields(t *testing.T) {
	t.Parallel()

	booking := sampleBooking()
	booking.CustomerName = ""
	booking.CustomerPhone = ""
	booking.PaymentReference = ""
	booking.SelectedSeats = nil
	booking.BookingDate = ""

	data, err := Render(booking)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestRenderNilBooking(t *testing.T) {
	t.Parallel()

	if _, err := Render(nil); err == nil {
		t.Fatal("expected error for nil booking")
	}
}

func TestSeatList(t *testing.T) {
	t.Parallel()

	if got := seatList([]int{7, 3, 12}); got != "7, 3, 12" {
		t.Errorf("seatList = %q, want selection order preserved", got)
	}
	if got := seatList(nil); got != "N/A" {
		t.Errorf("seatList(nil) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if got := formatDate("2026-09-02"); got != "02 Sep 2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate("2026-09-02T14:30:00Z"); got != "02 Sep 2026" {
		t.Errorf("formatDate timestamp = %q", got)
	}
	if got := formatDate("tomorrow"); got != "tomorrow" {
		t.Errorf("formatDate passthrough = %q", got)
	}
	if got := formatDate(""); got != "N/A" {
		t.Errorf("formatDate empty = %q", got)
	}
}
