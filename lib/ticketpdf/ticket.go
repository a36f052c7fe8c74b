// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketpdf renders a booking as a printable A4 ticket.
package ticketpdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

const (
	pageWidth = 210.0
	margin    = 15.0
	brandName = "ROYAL BUS"
)

// Render produces the PDF bytes for a booking ticket.
func Render(booking *api.Booking) ([]byte, error) {
	if booking == nil {
		return nil, fmt.Errorf("no booking to render")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	drawHeader(pdf, booking)
	drawRoute(pdf, booking)
	y := drawDetails(pdf, booking)
	drawPayment(pdf, booking, y)
	drawFooter(pdf, booking)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHeader(pdf *gofpdf.Fpdf, booking *api.Booking) {
	// Header band in the web client's blue.
	pdf.SetFillColor(29, 78, 216)
	pdf.Rect(0, 0, pageWidth, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(margin, 8)
	pdf.Cell(0, 10, brandName+" E-TICKET")

	status := booking.PaymentStatus
	if status == "" {
		status = booking.Status
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(margin, 8)
	pdf.CellFormat(pageWidth-2*margin, 10, status, "", 0, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)
}

func drawRoute(pdf *gofpdf.Fpdf, booking *api.Booking) {
	y := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, y)
	pdf.Cell(0, 10, booking.Trip.StartLocation)
	pdf.SetXY(margin, y)
	pdf.CellFormat(pageWidth-2*margin, 10, booking.Trip.Destination, "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(margin, y+8)
	pdf.CellFormat(pageWidth-2*margin, 8, "from    >>>>    to", "", 0, "C", false, 0, "")

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, y+20, pageWidth-margin, y+20)
	pdf.SetY(y + 26)
}

// drawDetails renders the two-column passenger and trip block and
// returns the y position below it.
func drawDetails(pdf *gofpdf.Fpdf, booking *api.Booking) float64 {
	leftCol := margin
	rightCol := pageWidth/2 + 5

	rows := []struct {
		label string
		value string
		right bool
	}{
		{"Passenger", orNA(booking.CustomerName), false},
		{"Bus Type", string(booking.Trip.BusType), true},
		{"Phone", orNA(booking.CustomerPhone), false},
		{"Seats", seatList(booking.SelectedSeats), true},
		{"Departure", formatDate(booking.Trip.DepartureDate), false},
		{"Total", fmt.Sprintf("%.2f EGP", booking.TotalPrice), true},
	}

	y := pdf.GetY()
	rowHeight := 16.0
	for i, row := range rows {
		x := leftCol
		if row.right {
			x = rightCol
		}
		rowY := y + float64(i/2)*rowHeight

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetXY(x, rowY)
		pdf.Cell(0, 5, strings.ToUpper(row.label))

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x, rowY+5)
		pdf.Cell(0, 7, row.value)
	}

	bottom := y + 3*rowHeight + 4
	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, bottom, pageWidth-margin, bottom)
	return bottom + 6
}

func drawPayment(pdf *gofpdf.Fpdf, booking *api.Booking, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(margin, y)
	pdf.Cell(0, 8, "PAYMENT")

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Reference: " + orNA(booking.PaymentReference),
		"Method: " + orNA(string(booking.PaymentType)),
		"Booked: " + formatDate(booking.BookingDate),
	}
	for i, line := range lines {
		pdf.SetXY(margin, y+10+float64(i)*6)
		pdf.Cell(0, 6, line)
	}
}

func drawFooter(pdf *gofpdf.Fpdf, booking *api.Booking) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(margin, 280, pageWidth-margin, 280)
	pdf.SetY(283)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Booking #%d. Present this ticket when boarding.", booking.ID),
		"", 0, "C", false, 0, "")
}

func seatList(seats []int) string {
	if len(seats) == 0 {
		return "N/A"
	}
	parts := make([]string, len(seats))
	for i, seat := range seats {
		parts[i] = strconv.Itoa(seat)
	}
	return strings.Join(parts, ", ")
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

// formatDate renders server dates as "02 Jan 2006". Timestamps and
// unparseable values pass through unchanged.
func formatDate(value string) string {
	if value == "" {
		return "N/A"
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("02 Jan 2006")
		}
	}
	return value
}
