// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package busui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/seatmap"
)

// View implements tea.Model.
func (model Model) View() string {
	var body string
	switch model.screen {
	case ScreenSearch:
		body = model.viewSearch()
	case ScreenTrips:
		body = model.viewTrips()
	case ScreenSeats:
		body = model.viewSeats()
	case ScreenDetails:
		body = model.viewDetails()
	case ScreenConfirm:
		body = model.viewConfirm()
	case ScreenSuccess:
		body = model.viewSuccess()
	case ScreenProfile:
		body = model.viewProfile()
	case ScreenLogin:
		body = model.viewLogin()
	case ScreenAbout:
		body = model.viewAbout()
	}

	return model.viewHeader() + "\n\n" + body + "\n\n" + model.viewStatusBar()
}

func (model Model) viewHeader() string {
	style := lipgloss.NewStyle().
		Background(model.theme.HeaderBackground).
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Padding(0, 1)

	title := "ROYAL BUS"
	account := model.user.Name
	if model.isAdmin() {
		account += " (admin)"
	}
	return style.Render(title) + "  " + model.faint(account)
}

func (model Model) viewStatusBar() string {
	if model.busy {
		return model.spinner.View() + " " + model.faint(model.status)
	}
	if model.errorText != "" {
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		return errorStyle.Render(model.errorText)
	}

	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	var help string
	switch model.screen {
	case ScreenSearch:
		help = "↑/↓ field · ←/→ change · enter search · P bookings · q quit"
	case ScreenTrips:
		help = "↑/↓ move · enter seats · esc back · P bookings · q quit"
	case ScreenSeats:
		help = "arrows move · space toggle · enter continue · r refresh · esc back"
	case ScreenDetails:
		help = "↑/↓ field · ←/→ payment · enter hold seats · esc back"
	case ScreenConfirm:
		help = "enter confirm · esc release seats"
	case ScreenSuccess:
		help = "e save ticket · P bookings · esc new search · q quit"
	case ScreenProfile:
		help = "↑/↓ move · n/p page · esc back · q quit"
		if model.isAdmin() {
			help = "↑/↓ move · n/p page · x cancel · esc back · q quit"
		}
	case ScreenLogin:
		help = "↑/↓ field · enter sign in · ctrl+c quit"
	case ScreenAbout:
		help = "esc back · q quit"
	}
	return helpStyle.Render(help)
}

func (model Model) viewSearch() string {
	if len(model.cities) == 0 {
		return model.faint("waiting for locations...")
	}

	start := model.cities[model.startCity]
	destination := model.cities[model.destCity]

	roundTrip := "no"
	if model.roundTrip {
		roundTrip = "yes"
	}

	rows := []struct {
		label string
		value string
	}{
		{"From city", start.Name},
		{"From area", areaName(start, model.startArea)},
		{"To city", destination.Name},
		{"To area", areaName(destination, model.destArea)},
		{"Date", model.dateInput.View()},
		{"Round trip", roundTrip},
	}

	var builder strings.Builder
	builder.WriteString("Find a trip\n\n")
	for i, row := range rows {
		marker := "  "
		if i == model.searchFocus {
			marker = "> "
		}
		fmt.Fprintf(&builder, "%s%-10s %s\n", marker, row.label, row.value)
	}
	return builder.String()
}

func areaName(city api.City, index int) string {
	if len(city.Areas) == 0 {
		return "(no areas)"
	}
	if index >= len(city.Areas) {
		index = 0
	}
	return city.Areas[index].Name
}

func (model Model) viewTrips() string {
	if len(model.trips) == 0 {
		return "No trips found for that route and date."
	}

	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var builder strings.Builder
	fmt.Fprintf(&builder, "%d trips found\n\n", len(model.trips))
	for i, trip := range model.trips {
		line := fmt.Sprintf("%s -> %s  %s  %-8s  %.2f EGP  %d seats left",
			trip.StartLocation, trip.Destination, trip.DepartureDate,
			trip.BusType, trip.Price, trip.AvailableSeats)
		if i == model.tripCursor {
			line = selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		builder.WriteString(line + "\n")
	}
	return builder.String()
}

func (model Model) viewSeats() string {
	if model.chart == nil {
		return model.faint("loading seats...")
	}

	cursor := 0
	if seats := model.chart.Seats(); len(seats) > 0 {
		cursor = seats[model.seatCursor]
	}

	layout := seatmap.LayoutFor(model.trip.BusType)
	grid := model.chart.Render(layout, model.theme.SeatStyles(), cursor)

	chosen := model.chart.Chosen()
	summary := "none"
	if len(chosen) > 0 {
		parts := make([]string, len(chosen))
		for i, seat := range chosen {
			parts[i] = fmt.Sprintf("%d", seat)
		}
		summary = strings.Join(parts, ", ")
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s -> %s on %s (%s)\n\n",
		model.trip.StartLocation, model.trip.Destination,
		model.trip.DepartureDate, model.trip.BusType)
	builder.WriteString(grid)
	builder.WriteString("\n\n")
	fmt.Fprintf(&builder, "Chosen: %s\n", summary)
	fmt.Fprintf(&builder, "Total:  %.2f EGP\n", float64(len(chosen))*model.trip.Price)
	return builder.String()
}

func (model Model) viewDetails() string {
	chosen := model.chart.Chosen()
	parts := make([]string, len(chosen))
	for i, seat := range chosen {
		parts[i] = fmt.Sprintf("%d", seat)
	}

	var builder strings.Builder
	builder.WriteString("Booking details\n\n")
	fmt.Fprintf(&builder, "  Trip:   %s -> %s on %s\n",
		model.trip.StartLocation, model.trip.Destination, model.trip.DepartureDate)
	fmt.Fprintf(&builder, "  Seats:  %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&builder, "  Total:  %.2f EGP\n\n", float64(len(chosen))*model.trip.Price)

	marker := func(field int) string {
		if model.detailsFocus == field {
			return "> "
		}
		return "  "
	}

	fmt.Fprintf(&builder, "%sPayment: %s\n", marker(0), paymentLabel(model.paymentType))

	if model.isAdmin() {
		fmt.Fprintf(&builder, "%sName:    %s\n", marker(1), model.nameInput.View())
		fmt.Fprintf(&builder, "%sPhone:   %s\n", marker(2), model.phoneInput.View())
	}
	return builder.String()
}

// viewConfirm shows the held booking for a final decision. The seats
// stay reserved on the server until confirmed or the hold times out.
func (model Model) viewConfirm() string {
	chosen := model.chart.Chosen()
	parts := make([]string, len(chosen))
	for i, seat := range chosen {
		parts[i] = fmt.Sprintf("%d", seat)
	}

	held := lipgloss.NewStyle().
		Foreground(model.theme.StatusPending).
		Bold(true)

	var builder strings.Builder
	builder.WriteString(held.Render("Seats held") + "\n\n")
	fmt.Fprintf(&builder, "  Trip:    %s -> %s on %s\n",
		model.trip.StartLocation, model.trip.Destination, model.trip.DepartureDate)
	fmt.Fprintf(&builder, "  Seats:   %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&builder, "  Total:   %.2f EGP\n", float64(len(chosen))*model.trip.Price)
	fmt.Fprintf(&builder, "  Payment: %s\n", paymentLabel(model.paymentType))
	if model.isAdmin() {
		fmt.Fprintf(&builder, "  For:     %s (%s)\n", model.nameInput.Value(), model.phoneInput.Value())
	}
	if reference := model.orchestrator.Reference(); reference != "" {
		fmt.Fprintf(&builder, "  Hold:    %s\n", reference)
	}
	builder.WriteString("\n  Press enter to confirm, esc to release the seats.\n")
	return builder.String()
}

func paymentLabel(payment api.PaymentType) string {
	if payment == api.PaymentCash {
		return "CASH (counter)"
	}
	return "ONLINE (card)"
}

func (model Model) viewSuccess() string {
	if model.outcome == nil {
		return ""
	}

	confirmed := lipgloss.NewStyle().
		Foreground(model.theme.StatusConfirmed).
		Bold(true)

	var builder strings.Builder
	builder.WriteString(confirmed.Render("Booking confirmed") + "\n\n")
	if model.outcome.OrderID != 0 {
		fmt.Fprintf(&builder, "  Order:  #%d\n", model.outcome.OrderID)
	}
	if record := model.outcome.Booking; record != nil {
		fmt.Fprintf(&builder, "  Status: %s\n", record.Status)
		fmt.Fprintf(&builder, "  Total:  %.2f EGP\n", record.TotalPrice)
	}
	if model.outcome.PaymentURL != "" {
		builder.WriteString("\n  Complete payment in your browser:\n")
		fmt.Fprintf(&builder, "  %s\n", model.outcome.PaymentURL)
	}
	if model.savedPath != "" {
		fmt.Fprintf(&builder, "\n  Ticket saved to %s\n", model.savedPath)
	}
	return builder.String()
}

func (model Model) viewProfile() string {
	if model.profile == nil {
		return model.faint("loading bookings...")
	}

	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground)

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s <%s>\n\n", model.profile.User.Name, model.profile.User.Email)

	if len(model.profile.Bookings) == 0 {
		builder.WriteString("No bookings yet.\n")
		return builder.String()
	}

	for i, record := range model.profile.Bookings {
		status := lipgloss.NewStyle().
			Foreground(model.theme.StatusColor(record.Status)).
			Render(record.Status)
		line := fmt.Sprintf("#%-5d %s -> %s  %s  %s",
			record.ID, record.Trip.StartLocation, record.Trip.Destination,
			record.Trip.DepartureDate, status)
		if i == model.bookingCursor {
			line = selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		builder.WriteString(line + "\n")
	}

	fmt.Fprintf(&builder, "\nPage %d of %d\n",
		model.profile.Pagination.Page, model.profile.Pagination.TotalPages)
	return builder.String()
}

func (model Model) faint(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text)
}
