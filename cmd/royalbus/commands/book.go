// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/booking"
	"github.com/mahmoudalimohamed/royalbus/lib/seatmap"
)

// bookCommand returns the "book" command: the non-interactive booking
// flow for scripts and counter staff who know the seat numbers. Run
// without --seats it prints the seat map; with --seats it holds and
// confirms in one go.
func bookCommand() *cli.Command {
	var seats []int
	var payment string
	var bus string
	var customerName string
	var customerPhone string

	return &cli.Command{
		Name:    "book",
		Summary: "Book seats on a trip",
		Description: `Book seats on a trip by trip ID.

Without --seats, prints the trip's seat map and exits; pick seat
numbers from it. With --seats, the seats are held and the booking is
confirmed in one step. Online bookings print a payment page URL that
must be opened to complete payment; cash bookings are settled at the
counter.

Admin accounts book on behalf of a customer and must pass
--customer-name and --customer-phone.`,
		Usage: "royalbus book <trip-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the seat map for trip 17",
				Command:     "royalbus book 17",
			},
			{
				Description: "Book two seats, paying online",
				Command:     "royalbus book 17 --seats 5,6",
			},
			{
				Description: "Counter booking, cash",
				Command:     `royalbus book 17 --seats 5,6 --payment cash --customer-name "Omar Said" --customer-phone 01098765432`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
			flagSet.IntSliceVar(&seats, "seats", nil, "seat numbers to book, in order")
			flagSet.StringVar(&payment, "payment", "online", "payment type: online or cash")
			flagSet.StringVar(&bus, "bus", "standard", "bus type for seat map display: standard or mini")
			flagSet.StringVar(&customerName, "customer-name", "", "customer name (admin bookings)")
			flagSet.StringVar(&customerPhone, "customer-phone", "", "customer phone (admin bookings)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the trip ID").
					WithHint("Run 'royalbus search' to find trip IDs.")
			}
			tripID, err := strconv.Atoi(args[0])
			if err != nil {
				return cli.Validation("invalid trip ID %q", args[0])
			}

			layout, err := parseLayout(bus)
			if err != nil {
				return err
			}
			paymentType, err := parsePayment(payment)
			if err != nil {
				return err
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			current, err := application.requireSession()
			if err != nil {
				return err
			}

			orchestrator := booking.New(booking.Config{
				Client:      application.client,
				TripID:      tripID,
				PaymentPage: application.config.Payment.PageURL,
				Logger:      logger.With("trip", tripID),
			})

			chart, err := orchestrator.RefreshSeats(ctx)
			if err != nil {
				return apiError(err)
			}

			if len(seats) == 0 {
				fmt.Println(chart.Render(layout, seatmap.DefaultStyles(), 0))
				fmt.Printf("Available: %s\n", joinSeats(chart.Available()))
				fmt.Println("\nPass --seats to book, e.g. --seats 5,6")
				return nil
			}

			for _, seat := range seats {
				if !chart.Has(seat) {
					return cli.Validation("trip %d has no seat %d", tripID, seat)
				}
				if chart.IsUnavailable(seat) {
					return cli.Conflict("seat %d is already taken", seat).
						WithHint("Run 'royalbus book' without --seats to see the current map.")
				}
			}

			request := booking.Request{
				Seats:         seats,
				PaymentType:   paymentType,
				ActorType:     current.User.UserType,
				CustomerName:  customerName,
				CustomerPhone: customerPhone,
			}
			if err := orchestrator.Hold(ctx, request); err != nil {
				return bookingError(err)
			}
			outcome, err := orchestrator.Confirm(ctx)
			if err != nil {
				return bookingError(err)
			}

			fmt.Printf("Booked. Order #%d, seats %s.\n", outcome.OrderID, joinSeats(seats))
			if outcome.PaymentURL != "" {
				fmt.Printf("Complete payment at:\n  %s\n", outcome.PaymentURL)
			} else if outcome.Booking != nil {
				fmt.Printf("Total: %.2f EGP, pay cash at the counter.\n", outcome.Booking.TotalPrice)
			}
			fmt.Printf("Run 'royalbus ticket %d --out ticket.pdf' to export the ticket.\n", outcome.OrderID)
			return nil
		},
	}
}

// bookingError maps booking flow failures onto command categories.
// Local validation sentinels become validation errors; everything else
// goes through the API error mapping.
func bookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrNoSeatsChosen),
		errors.Is(err, booking.ErrTooManySeats),
		errors.Is(err, booking.ErrCustomerRequired):
		return cli.Validation("%w", err)
	case errors.Is(err, booking.ErrStaleSeats):
		return cli.Conflict("%w", err).
			WithHint("Another customer took one of the seats; rerun without --seats to see the current map.")
	default:
		return apiError(err)
	}
}

func parseLayout(bus string) (seatmap.Layout, error) {
	switch strings.ToLower(bus) {
	case "standard":
		return seatmap.LayoutFor(api.BusStandard), nil
	case "mini":
		return seatmap.LayoutFor(api.BusMini), nil
	default:
		return 0, cli.Validation("invalid --bus %q: want standard or mini", bus)
	}
}

func parsePayment(payment string) (api.PaymentType, error) {
	switch strings.ToLower(payment) {
	case "cash":
		return api.PaymentCash, nil
	case "online":
		return api.PaymentOnline, nil
	default:
		return "", cli.Validation("invalid --payment %q: want online or cash", payment)
	}
}

// joinSeats formats seat numbers in their given order.
func joinSeats(seats []int) string {
	parts := make([]string, len(seats))
	for i, seat := range seats {
		parts[i] = strconv.Itoa(seat)
	}
	return strings.Join(parts, ", ")
}
