// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// historyPageSize is the booking-history page size for the profile
// command. The TUI uses its own, smaller page.
const historyPageSize = 10

// bookingsCommand returns the "bookings" command tree.
func bookingsCommand() *cli.Command {
	return &cli.Command{
		Name:    "bookings",
		Summary: "Inspect and cancel bookings",
		Subcommands: []*cli.Command{
			bookingsDetailCommand(),
			bookingsCancelCommand(),
		},
	}
}

func bookingsDetailCommand() *cli.Command {
	return &cli.Command{
		Name:    "detail",
		Summary: "Show one booking",
		Description: `Show the full record of one booking by its order ID.

Order IDs are printed by "royalbus book" and listed by
"royalbus profile".`,
		Usage: "royalbus bookings detail <order-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the order ID")
			}
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return cli.Validation("invalid order ID %q", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if _, err := application.requireSession(); err != nil {
				return err
			}

			record, err := application.client.BookingDetail(ctx, orderID)
			if err != nil {
				return apiError(err)
			}
			printBooking(record)
			return nil
		},
	}
}

func bookingsCancelCommand() *cli.Command {
	return &cli.Command{
		Name:    "cancel",
		Summary: "Cancel a booking (admin only)",
		Description: `Cancel a booking by its ID.

Only admin accounts may cancel; the server rejects passenger
attempts.`,
		Usage: "royalbus bookings cancel <booking-id>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the booking ID")
			}
			bookingID, err := strconv.Atoi(args[0])
			if err != nil {
				return cli.Validation("invalid booking ID %q", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			current, err := application.requireSession()
			if err != nil {
				return err
			}
			if current.User.UserType != "" && current.User.UserType != api.UserAdmin {
				return cli.Auth("only admin accounts can cancel bookings")
			}

			if err := application.client.CancelBooking(ctx, bookingID); err != nil {
				return apiError(err)
			}
			fmt.Printf("Booking %d cancelled.\n", bookingID)
			return nil
		},
	}
}

// profileCommand returns the "profile" command: account details plus a
// page of booking history.
func profileCommand() *cli.Command {
	var page int

	return &cli.Command{
		Name:    "profile",
		Summary: "Show account and booking history",
		Description: `Show the logged-in account and a page of booking history.

History is paginated server-side; use --page to walk older
bookings.`,
		Usage: "royalbus profile [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("profile", pflag.ContinueOnError)
			flagSet.IntVar(&page, "page", 1, "history page to show")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if page < 1 {
				return cli.Validation("--page must be at least 1")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if _, err := application.requireSession(); err != nil {
				return err
			}

			profile, err := application.client.Profile(ctx, page, historyPageSize)
			if err != nil {
				return apiError(err)
			}

			fmt.Printf("%s (%s)\n", profile.User.Name, profile.User.Email)
			if profile.User.PhoneNumber != "" {
				fmt.Printf("Phone: %s\n", profile.User.PhoneNumber)
			}
			fmt.Printf("Account type: %s\n\n", profile.User.UserType)

			if len(profile.Bookings) == 0 {
				fmt.Println("No bookings on this page.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tROUTE\tDEPARTURE\tSEATS\tTOTAL\tSTATUS")
			for _, record := range profile.Bookings {
				fmt.Fprintf(tw, "%d\t%s -> %s\t%s\t%s\t%.2f EGP\t%s\n",
					record.ID, record.Trip.StartLocation, record.Trip.Destination,
					record.Trip.DepartureDate, joinSeats(record.SelectedSeats),
					record.TotalPrice, record.Status)
			}
			tw.Flush()

			if profile.Pagination.TotalPages > 1 {
				fmt.Printf("\nPage %d of %d\n", profile.Pagination.Page, profile.Pagination.TotalPages)
			}
			return nil
		},
	}
}

// printBooking writes one booking record as a label/value listing.
func printBooking(record *api.Booking) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "Booking\t#%d\n", record.ID)
	fmt.Fprintf(tw, "Status\t%s\n", record.Status)
	fmt.Fprintf(tw, "Route\t%s -> %s\n", record.Trip.StartLocation, record.Trip.Destination)
	fmt.Fprintf(tw, "Departure\t%s\n", record.Trip.DepartureDate)
	fmt.Fprintf(tw, "Bus\t%s\n", record.Trip.BusType)
	fmt.Fprintf(tw, "Seats\t%s\n", joinSeats(record.SelectedSeats))
	fmt.Fprintf(tw, "Total\t%.2f EGP\n", record.TotalPrice)
	fmt.Fprintf(tw, "Payment\t%s (%s)\n", record.PaymentType, record.PaymentStatus)
	if record.PaymentReference != "" {
		fmt.Fprintf(tw, "Reference\t%s\n", record.PaymentReference)
	}
	if record.CustomerName != "" {
		fmt.Fprintf(tw, "Customer\t%s (%s)\n", record.CustomerName, record.CustomerPhone)
	}
	fmt.Fprintf(tw, "Booked\t%s\n", record.BookingDate)
	tw.Flush()
}
