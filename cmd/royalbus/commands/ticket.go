// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/ticketpdf"
)

// ticketCommand returns the "ticket" command: export a booking as a
// printable PDF ticket.
func ticketCommand() *cli.Command {
	var out string

	return &cli.Command{
		Name:    "ticket",
		Summary: "Export a booking as a PDF ticket",
		Description: `Export a booking as a printable PDF ticket by its order ID.

The ticket carries the route, seats, customer, and payment
reference.`,
		Usage: "royalbus ticket <order-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Export order 2041",
				Command:     "royalbus ticket 2041 --out ticket-2041.pdf",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ticket", pflag.ContinueOnError)
			flagSet.StringVar(&out, "out", "", "output file (default ticket-<order-id>.pdf)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the order ID")
			}
			orderID, err := strconv.Atoi(args[0])
			if err != nil {
				return cli.Validation("invalid order ID %q", args[0])
			}
			if out == "" {
				out = fmt.Sprintf("ticket-%d.pdf", orderID)
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

			pdf, err := ticketpdf.Render(record)
			if err != nil {
				return cli.Internal("render ticket: %w", err)
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return cli.Internal("write %s: %w", out, err)
			}

			logger.Info("ticket exported", "order", orderID, "path", out)
			fmt.Printf("Ticket written to %s\n", out)
			return nil
		},
	}
}
