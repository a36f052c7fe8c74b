// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete royalbus CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/version"
)

// Root builds and returns the complete royalbus CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "royalbus",
		Description: `Royal Bus: terminal booking client.

Search trips, pick seats, and book from the command line, either
through flag-driven commands or the full-screen interactive UI.`,
		Subcommands: []*cli.Command{
			uiCommand(),
			loginCommand(),
			logoutCommand(),
			whoamiCommand(),
			registerCommand(),
			passwordCommand(),
			locationsCommand(),
			searchCommand(),
			bookCommand(),
			bookingsCommand(),
			profileCommand(),
			ticketCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("royalbus %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Open the interactive booking screen",
				Command:     "royalbus ui",
			},
			{
				Description: "Log in and save the session",
				Command:     "royalbus login nour@example.com",
			},
			{
				Description: "List cities and areas with their IDs",
				Command:     "royalbus locations",
			},
			{
				Description: "Search trips for a date",
				Command:     "royalbus search --from-city 1 --from-area 2 --to-city 4 --to-area 9 --date 2026-09-15",
			},
			{
				Description: "Book two seats on trip 17",
				Command:     "royalbus book 17 --seats 5,6",
			},
			{
				Description: "Export a ticket PDF",
				Command:     "royalbus ticket 2041 --out ticket.pdf",
			},
		},
	}
}
