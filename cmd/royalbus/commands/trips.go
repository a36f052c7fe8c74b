// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// locationsCommand returns the "locations" command listing the served
// cities and their pickup/dropoff areas with the IDs the search
// command takes.
func locationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "locations",
		Summary: "List served cities and areas",
		Description: `List every served city with its pickup/dropoff areas.

The printed IDs are what "royalbus search" takes for --from-city,
--from-area, --to-city, and --to-area.`,
		Usage: "royalbus locations",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			cities, err := application.client.Locations(ctx)
			if err != nil {
				return apiError(err)
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "CITY\tID\tAREA\tAREA ID")
			for _, city := range cities {
				if len(city.Areas) == 0 {
					fmt.Fprintf(tw, "%s\t%d\t\t\n", city.Name, city.ID)
					continue
				}
				for i, area := range city.Areas {
					if i == 0 {
						fmt.Fprintf(tw, "%s\t%d\t%s\t%d\n", city.Name, city.ID, area.Name, area.ID)
					} else {
						fmt.Fprintf(tw, "\t\t%s\t%d\n", area.Name, area.ID)
					}
				}
			}
			return tw.Flush()
		},
	}
}

// searchCommand returns the "search" command.
func searchCommand() *cli.Command {
	var fromCity, fromArea, toCity, toArea int
	var date string
	var roundTrip bool

	return &cli.Command{
		Name:    "search",
		Summary: "Search trips between two areas",
		Description: `Search scheduled trips between two areas on a travel date.

City and area IDs come from "royalbus locations". The date defaults
to today. Pass --round-trip to search the return direction too.`,
		Usage: "royalbus search --from-city <id> --from-area <id> --to-city <id> --to-area <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Trips from Cairo/Ramses to Hurghada/Downtown on a date",
				Command:     "royalbus search --from-city 1 --from-area 2 --to-city 4 --to-area 9 --date 2026-09-15",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flagSet.IntVar(&fromCity, "from-city", 0, "start city ID")
			flagSet.IntVar(&fromArea, "from-area", 0, "start area ID")
			flagSet.IntVar(&toCity, "to-city", 0, "destination city ID")
			flagSet.IntVar(&toArea, "to-area", 0, "destination area ID")
			flagSet.StringVar(&date, "date", "", "travel date (YYYY-MM-DD, default today)")
			flagSet.BoolVar(&roundTrip, "round-trip", false, "search the return direction too")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if fromCity == 0 || fromArea == 0 || toCity == 0 || toArea == 0 {
				return cli.Validation("--from-city, --from-area, --to-city, and --to-area are required").
					WithHint("Run 'royalbus locations' to list the IDs.")
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return cli.Validation("invalid --date %q: want YYYY-MM-DD", date)
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			trips, err := application.client.SearchTrips(ctx, api.TripQuery{
				StartCity:       fromCity,
				StartArea:       fromArea,
				DestinationCity: toCity,
				DestinationArea: toArea,
				DepartureDate:   date,
				RoundTrip:       roundTrip,
			})
			if err != nil {
				return apiError(err)
			}

			if len(trips) == 0 {
				fmt.Println("No trips found.")
				return nil
			}
			printTrips(trips)
			return nil
		},
	}
}

// printTrips writes a trip table to stdout. The TRIP column is the ID
// that "royalbus book" takes.
func printTrips(trips []api.Trip) {
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TRIP\tROUTE\tDEPARTURE\tBUS\tPRICE\tSEATS LEFT")
	for _, trip := range trips {
		fmt.Fprintf(tw, "%d\t%s -> %s\t%s\t%s\t%.2f EGP\t%d\n",
			trip.ID, trip.StartLocation, trip.Destination,
			trip.DepartureDate, trip.BusType, trip.Price, trip.AvailableSeats)
	}
	tw.Flush()
}
