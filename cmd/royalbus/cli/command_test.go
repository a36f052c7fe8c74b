// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "royalbus",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "locations",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					called = "locations"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"locations"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "locations" {
		t.Errorf("dispatched to %q, want %q", called, "locations")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "royalbus",
		Subcommands: []*Command{
			{
				Name: "bookings",
				Subcommands: []*Command{
					{
						Name: "cancel",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							called = "bookings cancel"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"bookings", "cancel", "42"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "bookings cancel" {
		t.Errorf("dispatched to %q, want %q", called, "bookings cancel")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "42" {
		t.Errorf("args = %v, want [42]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var page int
	var target string

	command := &Command{
		Name: "profile",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("profile", pflag.ContinueOnError)
			flagSet.IntVar(&page, "page", 1, "history page")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--page", "3", "extra"}, testLogger()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if page != 3 {
		t.Errorf("page = %d, want 3", page)
	}
	if target != "extra" {
		t.Errorf("positional arg = %q, want %q", target, "extra")
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "royalbus",
		Subcommands: []*Command{
			{Name: "search", Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil }},
			{Name: "login", Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"serach"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "search"`) {
		t.Errorf("error %q should suggest \"search\"", err.Error())
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "search",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flagSet.String("date", "", "travel date")
			return flagSet
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--dtae", "2026-09-01"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--date") {
		t.Errorf("error %q should suggest --date", err.Error())
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "bookings",
		Subcommands: []*Command{
			{Name: "detail", Summary: "Show a booking"},
		},
	}

	err := root.Execute(context.Background(), nil, testLogger())
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() error = %v, want subcommand required", err)
	}
}

func TestCommand_Execute_HelpFlagPrintsHelp(t *testing.T) {
	ran := false
	command := &Command{
		Name:    "whoami",
		Summary: "Show the logged-in account",
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--help"}, testLogger()); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if ran {
		t.Error("--help should not run the command")
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	root := &Command{
		Name:        "royalbus",
		Description: "Royal Bus terminal booking client.",
		Subcommands: []*Command{
			{Name: "search", Summary: "Search trips between two areas"},
			{Name: "profile", Summary: "Show account and booking history"},
		},
		Examples: []Example{
			{Description: "Search for trips", Command: "royalbus search --from-city 1 --to-city 2 --date 2026-09-01"},
		},
	}

	var buf bytes.Buffer
	root.PrintHelp(&buf)
	out := buf.String()

	for _, want := range []string{
		"Royal Bus terminal booking client.",
		"royalbus <command> [flags]",
		"search",
		"Search trips between two areas",
		"# Search for trips",
		"Run 'royalbus <command> --help'",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}
