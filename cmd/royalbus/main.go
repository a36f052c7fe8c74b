// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that already printed their own output (like whoami
		// with no session) return an ExitError with the desired exit
		// code. Don't print a redundant "error:" line for those.
		var exitError *cli.ExitError
		if errors.As(err, &exitError) {
			os.Exit(exitError.Code)
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		// Categorized command errors carry a distinct exit code per
		// failure class so scripts can branch without parsing text.
		var commandError *cli.CommandError
		if errors.As(err, &commandError) {
			os.Exit(commandError.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root().Execute(ctx, os.Args[1:], cli.NewCommandLogger())
}
