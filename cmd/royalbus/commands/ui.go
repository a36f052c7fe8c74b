// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/busui"
	"github.com/mahmoudalimohamed/royalbus/lib/session"
)

// uiCommand returns the "ui" command: the full-screen interactive
// booking TUI. A saved session skips straight to the search screen;
// otherwise the TUI opens on its sign-in form.
func uiCommand() *cli.Command {
	var ticketDir string

	return &cli.Command{
		Name:    "ui",
		Summary: "Open the interactive booking screen",
		Description: `Open the full-screen interactive booking flow: search trips,
pick seats on the seat map, and confirm, all with the keyboard.

With a saved session the flow starts at trip search; without one it
starts at the sign-in form. Exported tickets land in --ticket-dir.`,
		Usage: "royalbus ui [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("ui", pflag.ContinueOnError)
			flagSet.StringVar(&ticketDir, "ticket-dir", "", "directory for exported tickets (default current directory)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}

			var account api.User
			if current, ok := application.sessions.Current(); ok {
				account = api.User{
					Name:     current.User.Name,
					Email:    current.User.Email,
					UserType: current.User.UserType,
				}
			}

			model := busui.NewModel(busui.Config{
				Client:      application.client,
				User:        account,
				Auth:        &managerAuth{app: application},
				PaymentPage: application.config.Payment.PageURL,
				TicketDir:   ticketDir,
				Logger:      logger,
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := program.Run(); err != nil {
				return cli.Internal("run UI: %w", err)
			}
			return nil
		},
	}
}

// managerAuth adapts the session manager to the TUI's sign-in form.
// Login persists the session, so the next "royalbus ui" skips the
// form.
type managerAuth struct {
	app *app
}

func (auth *managerAuth) Login(ctx context.Context, email, password string) (api.User, error) {
	if err := auth.app.sessions.Login(ctx, auth.app.client, email, password); err != nil {
		return api.User{}, err
	}

	// Account details come from the first profile page. Failing to
	// fetch them leaves a working passenger session.
	profile, err := auth.app.client.Profile(ctx, 1, 1)
	if err != nil {
		return api.User{Email: email}, nil
	}
	if err := auth.app.sessions.SetUser(session.User{
		Email:    profile.User.Email,
		Name:     profile.User.Name,
		UserType: profile.User.UserType,
	}); err != nil {
		return profile.User, nil
	}
	return profile.User, nil
}

var _ busui.Authenticator = (*managerAuth)(nil)

// ensure the API client keeps satisfying the TUI's client interface.
var _ busui.Client = (*api.Client)(nil)
