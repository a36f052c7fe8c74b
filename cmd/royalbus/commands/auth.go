// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/session"
)

// loginCommand returns the "login" command. Exchanges credentials for
// a token pair and saves the session locally; later commands pick the
// tokens up through the session manager.
func loginCommand() *cli.Command {
	var passwordFile string

	return &cli.Command{
		Name:    "login",
		Summary: "Log in and save the session locally",
		Description: `Log in with your account email and save the session locally.

The password is prompted interactively with echo disabled. For
scripted use, pass --password-file with a file whose first line is
the password.`,
		Usage: "royalbus login <email> [flags]",
		Examples: []cli.Example{
			{
				Description: "Interactive login",
				Command:     "royalbus login nour@example.com",
			},
			{
				Description: "Scripted login",
				Command:     "royalbus login counter@royalbus.example --password-file /run/secrets/counter",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the account email")
			}
			email := args[0]

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}

			if err := application.sessions.Login(ctx, application.client, email, password); err != nil {
				return apiError(err)
			}

			// The token response carries no account details; the first
			// profile page does. A failure here is not fatal, the
			// session already works.
			account := api.User{Email: email}
			if profile, err := application.client.Profile(ctx, 1, 1); err == nil {
				account = profile.User
				if err := application.sessions.SetUser(session.User{
					Email:    account.Email,
					Name:     account.Name,
					UserType: account.UserType,
				}); err != nil {
					logger.Warn("saving account details", "error", err)
				}
			} else {
				logger.Warn("fetching profile after login", "error", err)
			}

			if account.Name != "" {
				fmt.Printf("Logged in as %s (%s)\n", account.Name, account.Email)
			} else {
				fmt.Printf("Logged in as %s\n", account.Email)
			}
			return nil
		},
	}
}

// logoutCommand returns the "logout" command.
func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Log out and delete the saved session",
		Description: `Invalidate the saved session.

The refresh token is revoked server-side when the server is
reachable; the local session file is deleted either way.`,
		Usage: "royalbus logout",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if _, ok := application.sessions.Current(); !ok {
				fmt.Println("Not logged in.")
				return nil
			}
			if err := application.sessions.Logout(ctx, application.client); err != nil {
				return cli.Internal("clearing session: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// whoamiCommand returns the "whoami" command for displaying the saved
// account identity. Reads only the local session file; no network.
func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the logged-in account",
		Description: `Display the currently logged-in account from the saved session.

Only the local session file is read; the token is not verified
against the server. Exits 1 when no session exists.`,
		Usage: "royalbus whoami",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			current, ok := application.sessions.Current()
			if !ok {
				fmt.Println("Not logged in.")
				return &cli.ExitError{Code: 1}
			}

			if current.User.Name != "" {
				fmt.Printf("%s (%s)\n", current.User.Name, current.User.Email)
			} else {
				fmt.Println(current.User.Email)
			}
			if current.User.UserType != "" {
				fmt.Printf("Account type: %s\n", current.User.UserType)
			}
			fmt.Printf("Session file: %s\n", application.store.Path())
			return nil
		},
	}
}

// registerCommand returns the "register" command for creating a new
// passenger account.
func registerCommand() *cli.Command {
	var name string
	var email string
	var phone string
	var passwordFile string

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new passenger account",
		Description: `Create a new passenger account.

The password is prompted twice with echo disabled unless
--password-file is given. Registration does not log you in; run
"royalbus login" afterwards.`,
		Usage: "royalbus register --name <name> --email <email> --phone <number> [flags]",
		Examples: []cli.Example{
			{
				Description: "Register a new account",
				Command:     `royalbus register --name "Nour Hassan" --email nour@example.com --phone 01012345678`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flagSet.StringVar(&name, "name", "", "full name")
			flagSet.StringVar(&email, "email", "", "account email")
			flagSet.StringVar(&phone, "phone", "", "phone number")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if name == "" || email == "" || phone == "" {
				return cli.Validation("--name, --email, and --phone are required")
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}
			// Interactive entry gets a confirmation pass; a file is
			// assumed to be what the caller meant.
			if passwordFile == "" || passwordFile == "-" {
				confirm, err := cli.PromptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != password {
					return cli.Validation("passwords do not match")
				}
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}

			err = application.client.Register(ctx, api.RegisterRequest{
				Name:        name,
				Email:       email,
				PhoneNumber: phone,
				Password:    password,
			})
			if err != nil {
				return apiError(err)
			}

			fmt.Printf("Account created for %s. Run 'royalbus login %s' to sign in.\n", email, email)
			return nil
		},
	}
}

// passwordCommand returns the "password" command tree for the
// email-based reset flow.
func passwordCommand() *cli.Command {
	return &cli.Command{
		Name:    "password",
		Summary: "Reset a forgotten password",
		Subcommands: []*cli.Command{
			passwordResetRequestCommand(),
			passwordResetConfirmCommand(),
		},
	}
}

func passwordResetRequestCommand() *cli.Command {
	return &cli.Command{
		Name:    "reset-request",
		Summary: "Email a password reset link",
		Description: `Request a password reset email.

The email contains a link carrying the reset token and user ID;
feed both to "royalbus password reset-confirm".`,
		Usage: "royalbus password reset-request <email>",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one argument: the account email")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.client.ForgotPassword(ctx, args[0]); err != nil {
				return apiError(err)
			}
			fmt.Printf("Reset email sent to %s (check the spam folder too).\n", args[0])
			return nil
		},
	}
}

func passwordResetConfirmCommand() *cli.Command {
	var token string
	var uid string
	var passwordFile string

	return &cli.Command{
		Name:    "reset-confirm",
		Summary: "Set a new password with a reset token",
		Description: `Complete a password reset.

Token and user ID come from the link in the reset email. The new
password is prompted twice with echo disabled unless --password-file
is given.`,
		Usage: "royalbus password reset-confirm --token <token> --uid <uid> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reset-confirm", pflag.ContinueOnError)
			flagSet.StringVar(&token, "token", "", "reset token from the email link")
			flagSet.StringVar(&uid, "uid", "", "user ID from the email link")
			flagSet.StringVar(&passwordFile, "password-file", "", "read the new password from this file instead of prompting")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if token == "" || uid == "" {
				return cli.Validation("--token and --uid are required")
			}

			password, err := cli.ReadPassword(passwordFile)
			if err != nil {
				return err
			}
			if passwordFile == "" || passwordFile == "-" {
				confirm, err := cli.PromptPassword("Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != password {
					return cli.Validation("passwords do not match")
				}
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.client.ResetPassword(ctx, token, uid, password); err != nil {
				return apiError(err)
			}
			fmt.Println("Password updated. Run 'royalbus login' to sign in.")
			return nil
		},
	}
}
