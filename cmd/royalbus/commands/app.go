// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/config"
	"github.com/mahmoudalimohamed/royalbus/lib/session"
)

// app bundles the wired-up client state every command needs: resolved
// configuration, the persisted session, and an API client whose
// transport refreshes tokens through the session manager.
type app struct {
	config   *config.Config
	store    *session.FileStore
	sessions *session.Manager
	client   *api.Client
}

// newApp loads configuration, resolves the saved session, and builds
// the API client. Commands that work without a session (locations,
// search, register) still go through here; the credential source just
// stays empty.
func newApp(logger *slog.Logger) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cli.Internal("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}

	sessionPath := cfg.Session.File
	if sessionPath == "" {
		sessionPath = session.FilePath()
	}
	store := session.NewFileStore(sessionPath)
	manager := session.NewManager(store, logger)
	if _, err := manager.Resolve(); err != nil {
		// A corrupt session file should not brick the CLI; the user
		// can log in again.
		logger.Warn("discarding unreadable session", "path", sessionPath, "error", err)
	}

	client, err := api.New(api.Config{
		BaseURL:     cfg.API.BaseURL,
		HTTPClient:  &http.Client{Timeout: cfg.RequestTimeout()},
		Credentials: manager,
		Logger:      logger,
	})
	if err != nil {
		return nil, cli.Internal("create API client: %w", err)
	}

	return &app{
		config:   cfg,
		store:    store,
		sessions: manager,
		client:   client,
	}, nil
}

// requireSession returns the saved session or an auth error telling
// the user to log in.
func (a *app) requireSession() (session.Session, error) {
	current, ok := a.sessions.Current()
	if !ok {
		return session.Session{}, cli.Auth("not logged in").
			WithHint("Run 'royalbus login <email>' first.")
	}
	return current, nil
}

// apiError translates an API client failure into a categorized command
// error so scripts get a meaningful exit code. Field-level validation
// messages are flattened into the error text.
func apiError(err error) error {
	var commandError *cli.CommandError
	if errors.As(err, &commandError) {
		return err
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return cli.Transient("%w", err)
	}

	switch apiErr.Category {
	case api.CategoryUnauthorized:
		return cli.Auth("%w", err).WithHint("Run 'royalbus login <email>' to start a new session.")
	case api.CategoryForbidden:
		return cli.Auth("%w", err)
	case api.CategoryNotFound:
		return cli.NotFound("%w", err)
	case api.CategoryConflict:
		return cli.Conflict("%w", err)
	case api.CategoryValidation:
		return cli.Validation("%s", formatFieldErrors(apiErr))
	case api.CategoryInternal:
		return cli.Transient("%w", err)
	default:
		return cli.Internal("%w", err)
	}
}

// formatFieldErrors renders a validation error with its per-field
// messages, one field per line.
func formatFieldErrors(apiErr *api.Error) string {
	if len(apiErr.Fields) == 0 {
		return apiErr.Error()
	}
	text := apiErr.Error()
	for field, messages := range apiErr.Fields {
		for _, message := range messages {
			text += "\n  " + field + ": " + message
		}
	}
	return text
}
