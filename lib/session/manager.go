// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// Status is the resolved authentication state. Startup begins at
// StatusUnknown and resolves from the store; a stored access token is
// trusted optimistically until a request proves it invalid.
type Status int

const (
	// StatusUnknown means the store has not been inspected yet.
	StatusUnknown Status = iota
	// StatusAuthenticated means a session with an access token exists.
	StatusAuthenticated
	// StatusUnauthenticated means no usable session exists.
	StatusUnauthenticated
)

func (status Status) String() string {
	switch status {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the API client the manager drives. *api.Client
// satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Manager owns the mutable session. It is the only component that
// writes token state; consumers read snapshots via Current, and the API
// client reads tokens through the api.CredentialSource methods.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	status  Status
	current *Session
}

// NewManager creates a Manager over the given store. The session state
// is StatusUnknown until Resolve runs.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger, status: StatusUnknown}
}

// Resolve reads the persisted session and settles the startup state.
// Presence of a stored access token marks the session authenticated
// before any server round-trip confirms it; the first 401 corrects an
// optimistic answer via the refresh transport.
func (manager *Manager) Resolve() (Status, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	stored, err := manager.store.Load()
	if err != nil {
		manager.status = StatusUnauthenticated
		manager.current = nil
		return manager.status, fmt.Errorf("resolving session: %w", err)
	}
	if stored == nil || stored.Access == "" {
		manager.status = StatusUnauthenticated
		manager.current = nil
		return manager.status, nil
	}
	manager.status = StatusAuthenticated
	manager.current = stored
	return manager.status, nil
}

// Status returns the current resolved state.
func (manager *Manager) Status() Status {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.status
}

// Current returns a snapshot of the session, and whether one exists.
func (manager *Manager) Current() (Session, bool) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.current == nil {
		return Session{}, false
	}
	return *manager.current, true
}

// Login exchanges credentials for a token pair and persists the new
// session. On failure the stored session state is left untouched.
func (manager *Manager) Login(ctx context.Context, authAPI AuthAPI, email, password string) error {
	pair, err := authAPI.Login(ctx, email, password)
	if err != nil {
		return err
	}

	next := &Session{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    User{Email: email},
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if err := manager.store.Save(next); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	manager.current = next
	manager.status = StatusAuthenticated
	manager.logger.Info("logged in", "email", email)
	return nil
}

// SetUser updates the stored user record, e.g. after the first profile
// fetch reveals the user type.
func (manager *Manager) SetUser(user User) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.current == nil {
		return fmt.Errorf("no active session")
	}
	updated := *manager.current
	updated.User = user
	if err := manager.store.Save(&updated); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	manager.current = &updated
	return nil
}

// Logout invalidates the session server-side when possible and always
// clears local state. Server failures are logged, not surfaced: logout
// must always succeed locally.
func (manager *Manager) Logout(ctx context.Context, authAPI AuthAPI) error {
	manager.mu.Lock()
	refresh := ""
	if manager.current != nil {
		refresh = manager.current.Refresh
	}
	manager.mu.Unlock()

	if refresh != "" && authAPI != nil {
		if err := authAPI.Logout(ctx, refresh); err != nil {
			manager.logger.Warn("server-side logout failed", "error", err)
		}
	}
	return manager.clear()
}

// Refresh exchanges the stored refresh token for a new access token. A
// failed refresh means the session is unrecoverable: local state is
// cleared and the error returned.
func (manager *Manager) Refresh(ctx context.Context, authAPI AuthAPI) error {
	manager.mu.Lock()
	refresh := ""
	if manager.current != nil {
		refresh = manager.current.Refresh
	}
	manager.mu.Unlock()

	if refresh == "" {
		return fmt.Errorf("no refresh token in session")
	}

	access, err := authAPI.Refresh(ctx, refresh)
	if err != nil {
		manager.logger.Warn("token refresh failed, clearing session", "error", err)
		if clearErr := manager.clear(); clearErr != nil {
			manager.logger.Error("clearing session", "error", clearErr)
		}
		return err
	}
	return manager.StoreAccess(access)
}

// Credentials implements api.CredentialSource.
func (manager *Manager) Credentials() api.Credentials {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.current == nil {
		return api.Credentials{}
	}
	return api.Credentials{Access: manager.current.Access, Refresh: manager.current.Refresh}
}

// StoreAccess implements api.CredentialSource: the refresh transport
// hands over the replacement access token after a silent refresh.
func (manager *Manager) StoreAccess(access string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.current == nil {
		return fmt.Errorf("no active session")
	}
	updated := *manager.current
	updated.Access = access
	if err := manager.store.Save(&updated); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	manager.current = &updated
	return nil
}

// Invalidate implements api.CredentialSource: a failed silent refresh
// discards the whole session.
func (manager *Manager) Invalidate() error {
	manager.logger.Info("session invalidated")
	return manager.clear()
}

func (manager *Manager) clear() error {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.current = nil
	manager.status = StatusUnauthenticated
	if err := manager.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
