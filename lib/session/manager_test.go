// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeAuthAPI scripts the auth endpoints for manager tests.
type fakeAuthAPI struct {
	loginPair   *api.TokenPair
	loginErr    error
	logoutErr   error
	logoutCalls int
	refreshed   string
	refreshErr  error
}

func (fake *fakeAuthAPI) Login(ctx context.Context, email, password string) (*api.TokenPair, error) {
	if fake.loginErr != nil {
		return nil, fake.loginErr
	}
	return fake.loginPair, nil
}

func (fake *fakeAuthAPI) Logout(ctx context.Context, refreshToken string) error {
	fake.logoutCalls++
	return fake.logoutErr
}

func (fake *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if fake.refreshErr != nil {
		return "", fake.refreshErr
	}
	return fake.refreshed, nil
}

func TestResolveStates(t *testing.T) {
	t.Parallel()

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()
		manager := NewManager(&MemoryStore{}, testLogger())
		if manager.Status() != StatusUnknown {
			t.Fatalf("initial status = %v, want unknown", manager.Status())
		}
		status, err := manager.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if status != StatusUnauthenticated {
			t.Errorf("status = %v, want unauthenticated", status)
		}
	})

	t.Run("stored token trusted optimistically", func(t *testing.T) {
		t.Parallel()
		store := &MemoryStore{}
		store.Save(&Session{Access: "acc", Refresh: "ref", User: User{Email: "a@b.c"}})
		manager := NewManager(store, testLogger())
		status, err := manager.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if status != StatusAuthenticated {
			t.Errorf("status = %v, want authenticated", status)
		}
		current, ok := manager.Current()
		if !ok || current.User.Email != "a@b.c" {
			t.Errorf("Current() = %+v, %v", current, ok)
		}
	})
}

func TestLoginPersistsSession(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	manager := NewManager(store, testLogger())
	authAPI := &fakeAuthAPI{loginPair: &api.TokenPair{Access: "acc-1", Refresh: "ref-1"}}

	if err := manager.Login(context.Background(), authAPI, "rider@example.com", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if manager.Status() != StatusAuthenticated {
		t.Errorf("status = %v, want authenticated", manager.Status())
	}
	stored, _ := store.Load()
	if stored == nil || stored.Access != "acc-1" || stored.User.Email != "rider@example.com" {
		t.Errorf("stored session = %+v", stored)
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	store.Save(&Session{Access: "old", Refresh: "old-ref"})
	manager := NewManager(store, testLogger())
	manager.Resolve()

	authAPI := &fakeAuthAPI{loginErr: errors.New("Invalid credentials")}
	if err := manager.Login(context.Background(), authAPI, "rider@example.com", "bad"); err == nil {
		t.Fatal("expected login error")
	}
	stored, _ := store.Load()
	if stored == nil || stored.Access != "old" {
		t.Errorf("stored session mutated on failed login: %+v", stored)
	}
}

// TestLogoutAlwaysClearsLocally covers the invariant that logout clears
// access token, refresh token, and user record even when the
// server-side invalidation call fails.
func TestLogoutAlwaysClearsLocally(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	store.Save(&Session{Access: "acc", Refresh: "ref", User: User{Email: "a@b.c"}})
	manager := NewManager(store, testLogger())
	manager.Resolve()

	authAPI := &fakeAuthAPI{logoutErr: errors.New("server exploded")}
	if err := manager.Logout(context.Background(), authAPI); err != nil {
		t.Fatalf("Logout surfaced server error: %v", err)
	}
	if authAPI.logoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1", authAPI.logoutCalls)
	}
	if manager.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", manager.Status())
	}
	stored, _ := store.Load()
	if stored != nil {
		t.Errorf("session survives logout: %+v", stored)
	}
	if creds := manager.Credentials(); creds.Access != "" || creds.Refresh != "" {
		t.Errorf("credentials survive logout: %+v", creds)
	}
}

func TestRefreshFailureClearsSession(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	store.Save(&Session{Access: "acc", Refresh: "ref"})
	manager := NewManager(store, testLogger())
	manager.Resolve()

	authAPI := &fakeAuthAPI{refreshErr: errors.New("refresh token expired")}
	if err := manager.Refresh(context.Background(), authAPI); err == nil {
		t.Fatal("expected refresh error")
	}
	if manager.Status() != StatusUnauthenticated {
		t.Errorf("status = %v, want unauthenticated", manager.Status())
	}
	if stored, _ := store.Load(); stored != nil {
		t.Errorf("session survives failed refresh: %+v", stored)
	}
}

func TestRefreshStoresNewAccess(t *testing.T) {
	t.Parallel()

	store := &MemoryStore{}
	store.Save(&Session{Access: "acc-old", Refresh: "ref"})
	manager := NewManager(store, testLogger())
	manager.Resolve()

	authAPI := &fakeAuthAPI{refreshed: "acc-new"}
	if err := manager.Refresh(context.Background(), authAPI); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if creds := manager.Credentials(); creds.Access != "acc-new" || creds.Refresh != "ref" {
		t.Errorf("credentials = %+v, want new access and original refresh", creds)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	if loaded, err := store.Load(); err != nil || loaded != nil {
		t.Fatalf("Load on missing file = %+v, %v; want nil, nil", loaded, err)
	}

	saved := &Session{Access: "acc", Refresh: "ref", User: User{Email: "a@b.c", UserType: api.UserAdmin}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("session file mode = %o, want 0600", got)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Access != "acc" || loaded.User.UserType != api.UserAdmin {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file survives Clear")
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
}
