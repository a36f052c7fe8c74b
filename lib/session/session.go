// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the authentication session: the access/refresh
// token pair and a minimal user record. The session is the only mutable
// state shared across the application, and the Manager is its only
// writer; everything else reads snapshots.
//
// Sessions persist across runs in a JSON file (the terminal analog of
// the browser's local storage), written 0600 since it contains tokens.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

// User is the minimal account record stored alongside the tokens. The
// extended profile is fetched from the API when needed.
type User struct {
	Email    string       `json:"email"`
	Name     string       `json:"name,omitempty"`
	UserType api.UserType `json:"user_type,omitempty"`
}

// Session is the persisted authentication state.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}

// Store persists the session. Load returns (nil, nil) when no session
// exists; Clear removes the entire session, tokens and user together,
// never partially.
type Store interface {
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// FilePath returns the session file location: ROYALBUS_SESSION_FILE if
// set, otherwise royalbus/session.json under the user config directory.
func FilePath() string {
	if envPath := os.Getenv("ROYALBUS_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "royalbus-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "royalbus", "session.json")
}

// FileStore persists the session as a JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. An empty path uses the
// well-known location from FilePath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = FilePath()
	}
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (store *FileStore) Path() string {
	return store.path
}

// Load reads the persisted session. A missing file means no session and
// is not an error.
func (store *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", store.path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", store.path, err)
	}
	return &session, nil
}

// Save writes the session with owner-only permissions, creating the
// parent directory if needed.
func (store *FileStore) Save(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(store.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(store.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", store.path, err)
	}
	return nil
}

// Clear removes the session file. A missing file is already clear.
func (store *FileStore) Clear() error {
	if err := os.Remove(store.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", store.path, err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and ephemeral use.
type MemoryStore struct {
	session *Session
}

func (store *MemoryStore) Load() (*Session, error) {
	if store.session == nil {
		return nil, nil
	}
	copied := *store.session
	return &copied, nil
}

func (store *MemoryStore) Save(session *Session) error {
	copied := *session
	store.session = &copied
	return nil
}

func (store *MemoryStore) Clear() error {
	store.session = nil
	return nil
}
