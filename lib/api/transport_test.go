// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// TestRefreshRetrySucceeds exercises the happy path of the one-shot
// refresh: an expired access token gets one silent refresh and the
// original request is replayed with the new token.
func TestRefreshRetrySucceeds(t *testing.T) {
	t.Parallel()

	var refreshCalls, bookingCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(writer).Encode(map[string]string{"access": "acc-new"})
	})
	mux.HandleFunc("GET /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		bookingCalls.Add(1)
		if request.Header.Get("Authorization") != "Bearer acc-new" {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "token expired"})
			return
		}
		json.NewEncoder(writer).Encode(SeatStatusResponse{SeatStatus: map[string]string{"1": "available"}})
	})

	creds := &memoryCredentials{access: "acc-stale", refresh: "ref-1"}
	client := testServer(t, mux, creds)

	status, err := client.SeatStatus(context.Background(), 11)
	if err != nil {
		t.Fatalf("SeatStatus after refresh: %v", err)
	}
	if status.SeatStatus["1"] != "available" {
		t.Errorf("seat 1 = %q, want available", status.SeatStatus["1"])
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
	if got := bookingCalls.Load(); got != 2 {
		t.Errorf("booking calls = %d, want 2 (original + retry)", got)
	}
	if creds.Credentials().Access != "acc-new" {
		t.Errorf("stored access = %q, want acc-new", creds.Credentials().Access)
	}
}

// TestRefreshRetryBounded verifies the retry is not a loop: when the
// replayed request is still unauthorized, the 401 propagates and no
// second refresh is attempted.
func TestRefreshRetryBounded(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(writer).Encode(map[string]string{"access": "acc-new"})
	})
	mux.HandleFunc("GET /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "nope"})
	})

	creds := &memoryCredentials{access: "acc-stale", refresh: "ref-1"}
	client := testServer(t, mux, creds)

	_, err := client.SeatStatus(context.Background(), 11)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
}

// TestRefreshFailureInvalidatesSession verifies that a failed refresh
// clears the session and the original 401 reaches the caller.
func TestRefreshFailureInvalidatesSession(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		refreshCalls.Add(1)
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "refresh token expired"})
	})
	mux.HandleFunc("GET /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "token expired"})
	})

	creds := &memoryCredentials{access: "acc-stale", refresh: "ref-old"}
	client := testServer(t, mux, creds)

	_, err := client.SeatStatus(context.Background(), 11)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if got := refreshCalls.Load(); got != 1 {
		t.Errorf("refresh calls = %d, want exactly 1", got)
	}
	if !creds.invalidated {
		t.Error("session was not invalidated after failed refresh")
	}
	if got := creds.Credentials(); got.Access != "" || got.Refresh != "" {
		t.Errorf("credentials after invalidation = %+v, want empty", got)
	}
}

// brokenCredentials fails invalidation, like a session file that has
// become unwritable.
type brokenCredentials struct {
	memoryCredentials
}

func (creds *brokenCredentials) Invalidate() error {
	return errors.New("session file is read-only")
}

// TestRefreshFailureInvalidationErrorLogged verifies that an
// invalidation failure after a failed refresh is logged and does not
// change the 401 the caller sees.
func TestRefreshFailureInvalidationErrorLogged(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "refresh token expired"})
	})
	mux.HandleFunc("GET /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "token expired"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	var logged bytes.Buffer
	creds := &brokenCredentials{memoryCredentials{access: "acc-stale", refresh: "ref-old"}}
	client, err := New(Config{
		BaseURL:     server.URL,
		Credentials: creds,
		Logger:      slog.New(slog.NewTextHandler(&logged, nil)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = client.SeatStatus(context.Background(), 11)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if !strings.Contains(logged.String(), "failed to invalidate session") {
		t.Errorf("invalidation failure not logged: %q", logged.String())
	}
	if !strings.Contains(logged.String(), "read-only") {
		t.Errorf("log line is missing the underlying error: %q", logged.String())
	}
}

// TestRefreshSkippedForUnauthenticatedRequests verifies that a 401 from
// an endpoint called without a bearer header (login with bad
// credentials) never triggers a refresh.
func TestRefreshSkippedForUnauthenticatedRequests(t *testing.T) {
	t.Parallel()

	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(writer).Encode(map[string]string{"access": "acc-new"})
	})
	mux.HandleFunc("POST /api/login/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)

	_, err := client.Login(context.Background(), "rider@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if got := refreshCalls.Load(); got != 0 {
		t.Errorf("refresh calls = %d, want 0", got)
	}
}

// TestRefreshReplaysRequestBody verifies that a POST interrupted by a
// token refresh is replayed with its full body.
func TestRefreshReplaysRequestBody(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token/refresh/", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]string{"access": "acc-new"})
	})
	mux.HandleFunc("POST /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer acc-new" {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "token expired"})
			return
		}
		var hold HoldRequest
		if err := json.NewDecoder(request.Body).Decode(&hold); err != nil {
			t.Errorf("decoding replayed body: %v", err)
		}
		if len(hold.SelectedSeats) != 2 {
			t.Errorf("replayed selected_seats = %v, want 2 seats", hold.SelectedSeats)
		}
		json.NewEncoder(writer).Encode(HoldResponse{TempBookingRef: "tmp-1"})
	})

	creds := &memoryCredentials{access: "acc-stale", refresh: "ref-1"}
	client := testServer(t, mux, creds)

	hold, err := client.HoldSeats(context.Background(), 11, HoldRequest{
		SeatsBooked:   2,
		SelectedSeats: []int{4, 5},
		PaymentType:   PaymentOnline,
	})
	if err != nil {
		t.Fatalf("HoldSeats: %v", err)
	}
	if hold.TempBookingRef != "tmp-1" {
		t.Errorf("TempBookingRef = %q, want tmp-1", hold.TempBookingRef)
	}
}
