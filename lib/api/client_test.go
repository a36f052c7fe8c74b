// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// testServer creates a test HTTP server backed by handler and returns a
// Client connected to it. The server is cleaned up when the test
// completes.
func testServer(t *testing.T, handler http.Handler, credentials CredentialSource) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewForTesting(&testServerTransport{
		server:    server,
		transport: http.DefaultTransport,
	}, credentials)
}

// testServerTransport rewrites requests to target the test server.
type testServerTransport struct {
	server    *httptest.Server
	transport http.RoundTripper
}

func (transport *testServerTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request.URL.Scheme = "http"
	request.URL.Host = transport.server.Listener.Addr().String()
	return transport.transport.RoundTrip(request)
}

// memoryCredentials is an in-memory CredentialSource for tests.
type memoryCredentials struct {
	mu          sync.Mutex
	access      string
	refresh     string
	invalidated bool
}

func (creds *memoryCredentials) Credentials() Credentials {
	creds.mu.Lock()
	defer creds.mu.Unlock()
	return Credentials{Access: creds.access, Refresh: creds.refresh}
}

func (creds *memoryCredentials) StoreAccess(access string) error {
	creds.mu.Lock()
	defer creds.mu.Unlock()
	creds.access = access
	return nil
}

func (creds *memoryCredentials) Invalidate() error {
	creds.mu.Lock()
	defer creds.mu.Unlock()
	creds.access = ""
	creds.refresh = ""
	creds.invalidated = true
	return nil
}

func TestLogin(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login/", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if body["email"] != "rider@example.com" || body["password"] != "hunter2" {
			writer.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
			return
		}
		json.NewEncoder(writer).Encode(TokenPair{Access: "acc-1", Refresh: "ref-1"})
	})

	client := testServer(t, mux, nil)
	pair, err := client.Login(context.Background(), "rider@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.Access != "acc-1" || pair.Refresh != "ref-1" {
		t.Errorf("token pair = %+v, want acc-1/ref-1", pair)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"error": "Invalid credentials"})
	})

	client := testServer(t, mux, nil)
	_, err := client.Login(context.Background(), "rider@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestSearchTripsEncodesQuery(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/trips/search/", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		if got := query.Get("start_city"); got != "1" {
			t.Errorf("start_city = %q, want 1", got)
		}
		if got := query.Get("destination_area"); got != "7" {
			t.Errorf("destination_area = %q, want 7", got)
		}
		if got := query.Get("departure_date"); got != "2026-09-14" {
			t.Errorf("departure_date = %q, want 2026-09-14", got)
		}
		if got := query.Get("round_trip"); got != "false" {
			t.Errorf("round_trip = %q, want false", got)
		}
		json.NewEncoder(writer).Encode([]Trip{
			{ID: 3, StartLocation: "Cairo", Destination: "Alexandria", BusType: BusStandard, Price: 250},
		})
	})

	client := testServer(t, mux, nil)
	trips, err := client.SearchTrips(context.Background(), TripQuery{
		StartCity:       1,
		StartArea:       2,
		DestinationCity: 5,
		DestinationArea: 7,
		DepartureDate:   "2026-09-14",
	})
	if err != nil {
		t.Fatalf("SearchTrips: %v", err)
	}
	if len(trips) != 1 || trips[0].ID != 3 {
		t.Fatalf("trips = %+v, want one trip with ID 3", trips)
	}
}

func TestSeatStatus(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Authorization"); got != "Bearer acc-1" {
			t.Errorf("Authorization = %q, want Bearer acc-1", got)
		}
		json.NewEncoder(writer).Encode(SeatStatusResponse{
			SeatStatus: map[string]string{"1": "available", "2": "booked", "3": "available"},
		})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	status, err := client.SeatStatus(context.Background(), 11)
	if err != nil {
		t.Fatalf("SeatStatus: %v", err)
	}
	if status.SeatStatus["2"] != "booked" {
		t.Errorf("seat 2 status = %q, want booked", status.SeatStatus["2"])
	}
}

func TestSeatStatusRequiresSession(t *testing.T) {
	t.Parallel()

	client := testServer(t, http.NewServeMux(), &memoryCredentials{})
	_, err := client.SeatStatus(context.Background(), 11)
	if err == nil {
		t.Fatal("expected error without a session")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestHoldSeats(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		var hold HoldRequest
		json.NewDecoder(request.Body).Decode(&hold)
		if hold.SeatsBooked != 2 || len(hold.SelectedSeats) != 2 {
			t.Errorf("hold = %+v, want 2 seats", hold)
		}
		if hold.PaymentType != PaymentOnline {
			t.Errorf("payment_type = %q, want ONLINE", hold.PaymentType)
		}
		json.NewEncoder(writer).Encode(HoldResponse{TempBookingRef: "tmp-77"})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	hold, err := client.HoldSeats(context.Background(), 11, HoldRequest{
		SeatsBooked:   2,
		SelectedSeats: []int{4, 5},
		PaymentType:   PaymentOnline,
	})
	if err != nil {
		t.Fatalf("HoldSeats: %v", err)
	}
	if hold.TempBookingRef != "tmp-77" {
		t.Errorf("TempBookingRef = %q, want tmp-77", hold.TempBookingRef)
	}
}

func TestHoldSeatsMissingReference(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/trips/11/book/", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]string{})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	_, err := client.HoldSeats(context.Background(), 11, HoldRequest{SeatsBooked: 1, SelectedSeats: []int{1}, PaymentType: PaymentCash})
	if err == nil {
		t.Fatal("expected error for response without booking reference")
	}
}

func TestConfirmBooking(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/trips/11/confirm/tmp-77/", func(writer http.ResponseWriter, request *http.Request) {
		var confirm ConfirmRequest
		json.NewDecoder(request.Body).Decode(&confirm)
		if confirm.TempBookingRef != "tmp-77" {
			t.Errorf("temp_booking_ref = %q, want tmp-77", confirm.TempBookingRef)
		}
		json.NewEncoder(writer).Encode(ConfirmResponse{
			OrderID: 901,
			Booking: &Booking{ID: 901, Status: BookingConfirmed},
		})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	confirmed, err := client.ConfirmBooking(context.Background(), 11, "tmp-77", ConfirmRequest{TempBookingRef: "tmp-77"})
	if err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if confirmed.OrderID != 901 {
		t.Errorf("OrderID = %d, want 901", confirmed.OrderID)
	}
}

func TestRegisterFieldErrors(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register/", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(writer).Encode(map[string][]string{
			"email":        {"user with this email already exists."},
			"phone_number": {"this field is required."},
		})
	})

	client := testServer(t, mux, nil)
	err := client.Register(context.Background(), RegisterRequest{Name: "Omar", Email: "omar@example.com"})
	if err == nil {
		t.Fatal("expected registration error")
	}
	fields := FieldErrors(err)
	if len(fields["email"]) != 1 {
		t.Errorf("email errors = %v, want one message", fields["email"])
	}
	if len(fields["phone_number"]) != 1 {
		t.Errorf("phone_number errors = %v, want one message", fields["phone_number"])
	}
}

func TestPaymentKeyMissing(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/get_payment_key/901/", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]string{})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	_, err := client.PaymentKey(context.Background(), 901)
	if err == nil {
		t.Fatal("expected error for missing payment key")
	}
}

func TestProfile(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profile/", func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		if got := query.Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := query.Get("limit"); got != "5" {
			t.Errorf("limit = %q, want 5", got)
		}
		json.NewEncoder(writer).Encode(ProfileResponse{
			User:       User{Name: "Omar", Email: "omar@example.com", UserType: UserPassenger},
			Bookings:   []Booking{{ID: 31, Status: BookingConfirmed}},
			Pagination: Pagination{Page: 2, TotalPages: 4},
		})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	profile, err := client.Profile(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Pagination.TotalPages != 4 {
		t.Errorf("TotalPages = %d, want 4", profile.Pagination.TotalPages)
	}
	if profile.User.UserType != UserPassenger {
		t.Errorf("UserType = %q, want Passenger", profile.User.UserType)
	}
}

func TestCancelBooking(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/bookings/31/cancel/", func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]string{"message": "cancelled"})
	})

	creds := &memoryCredentials{access: "acc-1", refresh: "ref-1"}
	client := testServer(t, mux, creds)
	if err := client.CancelBooking(context.Background(), 31); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
}
