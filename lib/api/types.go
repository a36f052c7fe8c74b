// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

// PaymentType selects how a booking is paid. Admins book cash on behalf
// of walk-in customers; passengers pay online through the payment page.
type PaymentType string

const (
	// PaymentCash marks a booking settled in cash at the counter.
	PaymentCash PaymentType = "CASH"
	// PaymentOnline marks a booking paid through the external payment page.
	PaymentOnline PaymentType = "ONLINE"
)

// UserType distinguishes counter staff from ordinary passengers.
type UserType string

const (
	// UserAdmin is counter staff booking on behalf of customers.
	UserAdmin UserType = "Admin"
	// UserPassenger is a self-service passenger account.
	UserPassenger UserType = "Passenger"
)

// BusType selects the seat layout for a trip.
type BusType string

const (
	// BusStandard is the full-size coach with a 4-across layout.
	BusStandard BusType = "STANDARD"
	// BusMini is the mini bus with the 1/2/3/3/4 row pattern.
	BusMini BusType = "MINI"
)

// TokenPair is the access/refresh token pair returned by POST /api/login/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest is the body for POST /api/register/.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// Area is a pickup or dropoff area within a city.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// City groups the areas served in one city.
type City struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas"`
}

// TripQuery is the query for GET /api/trips/search/.
type TripQuery struct {
	StartCity       int
	StartArea       int
	DestinationCity int
	DestinationArea int
	// DepartureDate is the travel date in YYYY-MM-DD form.
	DepartureDate string
	RoundTrip     bool
}

// Trip is a scheduled departure as returned by the search endpoint.
// Trips are immutable from the client's point of view within a session.
type Trip struct {
	ID             int     `json:"id"`
	StartLocation  string  `json:"start_location"`
	Destination    string  `json:"destination"`
	DepartureDate  string  `json:"departure_date"`
	BusType        BusType `json:"bus_type"`
	Price          float64 `json:"price"`
	AvailableSeats int     `json:"available_seats"`
}

// SeatStatusResponse is the wire format for GET /api/trips/{id}/book/:
// a map from seat number (as a string key) to "available"/"booked".
type SeatStatusResponse struct {
	SeatStatus map[string]string `json:"seat_status"`
}

// HoldRequest is the body for POST /api/trips/{id}/book/, which places a
// temporary hold on the selected seats. CustomerName and CustomerPhone
// are required only for admin bookings.
type HoldRequest struct {
	SeatsBooked   int         `json:"seats_booked"`
	SelectedSeats []int       `json:"selected_seats"`
	PaymentType   PaymentType `json:"payment_type"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
}

// HoldResponse carries the opaque temporary booking reference. The
// reference is valid only until confirmed or expired server-side.
type HoldResponse struct {
	TempBookingRef string `json:"temp_booking_ref"`
}

// ConfirmRequest is the body for POST /api/trips/{id}/confirm/{ref}/.
type ConfirmRequest struct {
	TempBookingRef string `json:"temp_booking_ref"`
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerPhone  string `json:"customer_phone,omitempty"`
}

// ConfirmResponse is returned when a held booking is confirmed. For
// online payment the OrderID keys the subsequent payment-key fetch; the
// server may also hand back an explicit RedirectURL for cash bookings.
type ConfirmResponse struct {
	OrderID     int      `json:"order_id"`
	Booking     *Booking `json:"booking"`
	RedirectURL string   `json:"redirect_url"`
}

// PaymentKeyResponse is the wire format for GET /api/get_payment_key/{id}/.
type PaymentKeyResponse struct {
	PaymentKey string `json:"payment_key"`
}

// TripSummary is the trip slice embedded in a booking record.
type TripSummary struct {
	StartLocation string  `json:"start_location"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	BusType       BusType `json:"bus_type"`
}

// Booking is a booking record as returned by the detail and profile
// endpoints. Seat numbers keep the order the user selected them in.
type Booking struct {
	ID               int         `json:"id"`
	Status           string      `json:"status"`
	Trip             TripSummary `json:"trip"`
	SelectedSeats    []int       `json:"selected_seats"`
	TotalPrice       float64     `json:"total_price"`
	PaymentType      PaymentType `json:"payment_type"`
	PaymentStatus    string      `json:"payment_status"`
	PaymentReference string      `json:"payment_reference"`
	BookingDate      string      `json:"booking_date"`
	CustomerName     string      `json:"customer_name"`
	CustomerPhone    string      `json:"customer_phone"`
}

// Booking status values reported by the server.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// User is the account summary embedded in the profile response.
type User struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	UserType    UserType `json:"user_type"`
}

// Pagination describes the booking-history page window.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// ProfileResponse is the wire format for GET /api/profile/.
type ProfileResponse struct {
	User       User       `json:"user"`
	Bookings   []Booking  `json:"bookings"`
	Pagination Pagination `json:"pagination"`
}
