// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package booking sequences the three-step booking transaction (seat
// hold, confirmation, payment handoff) against the remote API, with a
// client-side state machine mirroring each stage.
//
// The server owns seat locking and hold expiry; this orchestrator only
// guarantees the client never runs steps out of order, never submits
// against seat state the server has declared stale, and never retries
// anything silently. Every failure returns control to the user.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/mahmoudalimohamed/royalbus/lib/api"
	"github.com/mahmoudalimohamed/royalbus/lib/seatmap"
)

// State is the client-side stage of one booking attempt.
type State int

const (
	// StateIdle means no booking attempt is in progress.
	StateIdle State = iota
	// StateHolding means the temporary-hold request is in flight.
	StateHolding
	// StateHeld means a temporary reference exists and the confirmation
	// step is pending user action.
	StateHeld
	// StateConfirming means the confirmation request is in flight.
	StateConfirming
	// StateAwaitingPayment means the booking is confirmed and the user
	// has been handed the external payment URL. Terminal for this flow:
	// the payment page cannot be resumed from here.
	StateAwaitingPayment
	// StateCompleted means the booking is confirmed with no payment
	// step remaining (cash, or a server-provided redirect).
	StateCompleted
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateHolding:
		return "holding"
	case StateHeld:
		return "held"
	case StateConfirming:
		return "confirming"
	case StateAwaitingPayment:
		return "awaiting-payment"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

// MaxSeatsPerBooking caps one booking at eight seats.
const MaxSeatsPerBooking = 8

// Validation and sequencing errors. The seat-count messages match the
// web client's wording.
var (
	ErrNoSeatsChosen    = errors.New("please choose at least one seat")
	ErrTooManySeats     = fmt.Errorf("can't choose more than %d seats", MaxSeatsPerBooking)
	ErrCustomerRequired = errors.New("customer name and phone are required for admin bookings")
	ErrStaleSeats       = errors.New("seat state is stale; refresh the seat map before booking")
	ErrNotIdle          = errors.New("a booking attempt is already in progress")
	ErrNotHeld          = errors.New("no held booking to act on")
)

// API is the slice of the API client the orchestrator drives.
// *api.Client satisfies it.
type API interface {
	SeatStatus(ctx context.Context, tripID int) (*api.SeatStatusResponse, error)
	HoldSeats(ctx context.Context, tripID int, request api.HoldRequest) (*api.HoldResponse, error)
	ConfirmBooking(ctx context.Context, tripID int, ref string, request api.ConfirmRequest) (*api.ConfirmResponse, error)
	PaymentKey(ctx context.Context, orderID int) (string, error)
}

// Request is one booking attempt's input. Seats keep the user's
// selection order.
type Request struct {
	Seats         []int
	PaymentType   api.PaymentType
	ActorType     api.UserType
	CustomerName  string
	CustomerPhone string
}

// Outcome is the result of a successful confirmation. A non-empty
// PaymentURL means the user must complete payment externally.
type Outcome struct {
	OrderID     int
	Booking     *api.Booking
	PaymentURL  string
	RedirectURL string
}

// Config configures an Orchestrator for one trip.
type Config struct {
	Client API
	TripID int
	// PaymentPage is the external payment page base URL; the one-time
	// payment token is appended as the payment_token query parameter.
	PaymentPage string
	Logger      *slog.Logger
}

// Orchestrator drives one trip's booking flow. The mutex makes the
// single-in-flight rule a hard guarantee rather than the web client's
// disabled-button advisory: a second Hold or Confirm is rejected, not
// queued.
type Orchestrator struct {
	client      API
	tripID      int
	paymentPage string
	logger      *slog.Logger

	mu         sync.Mutex
	state      State
	ref        string
	request    Request
	staleSeats bool
}

// New creates an Orchestrator in StateIdle.
func New(config Config) *Orchestrator {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:      config.Client,
		tripID:      config.TripID,
		paymentPage: config.PaymentPage,
		logger:      logger,
		state:       StateIdle,
	}
}

// State returns the current stage.
func (orchestrator *Orchestrator) State() State {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	return orchestrator.state
}

// Reference returns the temporary booking reference while held.
func (orchestrator *Orchestrator) Reference() string {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	return orchestrator.ref
}

// NeedsSeatRefresh reports whether a seat conflict has invalidated the
// local seat state. While set, Hold refuses to submit.
func (orchestrator *Orchestrator) NeedsSeatRefresh() bool {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	return orchestrator.staleSeats
}

// RefreshSeats fetches the authoritative seat map and clears the stale
// flag. Callers rebuild their selection from the returned chart; any
// previously chosen seats may be gone.
func (orchestrator *Orchestrator) RefreshSeats(ctx context.Context) (*seatmap.Chart, error) {
	status, err := orchestrator.client.SeatStatus(ctx, orchestrator.tripID)
	if err != nil {
		return nil, err
	}
	chart, err := seatmap.New(status.SeatStatus)
	if err != nil {
		return nil, fmt.Errorf("seat status: %w", err)
	}

	orchestrator.mu.Lock()
	orchestrator.staleSeats = false
	orchestrator.mu.Unlock()
	return chart, nil
}

// Validate checks a request without issuing any network call. Hold runs
// the same checks; the UI calls this to surface problems before
// submitting.
func Validate(request Request) error {
	if len(request.Seats) == 0 {
		return ErrNoSeatsChosen
	}
	if len(request.Seats) > MaxSeatsPerBooking {
		return ErrTooManySeats
	}
	if request.ActorType == api.UserAdmin {
		if strings.TrimSpace(request.CustomerName) == "" || strings.TrimSpace(request.CustomerPhone) == "" {
			return ErrCustomerRequired
		}
	}
	return nil
}

// Hold places the temporary hold. Validation failures and sequencing
// violations return before any network call. On a seat conflict the
// orchestrator returns to idle and requires RefreshSeats before the
// next attempt.
func (orchestrator *Orchestrator) Hold(ctx context.Context, request Request) error {
	if err := Validate(request); err != nil {
		return err
	}

	orchestrator.mu.Lock()
	if orchestrator.state != StateIdle {
		orchestrator.mu.Unlock()
		return ErrNotIdle
	}
	if orchestrator.staleSeats {
		orchestrator.mu.Unlock()
		return ErrStaleSeats
	}
	orchestrator.state = StateHolding
	orchestrator.request = request
	orchestrator.mu.Unlock()

	hold := api.HoldRequest{
		SeatsBooked:   len(request.Seats),
		SelectedSeats: request.Seats,
		PaymentType:   request.PaymentType,
	}
	if request.ActorType == api.UserAdmin {
		hold.CustomerName = request.CustomerName
		hold.CustomerPhone = request.CustomerPhone
	}

	response, err := orchestrator.client.HoldSeats(ctx, orchestrator.tripID, hold)

	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	if err != nil {
		orchestrator.state = StateIdle
		if api.IsSeatConflict(err) {
			orchestrator.staleSeats = true
		}
		return err
	}
	orchestrator.state = StateHeld
	orchestrator.ref = response.TempBookingRef
	return nil
}

// Confirm converts the held booking. For online payment it fetches the
// one-time payment key and returns the external payment URL; for cash
// the outcome is final. Any failure returns the flow to idle; the
// temporary reference is not reusable.
func (orchestrator *Orchestrator) Confirm(ctx context.Context) (*Outcome, error) {
	orchestrator.mu.Lock()
	if orchestrator.state != StateHeld {
		orchestrator.mu.Unlock()
		return nil, ErrNotHeld
	}
	orchestrator.state = StateConfirming
	ref := orchestrator.ref
	request := orchestrator.request
	orchestrator.mu.Unlock()

	confirm := api.ConfirmRequest{TempBookingRef: ref}
	if request.ActorType == api.UserAdmin {
		confirm.CustomerName = request.CustomerName
		confirm.CustomerPhone = request.CustomerPhone
	}

	response, err := orchestrator.client.ConfirmBooking(ctx, orchestrator.tripID, ref, confirm)
	if err != nil {
		orchestrator.fail(err)
		return nil, err
	}

	outcome := &Outcome{
		OrderID:     response.OrderID,
		Booking:     response.Booking,
		RedirectURL: response.RedirectURL,
	}

	if request.PaymentType == api.PaymentOnline && response.OrderID != 0 {
		key, err := orchestrator.client.PaymentKey(ctx, response.OrderID)
		if err != nil {
			// The booking is confirmed server-side but payment cannot
			// start. Surface the error instead of pretending success;
			// the order remains visible in the booking history.
			orchestrator.logger.Error("payment key fetch failed after confirmation",
				"trip", orchestrator.tripID, "order", response.OrderID, "error", err)
			orchestrator.fail(err)
			return nil, err
		}
		outcome.PaymentURL = orchestrator.paymentURL(key)
		orchestrator.finish(StateAwaitingPayment)
		return outcome, nil
	}

	orchestrator.finish(StateCompleted)
	return outcome, nil
}

// Cancel abandons a held booking. Only local state is reset: the client
// has no release endpoint for the temporary reference, so the hold
// lingers server-side until it expires. Logged as a warning so the gap
// stays visible.
func (orchestrator *Orchestrator) Cancel() error {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	if orchestrator.state != StateHeld {
		return ErrNotHeld
	}
	orchestrator.logger.Warn("discarding local hold; server-side hold is not released and expires by timeout",
		"trip", orchestrator.tripID, "ref", orchestrator.ref)
	orchestrator.state = StateIdle
	orchestrator.ref = ""
	orchestrator.request = Request{}
	return nil
}

// fail resets the flow after a hold/confirm failure, marking seat state
// stale when the error is a seat conflict.
func (orchestrator *Orchestrator) fail(err error) {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	orchestrator.state = StateIdle
	orchestrator.ref = ""
	if api.IsSeatConflict(err) {
		orchestrator.staleSeats = true
	}
}

func (orchestrator *Orchestrator) finish(state State) {
	orchestrator.mu.Lock()
	defer orchestrator.mu.Unlock()
	orchestrator.state = state
	orchestrator.ref = ""
}

func (orchestrator *Orchestrator) paymentURL(key string) string {
	return orchestrator.paymentPage + "?payment_token=" + url.QueryEscape(key)
}
