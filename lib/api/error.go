// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Category classifies API errors so that callers can make programmatic
// decisions (fix input, re-authenticate, refresh seat state, give up)
// without parsing error message text.
type Category string

const (
	// CategoryValidation indicates the request carried invalid input:
	// missing fields, malformed values, field-level registration errors.
	CategoryValidation Category = "validation"

	// CategoryUnauthorized indicates a missing, expired, or invalid
	// access token. The refresh transport normally absorbs these; one
	// reaching a caller means the session is gone.
	CategoryUnauthorized Category = "unauthorized"

	// CategoryForbidden indicates the authenticated user may not perform
	// the operation (e.g. a passenger cancelling another user's booking).
	CategoryForbidden Category = "forbidden"

	// CategoryNotFound indicates the referenced trip, booking, or order
	// does not exist.
	CategoryNotFound Category = "not_found"

	// CategoryConflict indicates the operation lost a race with server
	// state, most importantly a seat that was taken between the seat-map
	// fetch and the hold request. Conflict errors on the booking flow
	// require a seat-map refresh before resubmitting.
	CategoryConflict Category = "conflict"

	// CategoryInternal indicates a server-side failure (5xx).
	CategoryInternal Category = "internal"
)

// Error is a categorized error decoded from an API error response.
// Message carries the server's own wording when present so it can be
// surfaced to the user verbatim.
type Error struct {
	// Category classifies the error for programmatic handling.
	Category Category

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the server-provided error text, or empty when the body
	// carried none.
	Message string

	// Fields holds field-keyed validation messages, as returned by the
	// registration endpoint ({"email": ["user with this email exists"]}).
	Fields map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, messages := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// IsSeatConflict reports whether err is a seat-availability conflict.
// Booking code uses this to decide that local seat state is stale and a
// seat-map refresh is required before the next submission.
func IsSeatConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Category == CategoryConflict
}

// IsUnauthorized reports whether err means the session is invalid and
// the user must log in again.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Category == CategoryUnauthorized
}

// FieldErrors returns the field-keyed validation messages from err, or
// nil when err carries none.
func FieldErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// seatConflictMessage reports whether a free-text error message from the
// booking endpoints describes a seat conflict. The API reports conflicts
// as 400s with prose ("Seat 12 is no longer available"), so the match is
// on the exact marker the server uses. Pinned by tests; if the API ever
// grows structured error codes this is the only place to change.
func seatConflictMessage(message string) bool {
	return strings.Contains(message, "Seat")
}

// decodeError turns a non-2xx response into an *Error. The body is
// decoded leniently: the API uses {"error": ...}, {"detail": ...}, and
// bare field-keyed maps depending on the endpoint.
func decodeError(response *http.Response) *Error {
	apiErr := &Error{
		StatusCode: response.StatusCode,
		Category:   categoryForStatus(response.StatusCode),
	}

	body, err := readBody(response.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != "":
			apiErr.Message = envelope.Error
		case envelope.Detail != "":
			apiErr.Message = envelope.Detail
		case envelope.Message != "":
			apiErr.Message = envelope.Message
		}
	}

	// Registration-style field errors: {"email": ["taken"], ...}.
	if apiErr.Message == "" && apiErr.StatusCode == http.StatusBadRequest {
		var fields map[string][]string
		if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
		}
	}

	// The booking endpoints report seat races as 400s with prose rather
	// than a 409. Reclassify those so callers see a conflict.
	if apiErr.StatusCode == http.StatusBadRequest && seatConflictMessage(apiErr.Message) {
		apiErr.Category = CategoryConflict
	}

	return apiErr
}

func categoryForStatus(status int) Category {
	switch {
	case status == http.StatusUnauthorized:
		return CategoryUnauthorized
	case status == http.StatusForbidden:
		return CategoryForbidden
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status == http.StatusConflict:
		return CategoryConflict
	case status >= 500:
		return CategoryInternal
	default:
		return CategoryValidation
	}
}
