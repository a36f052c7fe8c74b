// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Locations returns the cities-and-areas tree used to populate the trip
// search form.
func (client *Client) Locations(ctx context.Context) ([]City, error) {
	response, err := client.get(ctx, "/api/locations/", nil, false)
	if err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("locations: %w", decodeError(response))
	}

	var result struct {
		Cities []City `json:"cities"`
	}
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}
	return result.Cities, nil
}

// SearchTrips returns the trips matching the query.
func (client *Client) SearchTrips(ctx context.Context, query TripQuery) ([]Trip, error) {
	values := url.Values{}
	values.Set("start_city", strconv.Itoa(query.StartCity))
	values.Set("start_area", strconv.Itoa(query.StartArea))
	values.Set("destination_city", strconv.Itoa(query.DestinationCity))
	values.Set("destination_area", strconv.Itoa(query.DestinationArea))
	values.Set("departure_date", query.DepartureDate)
	values.Set("round_trip", strconv.FormatBool(query.RoundTrip))

	response, err := client.get(ctx, "/api/trips/search/", values, false)
	if err != nil {
		return nil, fmt.Errorf("search trips: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search trips: %w", decodeError(response))
	}

	var trips []Trip
	if err := decodeBody(response.Body, &trips); err != nil {
		return nil, fmt.Errorf("search trips: %w", err)
	}
	return trips, nil
}

// SeatStatus returns the per-seat status map for a trip. The server is
// the source of truth for seat availability; callers re-fetch this
// after any seat-conflict error rather than trusting local state.
func (client *Client) SeatStatus(ctx context.Context, tripID int) (*SeatStatusResponse, error) {
	response, err := client.get(ctx, fmt.Sprintf("/api/trips/%d/book/", tripID), nil, true)
	if err != nil {
		return nil, fmt.Errorf("seat status: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seat status: %w", decodeError(response))
	}

	var result SeatStatusResponse
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("seat status: %w", err)
	}
	return &result, nil
}

// HoldSeats places a temporary hold on the selected seats and returns
// the opaque booking reference for the confirmation step. Seat-conflict
// failures satisfy IsSeatConflict.
func (client *Client) HoldSeats(ctx context.Context, tripID int, request HoldRequest) (*HoldResponse, error) {
	response, err := client.post(ctx, fmt.Sprintf("/api/trips/%d/book/", tripID), request, true)
	if err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("hold seats: %w", decodeError(response))
	}

	var result HoldResponse
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}
	if result.TempBookingRef == "" {
		return nil, fmt.Errorf("hold seats: response carried no booking reference")
	}
	return &result, nil
}

// ConfirmBooking converts a held booking into a confirmed one.
func (client *Client) ConfirmBooking(ctx context.Context, tripID int, ref string, request ConfirmRequest) (*ConfirmResponse, error) {
	path := fmt.Sprintf("/api/trips/%d/confirm/%s/", tripID, url.PathEscape(ref))
	response, err := client.post(ctx, path, request, true)
	if err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("confirm booking: %w", decodeError(response))
	}

	var result ConfirmResponse
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	return &result, nil
}
