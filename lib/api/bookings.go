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

// PaymentKey fetches the one-time payment token for an order. The token
// is consumed by the external payment page; a missing key in an
// otherwise-successful response is an error.
func (client *Client) PaymentKey(ctx context.Context, orderID int) (string, error) {
	response, err := client.get(ctx, fmt.Sprintf("/api/get_payment_key/%d/", orderID), nil, true)
	if err != nil {
		return "", fmt.Errorf("payment key: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment key: %w", decodeError(response))
	}

	var result PaymentKeyResponse
	if err := decodeBody(response.Body, &result); err != nil {
		return "", fmt.Errorf("payment key: %w", err)
	}
	if result.PaymentKey == "" {
		return "", fmt.Errorf("payment key: response carried no payment key")
	}
	return result.PaymentKey, nil
}

// BookingDetail returns the full booking record for an order.
func (client *Client) BookingDetail(ctx context.Context, orderID int) (*Booking, error) {
	response, err := client.get(ctx, fmt.Sprintf("/api/bookings/detail/%d/", orderID), nil, true)
	if err != nil {
		return nil, fmt.Errorf("booking detail: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking detail: %w", decodeError(response))
	}

	var result Booking
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("booking detail: %w", err)
	}
	return &result, nil
}

// CancelBooking cancels a confirmed booking. The server enforces who
// may cancel; the UI only offers this to admin users.
func (client *Client) CancelBooking(ctx context.Context, bookingID int) error {
	response, err := client.post(ctx, fmt.Sprintf("/api/bookings/%d/cancel/", bookingID), struct{}{}, true)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		return fmt.Errorf("cancel booking: %w", decodeError(response))
	}
	return nil
}

// Profile returns the account summary plus one page of booking history.
func (client *Client) Profile(ctx context.Context, page, limit int) (*ProfileResponse, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))

	response, err := client.get(ctx, "/api/profile/", values, true)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile: %w", decodeError(response))
	}

	var result ProfileResponse
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &result, nil
}
