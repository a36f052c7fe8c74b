// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges credentials for an access/refresh token pair. The
// caller (the session manager) is responsible for persisting them.
func (client *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	response, err := client.post(ctx, "/api/login/", body, false)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login: %w", decodeError(response))
	}

	var result TokenPair
	if err := decodeBody(response.Body, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// Logout invalidates the refresh token server-side. Callers treat a
// failure here as best-effort: the local session is cleared regardless.
func (client *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh": refreshToken}
	response, err := client.post(ctx, "/api/logout/", body, true)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: %w", decodeError(response))
	}
	return nil
}

// Refresh exchanges the refresh token for a new access token. A failure
// means the session is unrecoverable.
func (client *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refresh": refreshToken}
	response, err := client.post(ctx, "/api/token/refresh/", body, false)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh token: %w", decodeError(response))
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := decodeBody(response.Body, &result); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	if result.Access == "" {
		return "", fmt.Errorf("refresh token: response carried no access token")
	}
	return result.Access, nil
}

// Register creates a new passenger account. Validation failures come
// back as field-keyed messages, retrievable with FieldErrors.
func (client *Client) Register(ctx context.Context, request RegisterRequest) error {
	response, err := client.post(ctx, "/api/register/", request, false)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		return fmt.Errorf("register: %w", decodeError(response))
	}
	return nil
}

// ForgotPassword requests a password-reset email for the account.
func (client *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	response, err := client.post(ctx, "/api/password_reset/", body, false)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("forgot password: %w", decodeError(response))
	}
	return nil
}

// ResetPassword sets a new password using the token and uid from the
// reset email.
func (client *Client) ResetPassword(ctx context.Context, token, uid, password string) error {
	body := map[string]string{"token": token, "uid": uid, "password": password}
	response, err := client.post(ctx, "/api/password_reset/confirm/", body, false)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("reset password: %w", decodeError(response))
	}
	return nil
}
