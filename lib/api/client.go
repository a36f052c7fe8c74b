// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the Royal Bus booking
// REST API. Every remote operation the application performs is a
// method on Client: auth, trip search, the hold/confirm/payment
// booking sequence, and booking history. No business logic lives here
// beyond the HTTP invocation and response decoding.
//
// The client mirrors the server's wire format with its own response
// types. Authenticated endpoints read the bearer token from an injected
// CredentialSource, and a transport decorator performs the one-shot
// refresh-and-retry on 401 responses (see transport.go).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// maxResponseSize bounds JSON response body reads: 8 MB. Booking API
// responses are a few kilobytes; the bound only guards against a
// misbehaving server exhausting memory.
const maxResponseSize int64 = 8 << 20

// defaultTimeout applies when the caller supplies no *http.Client.
const defaultTimeout = 30 * time.Second

// Credentials is the access/refresh token pair the client needs to
// authenticate requests and to recover from an expired access token.
type Credentials struct {
	Access  string
	Refresh string
}

// CredentialSource supplies tokens for authenticated requests and
// absorbs the outcome of silent refreshes. The session manager is the
// production implementation; it is the only writer of token state.
type CredentialSource interface {
	// Credentials returns the current token pair. Zero values mean no
	// session is present.
	Credentials() Credentials

	// StoreAccess replaces the access token after a successful refresh.
	StoreAccess(access string) error

	// Invalidate discards the session after a failed refresh. The
	// session is unrecoverable at that point; there is no partial state.
	Invalidate() error
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API origin, e.g. "https://mahmoudali0.pythonanywhere.com".
	BaseURL string

	// HTTPClient is the underlying HTTP client. Optional; a client with
	// defaultTimeout is used when nil. Its transport is wrapped with the
	// refresh decorator when Credentials is set.
	HTTPClient *http.Client

	// Credentials supplies bearer tokens. Optional; when nil only the
	// unauthenticated endpoints are usable.
	Credentials CredentialSource

	// Logger receives transport-level warnings, such as a session that
	// could not be invalidated after a failed refresh. Optional;
	// slog.Default() when nil.
	Logger *slog.Logger
}

// Client is a typed HTTP client for the booking API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource
}

// New creates a Client for the given configuration.
func New(config Config) (*Client, error) {
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	client := &Client{
		baseURL:     base.Scheme + "://" + base.Host,
		credentials: config.Credentials,
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Wrap the transport so expired access tokens are refreshed and the
	// failed request replayed, exactly once. The refresh POST flows
	// through this same wrapped client, but it carries no Authorization
	// header, so the decorator never tries to refresh it; the replay of
	// the original request goes through the base transport directly.
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	wrapped := *httpClient
	if config.Credentials != nil {
		wrapped.Transport = &refreshTransport{
			base:        transport,
			credentials: config.Credentials,
			refresh:     client.Refresh,
			logger:      logger,
		}
	}
	client.httpClient = &wrapped
	return client, nil
}

// NewForTesting creates a Client with a custom transport and credential
// source. Tests use a transport that redirects requests to an
// httptest.Server.
func NewForTesting(transport http.RoundTripper, credentials CredentialSource) *Client {
	client := &Client{
		baseURL:     "http://royalbus.test",
		credentials: credentials,
	}
	if credentials != nil {
		transport = &refreshTransport{
			base:        transport,
			credentials: credentials,
			refresh:     client.Refresh,
			logger:      slog.Default(),
		}
	}
	client.httpClient = &http.Client{Transport: transport}
	return client
}

// BaseURL returns the API origin the client was configured with.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// get issues a GET request. When authenticated is true the current
// access token is attached as a bearer header; a missing session is
// reported without a network round-trip.
func (client *Client) get(ctx context.Context, path string, query url.Values, authenticated bool) (*http.Response, error) {
	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if authenticated {
		if err := client.authorize(request); err != nil {
			return nil, err
		}
	}
	return client.httpClient.Do(request)
}

// post issues a POST request with a JSON body. The body is buffered so
// the refresh transport can replay the request after a token refresh.
func (client *Client) post(ctx context.Context, path string, body any, authenticated bool) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	if authenticated {
		if err := client.authorize(request); err != nil {
			return nil, err
		}
	}
	return client.httpClient.Do(request)
}

// authorize attaches the bearer header from the credential source.
func (client *Client) authorize(request *http.Request) error {
	if client.credentials == nil {
		return &Error{Category: CategoryUnauthorized, Message: "not logged in"}
	}
	access := client.credentials.Credentials().Access
	if access == "" {
		return &Error{Category: CategoryUnauthorized, Message: "not logged in"}
	}
	request.Header.Set("Authorization", "Bearer "+access)
	return nil
}

// readBody reads a response body up to maxResponseSize bytes.
func readBody(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, maxResponseSize))
}

// decodeBody reads a JSON response body (bounded) and decodes it into v.
func decodeBody(body io.Reader, v any) error {
	data, err := readBody(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
