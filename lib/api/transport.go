// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxRefreshAttempts bounds the silent refresh-and-retry performed when
// an authenticated request comes back 401. The bound is exactly one: a
// second 401 after a successful refresh means the session is genuinely
// invalid, and looping on refresh would never terminate.
const maxRefreshAttempts = 1

// refreshTransport decorates an http.RoundTripper with the one-shot
// token refresh. On a 401 response to a bearer-authenticated request it
// exchanges the stored refresh token for a new access token, stores it,
// and replays the original request once with the new token. The replay
// uses the undecorated base transport, so its response, 401 or
// otherwise, is returned as-is.
//
// A failed refresh invalidates the session through the credential
// source and lets the original 401 propagate to the caller.
type refreshTransport struct {
	base        http.RoundTripper
	credentials CredentialSource
	refresh     func(ctx context.Context, refreshToken string) (string, error)
	logger      *slog.Logger
}

func (transport *refreshTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	response, err := transport.base.RoundTrip(request)
	if err != nil || response.StatusCode != http.StatusUnauthorized {
		return response, err
	}

	// Only bearer-authenticated requests are eligible: a 401 from the
	// login endpoint means bad credentials, not an expired token.
	if request.Header.Get("Authorization") == "" {
		return response, nil
	}

	refreshToken := transport.credentials.Credentials().Refresh
	if refreshToken == "" {
		return response, nil
	}

	for attempt := 0; attempt < maxRefreshAttempts; attempt++ {
		access, refreshErr := transport.refresh(request.Context(), refreshToken)
		if refreshErr != nil {
			// Session unrecoverable. Clear it and surface the original
			// 401 so the caller routes the user to login.
			if invalidateErr := transport.credentials.Invalidate(); invalidateErr != nil {
				// The session file keeps a refresh token the server
				// already rejected; the next start hits the same 401.
				transport.logger.Warn("failed to invalidate session after refresh failure",
					"error", invalidateErr)
			}
			return response, nil
		}
		if storeErr := transport.credentials.StoreAccess(access); storeErr != nil {
			return response, nil
		}

		retry, cloneErr := cloneRequest(request)
		if cloneErr != nil {
			return response, nil
		}
		retry.Header.Set("Authorization", "Bearer "+access)

		io.Copy(io.Discard, io.LimitReader(response.Body, maxResponseSize))
		response.Body.Close()
		return transport.base.RoundTrip(retry)
	}
	return response, nil
}

// cloneRequest duplicates a request for replay. Requests with bodies
// must carry GetBody (true for anything built from a bytes.Reader); a
// consumed body without GetBody cannot be replayed.
func cloneRequest(request *http.Request) (*http.Request, error) {
	clone := request.Clone(request.Context())
	if request.Body == nil {
		return clone, nil
	}
	if request.GetBody == nil {
		return nil, fmt.Errorf("request body is not replayable")
	}
	body, err := request.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}
