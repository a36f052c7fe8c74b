// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mahmoudalimohamed/royalbus/cmd/royalbus/cli"
	"github.com/mahmoudalimohamed/royalbus/lib/api"
)

func TestAPIError_Categories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category cli.ErrorCategory
	}{
		{"unauthorized", &api.Error{Category: api.CategoryUnauthorized, StatusCode: 401}, cli.CategoryAuth},
		{"forbidden", &api.Error{Category: api.CategoryForbidden, StatusCode: 403}, cli.CategoryAuth},
		{"not found", &api.Error{Category: api.CategoryNotFound, StatusCode: 404}, cli.CategoryNotFound},
		{"conflict", &api.Error{Category: api.CategoryConflict, StatusCode: 400, Message: "Seat 5 is no longer available"}, cli.CategoryConflict},
		{"validation", &api.Error{Category: api.CategoryValidation, StatusCode: 400, Message: "bad date"}, cli.CategoryValidation},
		{"server", &api.Error{Category: api.CategoryInternal, StatusCode: 502}, cli.CategoryTransient},
		{"network", errors.New("dial tcp: connection refused"), cli.CategoryTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mapped := apiError(fmt.Errorf("search: %w", test.err))

			var commandError *cli.CommandError
			if !errors.As(mapped, &commandError) {
				t.Fatalf("apiError() = %T, want *cli.CommandError", mapped)
			}
			if commandError.Category != test.category {
				t.Errorf("category = %q, want %q", commandError.Category, test.category)
			}
		})
	}
}

func TestAPIError_KeepsExistingCommandError(t *testing.T) {
	original := cli.Validation("bad input")
	mapped := apiError(original)

	var commandError *cli.CommandError
	if !errors.As(mapped, &commandError) || commandError != original {
		t.Error("apiError should pass an existing CommandError through unchanged")
	}
}

func TestFormatFieldErrors(t *testing.T) {
	apiErr := &api.Error{
		Category:   api.CategoryValidation,
		StatusCode: 400,
		Fields: map[string][]string{
			"email": {"user with this email already exists"},
		},
	}

	text := formatFieldErrors(apiErr)
	if !strings.Contains(text, "email: user with this email already exists") {
		t.Errorf("formatted text missing field message:\n%s", text)
	}
}

func TestFormatFieldErrors_NoFields(t *testing.T) {
	apiErr := &api.Error{Category: api.CategoryValidation, StatusCode: 400, Message: "bad date"}
	if got := formatFieldErrors(apiErr); got != "bad date" {
		t.Errorf("formatFieldErrors() = %q, want %q", got, "bad date")
	}
}
