// Copyright 2026 The Royal Bus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that scripts wrapping the
// CLI can make programmatic decisions (retry, fix input, re-login)
// from the exit code without parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, wrong argument count, unparseable
	// values. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown trip ID, unknown booking, missing session file. Retrying
	// with the same parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryAuth indicates the caller is not logged in or the saved
	// session is no longer accepted. The caller should run "royalbus
	// login" and retry.
	CategoryAuth ErrorCategory = "auth"

	// CategoryConflict indicates the operation conflicts with current
	// server state: seats taken by another customer, booking already
	// cancelled. The caller should refetch and decide again.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, rate limit. The caller should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, responses the client could not parse. The caller
	// should report the error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// CommandError is a categorized error returned by CLI commands. The
// main function maps the category to a distinct exit code so shell
// scripts can branch on the failure class.
//
// CommandError wraps an inner error, preserving the full error chain
// for errors.Is checks while adding category metadata. Use the
// category-specific constructors (Validation, NotFound, etc.) rather
// than constructing CommandError directly.
type CommandError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional actionable next step appended after the
	// message, e.g. "Run 'royalbus login' first."
	Hint string
}

// Error returns the underlying error message, with the hint appended
// when set. The category is not included in the string; it travels
// separately via the exit code.
func (e *CommandError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// WithHint attaches an actionable suggestion to the error and returns
// the receiver for chaining.
func (e *CommandError) WithHint(format string, args ...any) *CommandError {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the CommandError wrapper.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps the category to the CLI's exit code convention.
// 1 is reserved for uncategorized errors.
func (e *CommandError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryAuth:
		return 4
	case CategoryConflict:
		return 5
	case CategoryTransient:
		return 6
	default:
		return 1
	}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Auth creates an auth error: the caller needs to log in (again).
func Auth(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryAuth, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error: the operation conflicts with server state.
func Conflict(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
