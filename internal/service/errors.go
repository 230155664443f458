// Package service provides application-level services for managing users,
// categories, goals, and tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with fmt.Errorf("%w", ...)
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrTitleExists indicates the user already has a resource with the same
	// title in the same scope. API layer should map this to HTTP 409 Conflict.
	ErrTitleExists = errors.New("a resource with this title already exists")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or
	// password. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
