// Package common defines shared constants and sentinel errors used across
// application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Signup/login errors.
	ErrorEmailTaken         = errors.New("email already in use")
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Auth errors surfaced by the request authenticator. The HTTP layer maps
	// all three to 401; they stay distinguishable internally.
	ErrorInvalidAuthHeader = errors.New("invalid auth header format")
	ErrInvalidToken        = errors.New("invalid token")
	ErrorUserNotFound      = errors.New("user not found")

	// Ownership errors.
	ErrorForbidden = errors.New("not allowed")
)
