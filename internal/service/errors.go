package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
var (
	// ErrEmailTaken indicates a registration used an email that already
	// belongs to an account. API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a login failed. Unknown emails and
	// wrong passwords both produce this error so callers cannot tell them
	// apart. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
