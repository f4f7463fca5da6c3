package auth

import "errors"

var (
	// ErrInvalidToken is returned when a bearer token cannot be verified.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is returned when an email/password pair does not
	// resolve to a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
