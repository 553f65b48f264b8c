package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidCredentials indicates a failed login. It is deliberately the
	// same error for an unknown email and a wrong password so callers cannot
	// enumerate registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the token format is invalid or the signature
	// doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in
	// the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
