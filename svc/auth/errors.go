package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnexpected wraps infrastructure failures. Its cause is for logs only.
	ErrUnexpected = errors.New("auth: unexpected error")

	// ErrUserNotFound is returned by a CredentialStore for unknown users.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrBasicAuth is the parent of every Authorization header parsing error.
	ErrBasicAuth = errors.New("auth: invalid basic authorization")

	ErrNoSession           = errors.New("auth: request has no session handle")
	ErrInvalidSessionValue = errors.New("auth: session user id is not a valid uuid")
)
