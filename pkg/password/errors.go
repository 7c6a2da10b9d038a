package password

import "errors"

var (
	ErrMismatch      = errors.New("password: mismatch")
	ErrMalformedHash = errors.New("password: malformed hash")
	ErrEmptyPassword = errors.New("password: empty password")
	ErrInvalidSalt   = errors.New("password: invalid salt")
)
