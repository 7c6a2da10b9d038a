package session

import "errors"

var (
	// ErrSessionNotFound means the request carries no usable session.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired means the stored session outlived its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidSession is returned by stores for sessions without a token.
	ErrInvalidSession = errors.New("session.invalid")

	ErrTokenGeneration = errors.New("session.token_generation_failed")
	ErrStore           = errors.New("session.store_failed")
	ErrTransport       = errors.New("session.transport_failed")
)

// IsAbsent reports whether err means "no session" rather than a failure.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired)
}
