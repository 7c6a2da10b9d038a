package newsletter

import "errors"

var (
	ErrAlreadySubscribed = errors.New("newsletter: email is already subscribed")
	ErrMissingToken      = errors.New("newsletter: subscription token is required")
	ErrTokenNotFound     = errors.New("newsletter: subscription token not found")

	// ErrStore wraps failures of the subscription store.
	ErrStore = errors.New("newsletter: store failure")

	// ErrDelivery wraps email sender failures.
	ErrDelivery = errors.New("newsletter: delivery failed")
)
