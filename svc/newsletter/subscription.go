package newsletter

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
)

type Subscription struct {
	ID           uuid.UUID
	Email        string
	Name         string
	SubscribedAt time.Time
	Status       Status
}

// Store persists subscriptions and their confirmation tokens.
type Store interface {
	// CreateSubscription stores sub together with its token. A duplicate
	// email yields ErrAlreadySubscribed.
	CreateSubscription(ctx context.Context, sub Subscription, token string) error
	// ConfirmSubscription marks the subscription owning token as confirmed
	// and returns its id. Unknown tokens yield ErrTokenNotFound.
	ConfirmSubscription(ctx context.Context, token string) (uuid.UUID, error)
	// ConfirmedSubscriberEmails returns stored addresses as they are,
	// without re-validation.
	ConfirmedSubscriberEmails(ctx context.Context) ([]string, error)
}

const (
	TokenLength   = 25
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewToken returns a random alphanumeric confirmation token.
func NewToken() (string, error) {
	out := make([]byte, 0, TokenLength)
	buf := make([]byte, TokenLength*2)
	// 248 is the largest multiple of len(tokenAlphabet) below 256.
	const limit = 248

	for len(out) < TokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == TokenLength {
				break
			}
		}
	}
	return string(out), nil
}

// IsWellFormedToken reports whether s could have been produced by NewToken.
func IsWellFormedToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
