package session

import "context"

// Store persists sessions keyed by token. Implementations return
// ErrSessionNotFound for unknown tokens and ErrSessionExpired for sessions
// past their expiry; any other error is treated as an infrastructure
// failure.
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, token string) error
}
