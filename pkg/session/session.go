package session

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state behind a session token.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Token     string         `json:"token"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func newSession(token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Token:     token,
		Data:      make(map[string]any),
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return s != nil && !time.Now().Before(s.ExpiresAt)
}

// Clone returns a deep copy of the session data map.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Data = maps.Clone(s.Data)
	if c.Data == nil {
		c.Data = make(map[string]any)
	}
	return &c
}
