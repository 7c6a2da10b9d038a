package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsroom/pkg/session"
)

const userIDKey = "user_id"

// SessionHandle is the part of a request session the auth flows use.
// *session.Handle implements it.
type SessionHandle interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Insert(ctx context.Context, key string, value any) error
	Renew(ctx context.Context) error
	Purge(ctx context.Context) error
}

// HandleResolver finds the session handle of a request.
type HandleResolver func(r *http.Request) (SessionHandle, bool)

// ContextHandle resolves the handle installed by session.Manager.Middleware.
func ContextHandle(r *http.Request) (SessionHandle, bool) {
	h, ok := session.FromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h, true
}

// TypedSession reads and writes the user id of a request session.
type TypedSession struct {
	resolve HandleResolver
}

// NewTypedSession uses ContextHandle when resolve is nil.
func NewTypedSession(resolve HandleResolver) *TypedSession {
	if resolve == nil {
		resolve = ContextHandle
	}
	return &TypedSession{resolve: resolve}
}

func (s *TypedSession) handle(r *http.Request) (SessionHandle, error) {
	h, ok := s.resolve(r)
	if !ok {
		return nil, ErrNoSession
	}
	return h, nil
}

// LogIn rotates the session token and then records userID.
func (s *TypedSession) LogIn(r *http.Request, userID uuid.UUID) error {
	h, err := s.handle(r)
	if err != nil {
		return err
	}
	if err := h.Renew(r.Context()); err != nil {
		return err
	}
	return h.Insert(r.Context(), userIDKey, userID.String())
}

// LogOut purges the session. It is safe to call without a session.
func (s *TypedSession) LogOut(r *http.Request) error {
	h, err := s.handle(r)
	if err != nil {
		return err
	}
	return h.Purge(r.Context())
}

// Purger returns a purge func bound to the request session, for flows that
// finish after the request context is gone.
func (s *TypedSession) Purger(r *http.Request) func(context.Context) error {
	return func(ctx context.Context) error {
		h, err := s.handle(r)
		if err != nil {
			return err
		}
		return h.Purge(ctx)
	}
}

// UserID returns the logged in user. ok is false when the request has no
// session or the session carries no user id.
func (s *TypedSession) UserID(r *http.Request) (uuid.UUID, bool, error) {
	h, err := s.handle(r)
	if err != nil {
		return uuid.Nil, false, err
	}

	v, ok, err := h.Get(r.Context(), userIDKey)
	if err != nil || !ok {
		return uuid.Nil, false, err
	}

	switch id := v.(type) {
	case uuid.UUID:
		return id, true, nil
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, false, errors.Join(ErrInvalidSessionValue, err)
		}
		return parsed, true, nil
	}
	return uuid.Nil, false, ErrInvalidSessionValue
}
