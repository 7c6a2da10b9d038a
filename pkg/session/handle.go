package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Handle is the session of a single request. The session is read from the
// store on first use and created on first write. A Handle must not be shared
// between goroutines.
type Handle struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request

	loaded  bool
	current *Session
}

func (h *Handle) session(ctx context.Context) (*Session, error) {
	if h.loaded {
		return h.current, nil
	}

	s, err := h.m.load(ctx, h.r)
	switch {
	case err == nil:
		h.current = s
	case IsAbsent(err):
		h.current = nil
	default:
		return nil, err
	}
	h.loaded = true
	return h.current, nil
}

// Get returns the value stored under key. A missing session is reported as
// (nil, false, nil); only store failures produce an error.
func (h *Handle) Get(ctx context.Context, key string) (any, bool, error) {
	s, err := h.session(ctx)
	if err != nil || s == nil {
		return nil, false, err
	}
	v, ok := s.Data[key]
	return v, ok, nil
}

// Insert stores value under key, creating the session if needed. Values
// must survive a JSON round trip when a RedisStore is used.
func (h *Handle) Insert(ctx context.Context, key string, value any) error {
	s, err := h.session(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		s, err = h.m.create(ctx, h.w, map[string]any{key: value}, time.Time{})
		if err != nil {
			return err
		}
		h.current = s
		return nil
	}

	s.Data[key] = value
	return h.m.save(ctx, h.w, s)
}

// Remove deletes key from the session. It is a no-op without a session.
func (h *Handle) Remove(ctx context.Context, key string) error {
	s, err := h.session(ctx)
	if err != nil || s == nil {
		return err
	}
	if _, ok := s.Data[key]; !ok {
		return nil
	}
	delete(s.Data, key)
	return h.m.save(ctx, h.w, s)
}

// Renew moves the session to a fresh token, keeping its data, and deletes
// the old token from the store. Without a session nothing happens; the next
// Insert issues a fresh token anyway.
func (h *Handle) Renew(ctx context.Context) error {
	s, err := h.session(ctx)
	if err != nil || s == nil {
		return err
	}

	renewed, err := h.m.create(ctx, h.w, s.Data, s.CreatedAt)
	if err != nil {
		return err
	}
	if err := h.m.store.Delete(ctx, s.Token); err != nil {
		h.m.logger.WarnContext(ctx, "failed to delete previous session token", slog.String("error", err.Error()))
	}
	h.current = renewed
	return nil
}

// Purge deletes the session from the store and clears the client token.
// Purging a request without a session only clears the token.
func (h *Handle) Purge(ctx context.Context) error {
	token := ""
	if h.loaded && h.current != nil {
		token = h.current.Token
	} else if t, err := h.m.transport.GetToken(h.r); err == nil {
		token = t
	}

	if token != "" {
		if err := h.m.store.Delete(ctx, token); err != nil {
			return err
		}
	}

	h.loaded = true
	h.current = nil
	return h.m.transport.ClearToken(h.w)
}
