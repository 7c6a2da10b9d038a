package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/dmitrymomot/newsroom/pkg/cookie"
)

// Manager ties a Store to a Transport and hands out per-request Handles.
type Manager struct {
	store         Store
	transport     Transport
	config        Config
	cookieManager *cookie.Manager
	cookieOptions []cookie.Option
	logger        *slog.Logger
}

// New creates a session manager. Without WithTransport a cookie manager is
// required; New panics if neither is given.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	if m.transport == nil {
		if m.cookieManager == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookieManager, m.config.CookieName, m.config.SecureCookies, m.cookieOptions...)
	}

	return m
}

// NewFromConfig creates a Manager from cfg. Store and cookie manager come
// from opts.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Handle returns the session handle for one request.
func (m *Manager) Handle(w http.ResponseWriter, r *http.Request) *Handle {
	return &Handle{m: m, w: w, r: r}
}

// Middleware installs a Handle in every request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := m.Handle(w, r)
		next.ServeHTTP(w, r.WithContext(WithHandle(r.Context(), h)))
	})
}

// load returns the request's session or an error IsAbsent recognizes.
func (m *Manager) load(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

func (m *Manager) create(ctx context.Context, w http.ResponseWriter, data map[string]any, createdAt time.Time) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if createdAt.IsZero() {
		createdAt = now
	}
	s := newSession(token, m.config.expiry(createdAt, now))
	s.CreatedAt = createdAt
	maps.Copy(s.Data, data)

	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, s.Token, time.Until(s.ExpiresAt)); err != nil {
		if delErr := m.store.Delete(ctx, s.Token); delErr != nil {
			m.logger.WarnContext(ctx, "failed to remove session after transport error", slog.String("error", delErr.Error()))
		}
		return nil, err
	}
	return s, nil
}

func (m *Manager) save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = m.config.expiry(s.CreatedAt, now)

	if err := m.store.Update(ctx, s); err != nil {
		return err
	}
	return m.transport.SetToken(w, s.Token, time.Until(s.ExpiresAt))
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
