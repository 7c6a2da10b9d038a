package admin

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/binder"
	"github.com/dmitrymomot/newsroom/pkg/cookie"
	"github.com/dmitrymomot/newsroom/svc/auth"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

const (
	DashboardPath   = "/admin/dashboard"
	PasswordPath    = "/admin/password"
	NewslettersPath = "/admin/newsletters"
)

type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, req auth.PasswordChangeRequest, purge func(context.Context) error) (auth.Outcome, error)
}

type UsernameLookup interface {
	GetUsername(ctx context.Context, userID uuid.UUID) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, issue newsletter.Issue) (newsletter.Report, error)
}

type Service struct {
	validator    auth.CredentialValidator
	changer      PasswordChanger
	users        UsernameLookup
	publisher    Publisher
	sessions     *auth.TypedSession
	cookies      *cookie.Manager
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func NewService(
	validator auth.CredentialValidator,
	changer PasswordChanger,
	users UsernameLookup,
	publisher Publisher,
	sessions *auth.TypedSession,
	cookies *cookie.Manager,
	opts ...Option,
) *Service {
	s := &Service{
		validator: validator,
		changer:   changer,
		users:     users,
		publisher: publisher,
		sessions:  sessions,
		cookies:   cookies,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s
}

// Handle returns a router serving Routes. The session middleware must run
// before it.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// Routes registers /login and the gated /admin routes on r.
func (s *Service) Routes(r chi.Router) {
	r.Get(auth.LoginPath, handler.Wrap(s.flashPage, wrapOptions[struct{}](s)...))
	r.Post(auth.LoginPath, handler.Wrap(s.login, formOptions[loginRequest](s)...))

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireLogin(s.sessions, s.logger))

		r.Get("/dashboard", handler.Wrap(s.dashboard, wrapOptions[struct{}](s)...))
		r.Post("/logout", handler.Wrap(s.logout, wrapOptions[struct{}](s)...))

		r.Get("/password", handler.Wrap(s.flashPage, wrapOptions[struct{}](s)...))
		r.Post("/password", handler.Wrap(s.changePassword, formOptions[auth.PasswordChangeRequest](s)...))

		r.Get("/newsletters", handler.Wrap(s.flashPage, wrapOptions[struct{}](s)...))
		r.Post("/newsletters", handler.Wrap(s.publish, formOptions[publishRequest](s)...))
	})
}

func wrapOptions[R any](s *Service) []handler.WrapOption[R] {
	return []handler.WrapOption[R]{handler.WithErrorHandler[R](s.errorHandler)}
}

func formOptions[R any](s *Service) []handler.WrapOption[R] {
	return append(wrapOptions[R](s), handler.WithBinders[R](binder.Form()))
}
