package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/newsroom/handler"
	"github.com/dmitrymomot/newsroom/pkg/binder"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/svc/auth"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

type Newsletter interface {
	Subscribe(ctx context.Context, name, email string) (newsletter.Subscription, error)
	Confirm(ctx context.Context, token string) error
	Publish(ctx context.Context, issue newsletter.Issue) (newsletter.Report, error)
}

type Service struct {
	newsletter   Newsletter
	validator    auth.CredentialValidator
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

func NewService(nl Newsletter, validator auth.CredentialValidator, opts ...Option) *Service {
	s := &Service{
		newsletter: nl,
		validator:  validator,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger)
	}
	return s
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// Routes registers the subscription and publishing endpoints on r.
func (s *Service) Routes(r chi.Router) {
	r.Post("/subscriptions", handler.Wrap(s.subscribe,
		handler.WithBinders[subscribeRequest](binder.Form()),
		handler.WithErrorHandler[subscribeRequest](s.errorHandler),
	))
	r.Get(newsletter.ConfirmPath, handler.Wrap(s.confirm,
		handler.WithErrorHandler[struct{}](s.errorHandler),
	))

	r.With(s.basicAuth).Post("/newsletters", handler.Wrap(s.publish,
		handler.WithBinders[publishRequest](binder.JSON()),
		handler.WithErrorHandler[publishRequest](s.errorHandler),
	))
}

// basicAuth validates per-request Basic credentials and puts the user id in
// the request context. Every rejection is a 401 challenge.
func (s *Service) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		creds, err := auth.ParseBasicAuth(r.Header)
		if err != nil {
			s.logger.DebugContext(ctx, "rejected basic authorization header",
				logger.Error(err),
				logger.Component("api"),
			)
			auth.Challenge(w)
			return
		}

		userID, err := s.validator.Validate(ctx, creds)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				s.logger.ErrorContext(ctx, "failed to validate basic credentials",
					logger.Username(creds.Username),
					logger.Error(err),
					logger.Component("api"),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			auth.Challenge(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUserID(ctx, userID)))
	})
}
