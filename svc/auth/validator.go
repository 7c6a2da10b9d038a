package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/newsroom/pkg/async"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/password"
)

// DummyHash is a valid hash of a random password, encoded with
// password.DefaultParams. Unknown usernames are verified against it.
const DummyHash = "$argon2id$v=19$m=19456,t=2,p=1$gZiV/M1gPc22ElAH/Jh1Hw$CWOrkoo7oJBQ/iyh7uJ0LO2aLEfrHwTWllSAxT0zRno"

const (
	attemptSuccess = "success"
	attemptInvalid = "invalid"
	attemptError   = "error"
)

// CredentialValidator resolves Credentials to a user id.
type CredentialValidator interface {
	Validate(ctx context.Context, c Credentials) (uuid.UUID, error)
}

// Validator is the CredentialValidator backed by a CredentialStore.
type Validator struct {
	store     CredentialStore
	offloader async.Offloader
	hasher    password.Hasher
	tracer    trace.Tracer
	attempts  *prometheus.CounterVec
	logger    *slog.Logger
}

type ValidatorOption func(*Validator)

func WithValidatorTracer(t trace.Tracer) ValidatorOption {
	return func(v *Validator) {
		if t != nil {
			v.tracer = t
		}
	}
}

// WithValidatorRegisterer registers newsroom_auth_attempts_total on reg.
func WithValidatorRegisterer(reg prometheus.Registerer) ValidatorOption {
	return func(v *Validator) {
		if reg == nil {
			return
		}
		v.attempts = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "newsroom_auth_attempts_total",
				Help: "Credential validations by outcome.",
			},
			[]string{"outcome"},
		)
		reg.MustRegister(v.attempts)
	}
}

func WithValidatorLogger(l *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

func NewValidator(store CredentialStore, offloader async.Offloader, opts ...ValidatorOption) *Validator {
	v := &Validator{
		store:     store,
		offloader: offloader,
		hasher:    password.NewHasher(),
		tracer:    noop.NewTracerProvider().Tracer(""),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the id of the user identified by c. Wrong passwords and
// unknown usernames both yield ErrInvalidCredentials; anything else is
// ErrUnexpected joined with its cause.
func (v *Validator) Validate(ctx context.Context, c Credentials) (uuid.UUID, error) {
	ctx, span := v.tracer.Start(ctx, "auth.validate_credentials")
	defer span.End()

	id, err := v.validate(ctx, c)

	outcome := attemptSuccess
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		outcome = attemptInvalid
	case err != nil:
		outcome = attemptError
		span.RecordError(err)
		span.SetStatus(codes.Error, "credential validation failed")
	}
	span.SetAttributes(attribute.String("auth.outcome", outcome))
	if v.attempts != nil {
		v.attempts.WithLabelValues(outcome).Inc()
	}
	if outcome != attemptSuccess {
		v.logger.DebugContext(ctx, "credential validation rejected",
			logger.Username(c.Username),
			slog.String("outcome", outcome),
			logger.Error(err),
			logger.Component("auth"),
		)
	}
	return id, err
}

func (v *Validator) validate(ctx context.Context, c Credentials) (uuid.UUID, error) {
	stored, err := v.store.FindByUsername(ctx, c.Username)
	found := err == nil
	switch {
	case errors.Is(err, ErrUserNotFound):
		stored = StoredCredential{PasswordHash: DummyHash}
	case err != nil:
		return uuid.Nil, errors.Join(ErrUnexpected, err)
	}

	verifyErr, err := async.Run(ctx, v.offloader, "password.verify", func() error {
		return v.hasher.Verify([]byte(c.Password.Expose()), stored.PasswordHash)
	})
	if err != nil {
		return uuid.Nil, errors.Join(ErrUnexpected, err)
	}

	switch {
	case !found:
		return uuid.Nil, ErrInvalidCredentials
	case errors.Is(verifyErr, password.ErrMismatch):
		return uuid.Nil, ErrInvalidCredentials
	case verifyErr != nil:
		return uuid.Nil, errors.Join(ErrUnexpected, verifyErr)
	}
	return stored.UserID, nil
}
