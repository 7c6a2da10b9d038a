package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsroom/pkg/async"
	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/password"
	"github.com/dmitrymomot/newsroom/pkg/secret"
)

const (
	MinPasswordLength = 12
	MaxPasswordLength = 128
)

// Outcome is the user-facing result of a password change.
type Outcome int

const (
	OutcomeChanged Outcome = iota
	OutcomePasswordsMismatch
	OutcomeInvalidLength
	OutcomeWrongCurrentPassword
)

// Message is the flash text shown for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeChanged:
		return "Your password has been changed."
	case OutcomePasswordsMismatch:
		return "You entered two different new passwords - the field values must match."
	case OutcomeInvalidLength:
		return "New password length must be at least 12 and at most 128 characters."
	case OutcomeWrongCurrentPassword:
		return "The current password is incorrect."
	}
	return ""
}

type PasswordChangeRequest struct {
	CurrentPassword  secret.String `form:"current_password"`
	NewPassword      secret.String `form:"new_password"`
	NewPasswordCheck secret.String `form:"new_password_check"`
}

// PasswordChanger re-verifies the current password before storing a new hash.
type PasswordChanger struct {
	validator CredentialValidator
	store     CredentialStore
	offloader async.Offloader
	hasher    password.Hasher
	logger    *slog.Logger
}

type PasswordChangerOption func(*PasswordChanger)

func WithPasswordChangerLogger(l *slog.Logger) PasswordChangerOption {
	return func(p *PasswordChanger) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPasswordChanger(validator CredentialValidator, store CredentialStore, offloader async.Offloader, opts ...PasswordChangerOption) *PasswordChanger {
	p := &PasswordChanger{
		validator: validator,
		store:     store,
		offloader: offloader,
		hasher:    password.NewHasher(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type hashResult struct {
	hash string
	err  error
}

// ChangePassword returns a rejection outcome with a nil error when the
// request fails a check. Once the new hash is computed, persisting it and
// calling purge run detached from ctx cancellation. A purge failure after a
// successful persist is logged and still reported as OutcomeChanged.
func (p *PasswordChanger) ChangePassword(ctx context.Context, userID uuid.UUID, req PasswordChangeRequest, purge func(context.Context) error) (Outcome, error) {
	newPassword := req.NewPassword.Expose()
	if newPassword != req.NewPasswordCheck.Expose() {
		return OutcomePasswordsMismatch, nil
	}
	if n := utf8.RuneCountInString(newPassword); n < MinPasswordLength || n > MaxPasswordLength {
		return OutcomeInvalidLength, nil
	}

	username, err := p.store.GetUsername(ctx, userID)
	if err != nil {
		return 0, errors.Join(ErrUnexpected, err)
	}
	if _, err := p.validator.Validate(ctx, Credentials{Username: username, Password: req.CurrentPassword}); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return OutcomeWrongCurrentPassword, nil
		}
		return 0, err
	}

	res, err := async.Run(ctx, p.offloader, "password.hash", func() hashResult {
		h, err := p.hasher.Hash([]byte(newPassword))
		return hashResult{hash: h, err: err}
	})
	if err != nil {
		return 0, errors.Join(ErrUnexpected, err)
	}
	if res.err != nil {
		return 0, errors.Join(ErrUnexpected, res.err)
	}

	detached := context.WithoutCancel(ctx)
	if err := p.store.UpdatePasswordHash(detached, userID, res.hash); err != nil {
		return 0, errors.Join(ErrUnexpected, err)
	}
	if purge != nil {
		if err := purge(detached); err != nil {
			p.logger.ErrorContext(detached, "failed to purge session after password change",
				logger.UserID(userID),
				logger.Error(err),
				logger.Component("password_change"),
			)
		}
	}

	p.logger.InfoContext(detached, "password changed",
		logger.UserID(userID),
		logger.Component("password_change"),
	)
	return OutcomeChanged, nil
}
