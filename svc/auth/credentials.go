package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsroom/pkg/secret"
)

// Credentials is what a client presents on login or per API request.
type Credentials struct {
	Username string
	Password secret.String
}

// StoredCredential is the persisted side of a user's password.
type StoredCredential struct {
	UserID       uuid.UUID
	PasswordHash string
}

// CredentialStore is the account storage the auth flows depend on.
type CredentialStore interface {
	// FindByUsername returns ErrUserNotFound for unknown usernames.
	FindByUsername(ctx context.Context, username string) (StoredCredential, error)
	GetUsername(ctx context.Context, userID uuid.UUID) (string, error)
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error
}
