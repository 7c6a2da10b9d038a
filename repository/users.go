package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/svc/auth"
)

var ErrUsernameTaken = errors.New("repository: username is already taken")

// Users stores credentials in the users table.
type Users struct {
	db DB
}

var _ auth.CredentialStore = (*Users)(nil)

func NewUsers(db DB) *Users {
	return &Users{db: db}
}

func (u *Users) FindByUsername(ctx context.Context, username string) (auth.StoredCredential, error) {
	var c auth.StoredCredential
	err := u.db.QueryRow(ctx,
		`SELECT user_id, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&c.UserID, &c.PasswordHash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return auth.StoredCredential{}, auth.ErrUserNotFound
		}
		return auth.StoredCredential{}, fmt.Errorf("find user by username: %w", err)
	}
	return c, nil
}

func (u *Users) GetUsername(ctx context.Context, userID uuid.UUID) (string, error) {
	var username string
	err := u.db.QueryRow(ctx, `SELECT username FROM users WHERE user_id = $1`, userID).Scan(&username)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return "", auth.ErrUserNotFound
		}
		return "", fmt.Errorf("get username: %w", err)
	}
	return username, nil
}

func (u *Users) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	tag, err := u.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE user_id = $2`, hash, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// Create inserts a user with an already computed password hash.
func (u *Users) Create(ctx context.Context, username, hash string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := u.db.Exec(ctx,
		`INSERT INTO users (user_id, username, password_hash) VALUES ($1, $2, $3)`,
		id, username, hash,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return uuid.Nil, ErrUsernameTaken
		}
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}
