package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/svc/newsletter"
)

// Subscriptions stores subscriptions and their confirmation tokens.
type Subscriptions struct {
	db DB
}

var _ newsletter.Store = (*Subscriptions)(nil)

func NewSubscriptions(db DB) *Subscriptions {
	return &Subscriptions{db: db}
}

// CreateSubscription inserts the subscription and its token in one transaction.
func (s *Subscriptions) CreateSubscription(ctx context.Context, sub newsletter.Subscription, token string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO subscriptions (id, email, name, subscribed_at, status) VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.Email, sub.Name, sub.SubscribedAt, string(sub.Status),
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return newsletter.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO subscription_tokens (subscription_token, subscriber_id) VALUES ($1, $2)`,
		token, sub.ID,
	)
	if err != nil {
		return fmt.Errorf("insert subscription token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Subscriptions) ConfirmSubscription(ctx context.Context, token string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`UPDATE subscriptions SET status = $1
		FROM subscription_tokens t
		WHERE t.subscriber_id = subscriptions.id AND t.subscription_token = $2
		RETURNING subscriptions.id`,
		string(newsletter.StatusConfirmed), token,
	).Scan(&id)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return uuid.Nil, newsletter.ErrTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("confirm subscription: %w", err)
	}
	return id, nil
}

func (s *Subscriptions) ConfirmedSubscriberEmails(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT email FROM subscriptions WHERE status = $1 ORDER BY subscribed_at`,
		string(newsletter.StatusConfirmed),
	)
	if err != nil {
		return nil, fmt.Errorf("list confirmed subscribers: %w", err)
	}

	emails, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan confirmed subscribers: %w", err)
	}
	return emails, nil
}
