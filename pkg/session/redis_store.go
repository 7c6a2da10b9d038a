package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions as JSON values with a TTL matching their expiry.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix changes the key prefix (default "session:").
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	data, ttl, err := encode(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(session.Token), data, ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStore, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Join(ErrStore, err)
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	if session.Data == nil {
		session.Data = make(map[string]any)
	}
	return &session, nil
}

func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	data, ttl, err := encode(session)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, s.key(session.Token), data, ttl).Result()
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func encode(session *Session) ([]byte, time.Duration, error) {
	if session == nil || session.Token == "" {
		return nil, 0, ErrInvalidSession
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil, 0, ErrSessionExpired
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, 0, errors.Join(ErrStore, err)
	}
	return data, ttl, nil
}
