package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/session"
)

func testSession(token string, ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		Token:     token,
		Data:      map[string]any{"user_id": "u-1"},
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create get update delete", func(t *testing.T) {
		t.Parallel()

		s := session.NewMemoryStore(0)
		defer s.Close()

		sess := testSession("tok", time.Hour)
		require.NoError(t, s.Create(ctx, sess))

		got, err := s.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.Data["user_id"])

		// Stored copies are isolated from callers.
		got.Data["user_id"] = "mutated"
		again, err := s.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, "u-1", again.Data["user_id"])

		got.Data["extra"] = true
		require.NoError(t, s.Update(ctx, got))
		again, err = s.Get(ctx, "tok")
		require.NoError(t, err)
		assert.Equal(t, true, again.Data["extra"])

		require.NoError(t, s.Delete(ctx, "tok"))
		_, err = s.Get(ctx, "tok")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		require.NoError(t, s.Delete(ctx, "tok"))
	})

	t.Run("invalid and unknown", func(t *testing.T) {
		t.Parallel()

		s := session.NewMemoryStore(0)
		defer s.Close()

		assert.ErrorIs(t, s.Create(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, s.Create(ctx, testSession("", time.Hour)), session.ErrInvalidSession)
		assert.ErrorIs(t, s.Update(ctx, testSession("missing", time.Hour)), session.ErrSessionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		s := session.NewMemoryStore(0)
		defer s.Close()

		require.NoError(t, s.Create(ctx, testSession("old", -time.Second)))
		_, err := s.Get(ctx, "old")
		assert.ErrorIs(t, err, session.ErrSessionExpired)
		assert.True(t, session.IsAbsent(err))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("background sweep", func(t *testing.T) {
		t.Parallel()

		s := session.NewMemoryStore(10 * time.Millisecond)
		defer s.Close()

		require.NoError(t, s.Create(ctx, testSession("old", -time.Second)))
		require.NoError(t, s.Create(ctx, testSession("live", time.Hour)))

		assert.Eventually(t, func() bool { return s.Len() == 1 }, time.Second, 10*time.Millisecond)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())
	})
}
