package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsroom/pkg/async"
	"github.com/dmitrymomot/newsroom/pkg/password"
	"github.com/dmitrymomot/newsroom/pkg/secret"
)

var (
	fixtureOnce sync.Once
	fixtureHash string
)

const fixturePassword = "everything has to be verified"

func storedHash(t *testing.T) string {
	t.Helper()
	fixtureOnce.Do(func() {
		h, err := password.NewHasher().Hash([]byte(fixturePassword))
		if err != nil {
			panic(err)
		}
		fixtureHash = h
	})
	return fixtureHash
}

func TestDummyHashIsWellFormed(t *testing.T) {
	t.Parallel()

	err := password.NewHasher().Verify([]byte("not the dummy password"), DummyHash)
	assert.ErrorIs(t, err, password.ErrMismatch)
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").
			Return(StoredCredential{UserID: userID, PasswordHash: storedHash(t)}, nil)
		off := &recordingOffloader{}

		id, err := NewValidator(store, off).Validate(ctx, Credentials{Username: "admin", Password: secret.New(fixturePassword)})
		require.NoError(t, err)
		assert.Equal(t, userID, id)
		assert.Equal(t, []string{"password.verify"}, off.names())
		store.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").
			Return(StoredCredential{UserID: userID, PasswordHash: storedHash(t)}, nil)

		id, err := NewValidator(store, async.Inline{}).Validate(ctx, Credentials{Username: "admin", Password: secret.New("guess")})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.NotErrorIs(t, err, ErrUnexpected)
		assert.Equal(t, uuid.Nil, id)
	})

	t.Run("unknown user still verifies against the dummy hash", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "ghost").Return(StoredCredential{}, ErrUserNotFound)
		off := &recordingOffloader{}

		_, err := NewValidator(store, off).Validate(ctx, Credentials{Username: "ghost", Password: secret.New("whatever")})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, []string{"password.verify"}, off.names())
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "ghost").Return(StoredCredential{}, ErrUserNotFound)
		store.On("FindByUsername", mock.Anything, "admin").
			Return(StoredCredential{UserID: userID, PasswordHash: storedHash(t)}, nil)
		v := NewValidator(store, async.Inline{})

		_, errUnknown := v.Validate(ctx, Credentials{Username: "ghost", Password: secret.New("x")})
		_, errWrong := v.Validate(ctx, Credentials{Username: "admin", Password: secret.New("x")})
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").Return(StoredCredential{}, cause)
		off := &recordingOffloader{}

		_, err := NewValidator(store, off).Validate(ctx, Credentials{Username: "admin", Password: secret.New("x")})
		assert.ErrorIs(t, err, ErrUnexpected)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, off.names())
	})

	t.Run("malformed stored hash", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").
			Return(StoredCredential{UserID: userID, PasswordHash: "$2a$10$bcrypt"}, nil)

		_, err := NewValidator(store, async.Inline{}).Validate(ctx, Credentials{Username: "admin", Password: secret.New("x")})
		assert.ErrorIs(t, err, ErrUnexpected)
		assert.ErrorIs(t, err, password.ErrMalformedHash)
	})

	t.Run("offload failure", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").
			Return(StoredCredential{UserID: userID, PasswordHash: storedHash(t)}, nil)
		off := &recordingOffloader{err: async.ErrCancelled}

		_, err := NewValidator(store, off).Validate(ctx, Credentials{Username: "admin", Password: secret.New(fixturePassword)})
		assert.ErrorIs(t, err, ErrUnexpected)
		assert.ErrorIs(t, err, async.ErrCancelled)
	})

	t.Run("password never appears in errors", func(t *testing.T) {
		t.Parallel()

		store := &MockCredentialStore{}
		store.On("FindByUsername", mock.Anything, "admin").Return(StoredCredential{}, errors.New("db down"))

		_, err := NewValidator(store, async.Inline{}).Validate(ctx, Credentials{Username: "admin", Password: secret.New("hunter22hunter22")})
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "hunter22")
	})
}

func TestValidator_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	store := &MockCredentialStore{}
	store.On("FindByUsername", mock.Anything, "admin").
		Return(StoredCredential{UserID: uuid.New(), PasswordHash: storedHash(t)}, nil)
	store.On("FindByUsername", mock.Anything, "ghost").Return(StoredCredential{}, ErrUserNotFound)
	store.On("FindByUsername", mock.Anything, "broken").Return(StoredCredential{}, errors.New("boom"))

	v := NewValidator(store, async.Inline{}, WithValidatorRegisterer(reg))
	ctx := context.Background()
	_, _ = v.Validate(ctx, Credentials{Username: "admin", Password: secret.New(fixturePassword)})
	_, _ = v.Validate(ctx, Credentials{Username: "ghost", Password: secret.New("x")})
	_, _ = v.Validate(ctx, Credentials{Username: "broken", Password: secret.New("x")})

	expected := `
# HELP newsroom_auth_attempts_total Credential validations by outcome.
# TYPE newsroom_auth_attempts_total counter
newsroom_auth_attempts_total{outcome="error"} 1
newsroom_auth_attempts_total{outcome="invalid"} 1
newsroom_auth_attempts_total{outcome="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "newsroom_auth_attempts_total"))
}
