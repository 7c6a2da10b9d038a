package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/newsroom/pkg/async"
)

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByUsername(ctx context.Context, username string) (StoredCredential, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(StoredCredential), args.Error(1)
}

func (m *MockCredentialStore) GetUsername(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialStore) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, c Credentials) (uuid.UUID, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockSessionHandle struct {
	mock.Mock
}

func (m *MockSessionHandle) Get(ctx context.Context, key string) (any, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Bool(1), args.Error(2)
}

func (m *MockSessionHandle) Insert(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSessionHandle) Renew(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionHandle) Purge(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// recordingOffloader runs tasks inline and remembers their names.
type recordingOffloader struct {
	mu    sync.Mutex
	tasks []string
	err   error
}

func (o *recordingOffloader) Do(ctx context.Context, name string, task func()) error {
	o.mu.Lock()
	o.tasks = append(o.tasks, name)
	o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	return async.Inline{}.Do(ctx, name, task)
}

func (o *recordingOffloader) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.tasks...)
}
