package newsletter

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/newsroom/pkg/email"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateSubscription(ctx context.Context, sub Subscription, token string) error {
	return m.Called(ctx, sub, token).Error(0)
}

func (m *MockStore) ConfirmSubscription(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockStore) ConfirmedSubscriberEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]string)
	return emails, args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	return m.Called(ctx, params).Error(0)
}
