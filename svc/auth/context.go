package auth

import (
	"context"

	"github.com/google/uuid"
)

type userIDContextKey struct{}

// WithUserID stores the authenticated user id for downstream handlers.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, id)
}

// UserIDFromContext returns the id placed by RequireLogin.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDContextKey{}).(uuid.UUID)
	return id, ok
}
