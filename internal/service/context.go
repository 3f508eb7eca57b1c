package service

import (
	"context"

	"shopflow/internal/models"
	"shopflow/internal/repository"

	"github.com/google/uuid"
)

type ctxKey string

const ctxUserIDKey ctxKey = "userID"

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(uuid.UUID)
	return v, ok
}

// currentUser resolves the caller from the context and loads the live user
// row. The role is taken from the row, never from token claims, so a role
// change applies on the very next request.
func currentUser(ctx context.Context, users repository.UserRepo) (*models.User, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	u, err := users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}

func requireAdmin(ctx context.Context, users repository.UserRepo) (*models.User, error) {
	u, err := currentUser(ctx, users)
	if err != nil {
		return nil, err
	}
	if u.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return u, nil
}
