package utils

import (
	"context"

	"profico-inventory/internal/authz"
	"profico-inventory/pkg/contextkeys"
	apperrors "profico-inventory/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (authz.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(authz.Role)
	if !ok {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}

// WithActor кладёт идентичность и роль в контекст. Используется auth
// middleware и тестами сервисов.
func WithActor(ctx context.Context, userID uint64, role authz.Role) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}
