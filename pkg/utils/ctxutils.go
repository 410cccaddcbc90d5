// pkg/utils/ctxutils.go

package utils

import (
	"context"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/pkg/contextkeys"
	apperrors "kaawa-maintenance/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetActorFromCtx(ctx context.Context) (*entities.User, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(*entities.User)
	if !ok || actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return actor, nil
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	permissions, ok := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	if !ok || permissions == nil {
		return nil, apperrors.ErrForbidden
	}
	return permissions, nil
}

// WithActor кладёт в контекст ID пользователя, самого пользователя и его права.
func WithActor(ctx context.Context, actor *entities.User, permissions map[string]bool) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, actor.ID)
	ctx = context.WithValue(ctx, contextkeys.ActorKey, actor)
	return context.WithValue(ctx, contextkeys.UserPermissionsMapKey, permissions)
}
