package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

// Clock - источник текущего времени, в тестах подменяется.
type Clock func() time.Time

// authContext собирает authz.Context из пользователя и прав в контексте запроса.
func authContext(ctx context.Context) (authz.Context, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return authz.Context{}, err
	}
	permissions, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return authz.Context{}, err
	}
	return authz.Context{Actor: actor, Permissions: permissions}, nil
}

// checkPermission проверяет права доступа
func checkPermission(ctx context.Context, logger *zap.Logger, permission string) (authz.Context, error) {
	authCtx, err := authContext(ctx)
	if err != nil {
		logger.Error("Пользователь не авторизован", zap.Error(err))
		return authz.Context{}, apperrors.ErrUnauthorized
	}
	if !authz.CanDo(permission, authCtx) {
		logger.Warn("Отказано в доступе", zap.String("userID", authCtx.Actor.ID), zap.String("permission", permission))
		return authCtx, apperrors.ErrForbidden
	}
	return authCtx, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
