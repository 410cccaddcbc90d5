package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/roster"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/service"
	"kaawa-maintenance/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	users      roster.Provider
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, users roster.Provider, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		users:      users,
		logger:     logger,
	}
}

// Auth проверяет access-токен и кладёт в контекст пользователя с его правами.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		// Формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		user, err := m.users.FindByID(ctx, claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: пользователь токена не найден", zap.String("userID", claims.UserID), zap.Error(err))
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			return utils.ErrorResponse(c, err, m.logger)
		}
		if !user.IsActive {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithActor(ctx, user, authz.PermissionsForRole(user.Role))))
		m.logger.Debug("AuthMiddleware: Пользователь аутентифицирован", zap.String("userID", user.ID), zap.String("role", user.Role))
		return next(c)
	}
}

// AuthorizeAny пропускает запрос, если у пользователя есть хотя бы одно из прав.
func (m *AuthMiddleware) AuthorizeAny(permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			granted, err := utils.GetPermissionsMapFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			if granted[authz.Superuser] {
				return next(c)
			}
			for _, p := range permissions {
				if granted[p] {
					return next(c)
				}
			}
			m.logger.Warn("AuthorizeAny: недостаточно прав", zap.Strings("required", permissions))
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}
