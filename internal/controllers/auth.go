package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/services"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

const refreshCookieName = "refreshToken"

type AuthController struct {
	authService     services.AuthServiceInterface
	refreshTokenTTL time.Duration
	logger          *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, refreshTokenTTL time.Duration, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService:     authService,
		refreshTokenTTL: refreshTokenTTL,
		logger:          logger,
	}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Ошибка при привязке данных", zap.Error(err))
		return utils.ErrorResponse(c, apperrors.NewBadRequestError("Solicitud inválida"), ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Неудачная попытка входа", zap.String("username", payload.Username), zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "Sesión iniciada", http.StatusOK)
}

// RefreshToken принимает токен из тела запроса, иначе из cookie.
func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	token := ctrl.refreshTokenFrom(c)
	if token == "" {
		return utils.ErrorResponse(c, apperrors.ErrUnauthorized, ctrl.logger)
	}

	res, err := ctrl.authService.RefreshTokens(c.Request().Context(), token)
	if err != nil {
		ctrl.clearRefreshCookie(c)
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctrl.setRefreshCookie(c, res.RefreshToken)
	return utils.SuccessResponse(c, res, "Tokens actualizados", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	token := ctrl.refreshTokenFrom(c)
	if err := ctrl.authService.Logout(c.Request().Context(), token); err != nil {
		ctrl.logger.Error("Ошибка при выходе", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctrl.clearRefreshCookie(c)
	return utils.SuccessResponse(c, nil, "Sesión cerrada", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	res, err := ctrl.authService.Me(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Perfil obtenido", http.StatusOK)
}

func (ctrl *AuthController) refreshTokenFrom(c echo.Context) string {
	var payload dto.RefreshTokenDTO
	// Пустое тело допустимо, поэтому ошибку привязки не считаем фатальной.
	_ = c.Bind(&payload)
	if payload.RefreshToken != "" {
		return payload.RefreshToken
	}
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (ctrl *AuthController) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ctrl.refreshTokenTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (ctrl *AuthController) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
