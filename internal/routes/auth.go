package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/controllers"
	"kaawa-maintenance/internal/services"
)

func runAuthRouter(
	api *echo.Group,
	secureGroup *echo.Group,
	authService services.AuthServiceInterface,
	refreshTokenTTL time.Duration,
	logger *zap.Logger,
) {
	authCtrl := controllers.NewAuthController(authService, refreshTokenTTL, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh_token", authCtrl.RefreshToken)
		authGroup.POST("/logout", authCtrl.Logout)
	}
	secureGroup.GET("/auth/me", authCtrl.Me)
}
