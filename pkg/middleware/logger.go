package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/pkg/utils"
)

// RequestLogger пишет одну строку на запрос.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
			}
			// Auth подменяет запрос, поэтому пользователь виден уже после next.
			if userID, idErr := utils.GetUserIDFromCtx(req.Context()); idErr == nil {
				fields = append(fields, zap.String("user_id", userID))
			}
			logger.Info("HTTP", fields...)
			return nil
		}
	}
}
