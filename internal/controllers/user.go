package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func (c *UserController) GetTechnicians(ctx echo.Context) error {
	res, err := c.userService.GetTechnicians(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetTechnicians: ошибка", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de técnicos", http.StatusOK)
}
