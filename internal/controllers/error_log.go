package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/services"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

// ErrorLogController принимает ошибки клиентского приложения и отдаёт журнал.
type ErrorLogController struct {
	errorLogService services.ErrorLogServiceInterface
	logger          *zap.Logger
}

func NewErrorLogController(service services.ErrorLogServiceInterface, logger *zap.Logger) *ErrorLogController {
	return &ErrorLogController{errorLogService: service, logger: logger}
}

func (c *ErrorLogController) RecordError(ctx echo.Context) error {
	var payload dto.CreateErrorLogDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Datos del error inválidos"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if payload.UserAgent == "" {
		payload.UserAgent = ctx.Request().UserAgent()
	}

	res, err := c.errorLogService.RecordClientError(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("RecordError: не удалось сохранить ошибку", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Error registrado", http.StatusCreated)
}

func (c *ErrorLogController) GetErrorLogs(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.errorLogService.GetErrorLogs(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Registro de errores", http.StatusOK, total)
}
