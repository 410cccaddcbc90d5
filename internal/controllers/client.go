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

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(service services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{
		clientService: service,
		logger:        logger,
	}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.clientService.GetClients(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetClients: ошибка при получении списка клиентов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de clientes", http.StatusOK, total)
}

func (c *ClientController) GetActiveClients(ctx echo.Context) error {
	res, err := c.clientService.GetActiveClients(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetActiveClients: ошибка", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Clientes activos", http.StatusOK)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.clientService.FindClient(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindClient: ошибка при поиске клиента", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Cliente encontrado", http.StatusOK)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	var payload dto.CreateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateClient: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Datos del cliente inválidos"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.CreateClient(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateClient: ошибка при создании клиента", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Cliente creado", http.StatusCreated)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateClient: ошибка привязки данных", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Datos del cliente inválidos"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.UpdateClient(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateClient: ошибка при обновлении клиента", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Cliente actualizado", http.StatusOK)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.clientService.DeleteClient(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteClient: ошибка при удалении клиента", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Cliente eliminado", http.StatusOK)
}
