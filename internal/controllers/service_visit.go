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

// ServiceVisitController - визиты обслуживания и шаблоны чек-листов.
type ServiceVisitController struct {
	maintenanceService services.MaintenanceServiceInterface
	logger             *zap.Logger
}

func NewServiceVisitController(service services.MaintenanceServiceInterface, logger *zap.Logger) *ServiceVisitController {
	return &ServiceVisitController{
		maintenanceService: service,
		logger:             logger,
	}
}

func (c *ServiceVisitController) GetServices(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.maintenanceService.GetServices(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetServices: ошибка при получении списка визитов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de servicios", http.StatusOK, total)
}

func (c *ServiceVisitController) FindService(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.maintenanceService.FindService(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindService: ошибка при поиске визита", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Servicio encontrado", http.StatusOK)
}

func (c *ServiceVisitController) CreateService(ctx echo.Context) error {
	var payload dto.CreateServiceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateService: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Datos del servicio inválidos"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.CreateService(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateService: ошибка при создании визита", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Servicio creado", http.StatusCreated)
}

func (c *ServiceVisitController) UpdateService(ctx echo.Context) error {
	id := ctx.Param("id")
	var payload dto.UpdateServiceDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateService: ошибка привязки данных", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Datos del servicio inválidos"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.UpdateService(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateService: ошибка при обновлении визита", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Servicio actualizado", http.StatusOK)
}

func (c *ServiceVisitController) DeleteService(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.maintenanceService.DeleteService(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteService: ошибка при удалении визита", zap.String("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Servicio eliminado", http.StatusOK)
}

func (c *ServiceVisitController) ChecklistTemplate(ctx echo.Context) error {
	equipmentType := ctx.QueryParam("equipment_type")
	serviceType := ctx.QueryParam("service_type")

	res, err := c.maintenanceService.ChecklistTemplate(ctx.Request().Context(), equipmentType, serviceType)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Plantilla de checklist", http.StatusOK)
}
