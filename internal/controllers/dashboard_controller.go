package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/utils"
)

const dashboardTimeoutSeconds = 15

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

func (ctrl *DashboardController) GetDashboard(c echo.Context) error {
	ctx, cancel := utils.ContextWithTimeout(c, dashboardTimeoutSeconds)
	defer cancel()

	res, err := ctrl.dashboardService.GetDashboard(ctx)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, "Panel de control", http.StatusOK)
}
