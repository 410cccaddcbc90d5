package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/controllers"
	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/middleware"
)

func runReportRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports", reportController.GetReport, authMW.AuthorizeAny(authz.ReportsView))
}

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard", dashboardController.GetDashboard, authMW.AuthorizeAny(authz.DashboardView))
}

func runErrorLogRouter(
	secureGroup *echo.Group,
	errorLogService services.ErrorLogServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	errorLogController := controllers.NewErrorLogController(errorLogService, logger)

	secureGroup.POST("/error-logs", errorLogController.RecordError, authMW.AuthorizeAny(authz.ErrorLogsCreate))
	secureGroup.GET("/error-logs", errorLogController.GetErrorLogs, authMW.AuthorizeAny(authz.ErrorLogsView))
}

func runTransferRouter(
	secureGroup *echo.Group,
	transferService services.TransferServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	transferController := controllers.NewTransferController(transferService, logger)

	transferGroup := secureGroup.Group("/transfer", authMW.AuthorizeAny(authz.TransferManage))
	transferGroup.GET("/templates/:entity", transferController.DownloadTemplate)
	transferGroup.GET("/export", transferController.Export)
	transferGroup.POST("/import/:entity", transferController.Import)
}

func runUserRouter(
	secureGroup *echo.Group,
	userService services.UserServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	userController := controllers.NewUserController(userService, logger)

	secureGroup.GET("/users/technicians", userController.GetTechnicians, authMW.AuthorizeAny(authz.UsersView))
}
