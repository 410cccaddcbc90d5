package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/controllers"
	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/middleware"
)

func runClientRouter(
	secureGroup *echo.Group,
	clientService services.ClientServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	clientCtrl := controllers.NewClientController(clientService, logger)

	secureGroup.GET("/clients", clientCtrl.GetClients, authMW.AuthorizeAny(authz.ClientsView))
	secureGroup.GET("/clients/active", clientCtrl.GetActiveClients, authMW.AuthorizeAny(authz.ClientsView))
	secureGroup.GET("/clients/:id", clientCtrl.FindClient, authMW.AuthorizeAny(authz.ClientsView))
	secureGroup.POST("/clients", clientCtrl.CreateClient, authMW.AuthorizeAny(authz.ClientsCreate))
	secureGroup.PUT("/clients/:id", clientCtrl.UpdateClient, authMW.AuthorizeAny(authz.ClientsUpdate))
	secureGroup.DELETE("/clients/:id", clientCtrl.DeleteClient, authMW.AuthorizeAny(authz.ClientsDelete))
}

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipment, authMW.AuthorizeAny(authz.EquipmentView))
	secureGroup.GET("/equipment/available", equipmentCtrl.GetAvailable, authMW.AuthorizeAny(authz.EquipmentView))
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment, authMW.AuthorizeAny(authz.EquipmentView))
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, authMW.AuthorizeAny(authz.EquipmentCreate))
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, authMW.AuthorizeAny(authz.EquipmentUpdate))
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, authMW.AuthorizeAny(authz.EquipmentDelete))
}

func runServiceRouter(
	secureGroup *echo.Group,
	maintenanceService services.MaintenanceServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	serviceCtrl := controllers.NewServiceVisitController(maintenanceService, logger)

	secureGroup.GET("/services", serviceCtrl.GetServices, authMW.AuthorizeAny(authz.ServicesView))
	secureGroup.GET("/services/:id", serviceCtrl.FindService, authMW.AuthorizeAny(authz.ServicesView))
	secureGroup.POST("/services", serviceCtrl.CreateService, authMW.AuthorizeAny(authz.ServicesCreate))
	secureGroup.PUT("/services/:id", serviceCtrl.UpdateService, authMW.AuthorizeAny(authz.ServicesUpdate))
	secureGroup.DELETE("/services/:id", serviceCtrl.DeleteService, authMW.AuthorizeAny(authz.ServicesDelete))

	secureGroup.GET("/checklists", serviceCtrl.ChecklistTemplate, authMW.AuthorizeAny(authz.ServicesView))
}
