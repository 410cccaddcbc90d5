// internal/authz/permissions.go
package authz

import "kaawa-maintenance/internal/maintenance"

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Клиенты
	ClientsCreate = "clients:create"
	ClientsView   = "clients:view"
	ClientsUpdate = "clients:update"
	ClientsDelete = "clients:delete"

	// Оборудование
	EquipmentCreate = "equipment:create"
	EquipmentView   = "equipment:view"
	EquipmentUpdate = "equipment:update"
	EquipmentDelete = "equipment:delete"

	// Визиты обслуживания
	ServicesCreate = "services:create"
	ServicesView   = "services:view"
	ServicesUpdate = "services:update"
	ServicesDelete = "services:delete"
	ServicesAssign = "services:assign"

	// Панель и отчёты
	DashboardView        = "dashboard:view"
	DashboardTechnicians = "dashboard:technicians"
	ReportsView          = "reports:view"

	// Журнал ошибок
	ErrorLogsCreate = "errorlogs:create"
	ErrorLogsView   = "errorlogs:view"

	// Загрузка и выгрузка данных
	TransferManage = "transfer:manage"

	// Пользователи
	UsersView = "users:view"
)

var technicianPermissions = []string{
	ClientsView, ClientsCreate,
	EquipmentView, EquipmentCreate,
	ServicesView, ServicesCreate,
	DashboardView,
	ReportsView,
	ErrorLogsCreate,
}

var adminPermissions = []string{
	Superuser,
	ClientsView, ClientsCreate, ClientsUpdate, ClientsDelete,
	EquipmentView, EquipmentCreate, EquipmentUpdate, EquipmentDelete,
	ServicesView, ServicesCreate, ServicesUpdate, ServicesDelete, ServicesAssign,
	DashboardView, DashboardTechnicians,
	ReportsView,
	ErrorLogsCreate, ErrorLogsView,
	TransferManage,
	UsersView,
}

// PermissionsForRole возвращает набор прав роли. Неизвестная роль - пустой набор.
func PermissionsForRole(role string) map[string]bool {
	var list []string
	switch role {
	case maintenance.RoleAdmin:
		list = adminPermissions
	case maintenance.RoleTechnician:
		list = technicianPermissions
	}
	perms := make(map[string]bool, len(list))
	for _, p := range list {
		perms[p] = true
	}
	return perms
}
