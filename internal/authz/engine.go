package authz

import (
	"strings"

	"kaawa-maintenance/internal/entities"
)

type Context struct {
	Actor             *entities.User
	Permissions       map[string]bool
	Target            interface{}
	CurrentPermission string
}

func NewContext(actor *entities.User) Context {
	ctx := Context{Actor: actor}
	if actor != nil {
		ctx.Permissions = PermissionsForRole(actor.Role)
	}
	return ctx
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

func getAction(permission string) string {
	parts := strings.Split(permission, ":")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// canAccessService - смену техника у визита разрешает только отдельное право.
func canAccessService(ctx Context, target *entities.Service) bool {
	if getAction(ctx.CurrentPermission) == "view" {
		return true
	}
	if ctx.HasPermission(Superuser) {
		return true
	}
	if target.AssignedTechnician != "" && target.AssignedTechnician != target.Technician {
		return ctx.HasPermission(ServicesAssign)
	}
	return true
}

func CanDo(permission string, ctx Context) bool {
	// 1. Фиксация права
	ctx.CurrentPermission = permission

	// 2. Есть ли право вообще (RBAC)
	if !ctx.HasPermission(permission) {
		return false
	}

	// 3. Без цели - разрешено (например создание)
	if ctx.Target == nil {
		return true
	}

	// 4. Проверка цели
	switch target := ctx.Target.(type) {
	case *entities.Service:
		return canAccessService(ctx, target)
	}

	return true
}
