package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
)

func TestPermissionsForRole(t *testing.T) {
	admin := PermissionsForRole(maintenance.RoleAdmin)
	tech := PermissionsForRole(maintenance.RoleTechnician)

	for _, p := range technicianPermissions {
		assert.True(t, admin[p], p)
	}
	assert.True(t, tech[ServicesCreate])
	assert.False(t, tech[ServicesUpdate])
	assert.False(t, tech[ServicesAssign])
	assert.False(t, tech[DashboardTechnicians])
	assert.False(t, tech[TransferManage])
	assert.Empty(t, PermissionsForRole("invitado"))
}

func TestCanDo(t *testing.T) {
	tech := NewContext(&entities.User{ID: "u1", Role: maintenance.RoleTechnician})
	admin := NewContext(&entities.User{ID: "u2", Role: maintenance.RoleAdmin})

	assert.True(t, CanDo(ClientsCreate, tech))
	assert.False(t, CanDo(ClientsDelete, tech))
	assert.True(t, CanDo(ClientsDelete, admin))

	var nobody Context
	assert.False(t, CanDo(ClientsView, nobody))
}

func TestCanDo_ServiceAssignment(t *testing.T) {
	svc := &entities.Service{Technician: "Carlos Hernandez Valencia", AssignedTechnician: "Jonathan Valencia Quintal"}

	tech := NewContext(&entities.User{ID: "u1", Role: maintenance.RoleTechnician})
	tech.Permissions[ServicesUpdate] = true
	tech.Target = svc
	assert.False(t, CanDo(ServicesUpdate, tech))
	assert.True(t, CanDo(ServicesView, tech))

	admin := NewContext(&entities.User{ID: "u2", Role: maintenance.RoleAdmin})
	admin.Target = svc
	assert.True(t, CanDo(ServicesUpdate, admin))
}
