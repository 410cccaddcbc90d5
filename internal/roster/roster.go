package roster

import (
	"context"
	"strings"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
)

// Provider - источник пользователей: список техников для сводок и вход в систему.
type Provider interface {
	ListTechnicians(ctx context.Context) ([]entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

// TechnicianRoles - роли, попадающие в сводку по техникам.
var TechnicianRoles = []string{maintenance.RoleTechnician, maintenance.RoleAdmin}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
