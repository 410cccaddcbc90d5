// Файл: internal/entities/user-entity.go
package entities

import "kaawa-maintenance/pkg/types"

type User struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"full_name" db:"full_name"`
	Role     string `json:"role" db:"role"`
	IsActive bool   `json:"is_active" db:"is_active"`

	Password string `json:"-" db:"password"`

	types.BaseEntity
}
