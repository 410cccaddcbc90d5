package entities

import (
	"github.com/aarondl/null/v8"

	"kaawa-maintenance/pkg/types"
)

type Client struct {
	ID       string      `json:"id" db:"id"`
	Name     string      `json:"name" db:"name"`
	Contact  string      `json:"contact" db:"contact"`
	Phone    string      `json:"phone" db:"phone"`
	Email    string      `json:"email" db:"email"`
	Address  string      `json:"address" db:"address"`
	IsActive bool        `json:"is_active" db:"is_active"`
	Zone     null.String `json:"zone" db:"zone"`
	Notes    string      `json:"notes" db:"notes"`

	types.BaseEntity
}
