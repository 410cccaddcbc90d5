package entities

import (
	"github.com/aarondl/null/v8"

	"kaawa-maintenance/pkg/types"
)

// Equipment.Status всегда выводится из Client через maintenance.DeriveStatus.
type Equipment struct {
	ID                string      `json:"id" db:"id"`
	Type              string      `json:"type" db:"type"`
	Brand             string      `json:"brand" db:"brand"`
	Model             string      `json:"model" db:"model"`
	Serial            string      `json:"serial" db:"serial"`
	PurchaseDate      null.Time   `json:"purchase_date" db:"purchase_date"`
	InvoiceNumber     string      `json:"invoice_number" db:"invoice_number"`
	CurrentCondition  string      `json:"current_condition" db:"current_condition"`
	CurrentStatus     string      `json:"current_status" db:"current_status"`
	Status            string      `json:"status" db:"status"`
	Client            null.String `json:"client" db:"client_id"`
	LastService       null.Time   `json:"last_service" db:"last_service"`
	LastServiceType   null.String `json:"last_service_type" db:"last_service_type"`
	IsNewInstallation bool        `json:"is_new_installation" db:"is_new_installation"`
	InstallationDate  null.Time   `json:"installation_date" db:"installation_date"`
	Notes             string      `json:"notes" db:"notes"`

	types.BaseEntity
}
