package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"kaawa-maintenance/pkg/types"
)

// Part - запчасть, использованная при обслуживании.
// JSON-ключи совпадают с форматом CSV-выгрузки.
type Part struct {
	Quantity          int     `json:"quantity"`
	Description       string  `json:"description"`
	UnitPrice         float64 `json:"price"`
	IncludedInService bool    `json:"included"`
}

// Service - визит технического обслуживания.
type Service struct {
	ID                  string          `json:"id" db:"id"`
	Folio               string          `json:"folio" db:"folio"`
	ClientID            string          `json:"client_id" db:"client_id"`
	EquipmentID         string          `json:"equipment_id" db:"equipment_id"`
	Type                string          `json:"type" db:"type"`
	MachineType         string          `json:"machine_type" db:"machine_type"`
	DateStart           time.Time       `json:"date_start" db:"date_start"`
	DateEnd             null.Time       `json:"date_end" db:"date_end"`
	Status              string          `json:"status" db:"status"`
	Checklist           map[string]bool `json:"checklist" db:"checklist"`
	PartsUsed           []Part          `json:"parts_used" db:"parts_used"`
	Description         string          `json:"description" db:"description"`
	NextServiceComments string          `json:"next_service_comments" db:"next_service_comments"`
	Technician          string          `json:"technician" db:"technician"`
	AssignedTechnician  string          `json:"assigned_technician" db:"assigned_technician"`

	types.BaseEntity
}

// ResolvedTechnician возвращает назначенного техника, иначе автора записи.
func (s *Service) ResolvedTechnician() string {
	if s.AssignedTechnician != "" {
		return s.AssignedTechnician
	}
	return s.Technician
}
