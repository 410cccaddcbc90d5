package dto

import "kaawa-maintenance/internal/maintenance"

type PartDTO struct {
	Quantity          int     `json:"quantity" validate:"gte=1"`
	Description       string  `json:"description" validate:"required,max=300"`
	UnitPrice         float64 `json:"price" validate:"gte=0"`
	IncludedInService bool    `json:"included"`
}

type CreateServiceDTO struct {
	ClientID            string          `json:"client_id" validate:"required"`
	EquipmentID         string          `json:"equipment_id" validate:"required"`
	Type                string          `json:"type" validate:"required,service_type"`
	DateStart           string          `json:"date_start" validate:"required,iso_date"`
	DateEnd             string          `json:"date_end" validate:"omitempty,iso_date"`
	Status              string          `json:"status" validate:"omitempty,service_status"`
	Checklist           map[string]bool `json:"checklist"`
	PartsUsed           []PartDTO       `json:"parts_used" validate:"omitempty,dive"`
	Description         string          `json:"description"`
	NextServiceComments string          `json:"next_service_comments"`
	AssignedTechnician  string          `json:"assigned_technician" validate:"omitempty,max=200"`
}

// UpdateServiceDTO: folio и автор визита не меняются.
type UpdateServiceDTO struct {
	ClientID            *string         `json:"client_id,omitempty" validate:"omitempty,min=1"`
	EquipmentID         *string         `json:"equipment_id,omitempty" validate:"omitempty,min=1"`
	Type                *string         `json:"type,omitempty" validate:"omitempty,service_type"`
	DateStart           *string         `json:"date_start,omitempty" validate:"omitempty,iso_date"`
	DateEnd             *string         `json:"date_end,omitempty" validate:"omitempty,iso_date"`
	Status              *string         `json:"status,omitempty" validate:"omitempty,service_status"`
	Checklist           map[string]bool `json:"checklist,omitempty"`
	PartsUsed           *[]PartDTO      `json:"parts_used,omitempty" validate:"omitempty,dive"`
	Description         *string         `json:"description,omitempty"`
	NextServiceComments *string         `json:"next_service_comments,omitempty"`
	AssignedTechnician  *string         `json:"assigned_technician,omitempty" validate:"omitempty,max=200"`
}

type ServiceDTO struct {
	ID                  string          `json:"id"`
	Folio               string          `json:"folio"`
	ClientID            string          `json:"client_id"`
	ClientName          string          `json:"client_name"`
	EquipmentID         string          `json:"equipment_id"`
	EquipmentLabel      string          `json:"equipment_label"`
	Type                string          `json:"type"`
	MachineType         string          `json:"machine_type"`
	DateStart           string          `json:"date_start"`
	DateEnd             string          `json:"date_end"`
	Status              string          `json:"status"`
	Checklist           map[string]bool `json:"checklist"`
	PartsUsed           []PartDTO       `json:"parts_used"`
	Description         string          `json:"description"`
	NextServiceComments string          `json:"next_service_comments"`
	Technician          string          `json:"technician"`
	AssignedTechnician  string          `json:"assigned_technician"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

// ChecklistItemDTO - пункт в порядке шаблона.
type ChecklistItemDTO struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

type ServiceDetailDTO struct {
	ServiceDTO
	ChecklistItems []ChecklistItemDTO      `json:"checklist_items"`
	Totals         maintenance.PartsTotals `json:"totals"`
}

type ChecklistTemplateDTO struct {
	EquipmentType string   `json:"equipment_type"`
	ServiceType   string   `json:"service_type"`
	Items         []string `json:"items"`
}
