package dto

type CreateEquipmentDTO struct {
	Type              string `json:"type" validate:"required,equipment_type"`
	Brand             string `json:"brand" validate:"required,max=100"`
	Model             string `json:"model" validate:"required,max=100"`
	Serial            string `json:"serial" validate:"omitempty,max=100"`
	PurchaseDate      string `json:"purchase_date" validate:"omitempty,iso_date"`
	InvoiceNumber     string `json:"invoice_number" validate:"omitempty,max=100"`
	CurrentCondition  string `json:"current_condition"`
	CurrentStatus     string `json:"current_status" validate:"omitempty,equipment_condition"`
	ClientID          string `json:"client"`
	LastService       string `json:"last_service" validate:"omitempty,iso_date"`
	LastServiceType   string `json:"last_service_type" validate:"omitempty,last_service_type"`
	IsNewInstallation bool   `json:"is_new_installation"`
	InstallationDate  string `json:"installation_date" validate:"omitempty,iso_date"`
	Notes             string `json:"notes"`
}

// UpdateEquipmentDTO: пустая строка в nullable-поле очищает его.
type UpdateEquipmentDTO struct {
	Type              *string `json:"type,omitempty" validate:"omitempty,equipment_type"`
	Brand             *string `json:"brand,omitempty" validate:"omitempty,min=1,max=100"`
	Model             *string `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Serial            *string `json:"serial,omitempty" validate:"omitempty,max=100"`
	PurchaseDate      *string `json:"purchase_date,omitempty" validate:"omitempty,iso_date"`
	InvoiceNumber     *string `json:"invoice_number,omitempty" validate:"omitempty,max=100"`
	CurrentCondition  *string `json:"current_condition,omitempty"`
	CurrentStatus     *string `json:"current_status,omitempty" validate:"omitempty,equipment_condition"`
	ClientID          *string `json:"client,omitempty"`
	LastService       *string `json:"last_service,omitempty" validate:"omitempty,iso_date"`
	LastServiceType   *string `json:"last_service_type,omitempty" validate:"omitempty,last_service_type"`
	IsNewInstallation *bool   `json:"is_new_installation,omitempty"`
	InstallationDate  *string `json:"installation_date,omitempty" validate:"omitempty,iso_date"`
	Notes             *string `json:"notes,omitempty"`
}

type EquipmentDTO struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	Serial            string `json:"serial"`
	PurchaseDate      string `json:"purchase_date"`
	InvoiceNumber     string `json:"invoice_number"`
	CurrentCondition  string `json:"current_condition"`
	CurrentStatus     string `json:"current_status"`
	Status            string `json:"status"`
	ClientID          string `json:"client"`
	ClientName        string `json:"client_name"`
	LastService       string `json:"last_service"`
	LastServiceType   string `json:"last_service_type"`
	IsNewInstallation bool   `json:"is_new_installation"`
	InstallationDate  string `json:"installation_date"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

type EquipmentDetailDTO struct {
	EquipmentDTO
	Services []ServiceDTO `json:"services"`
}

type ShortEquipmentDTO struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	Status string `json:"status"`
}
