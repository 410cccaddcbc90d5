package services

import (
	"sort"

	"github.com/aarondl/null/v8"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/pkg/utils"
)

func clientToDTO(c *entities.Client) dto.ClientDTO {
	return dto.ClientDTO{
		ID:        c.ID,
		Name:      c.Name,
		Contact:   c.Contact,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		IsActive:  c.IsActive,
		Zone:      c.Zone.String,
		Notes:     c.Notes,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
}

func equipmentToDTO(e *entities.Equipment, clients map[string]*entities.Client) dto.EquipmentDTO {
	clientName := ""
	if e.Client.Valid {
		clientName = maintenance.ClientName(clients, e.Client.String)
	}
	return dto.EquipmentDTO{
		ID:                e.ID,
		Type:              e.Type,
		Brand:             e.Brand,
		Model:             e.Model,
		Serial:            e.Serial,
		PurchaseDate:      utils.FormatNullDate(e.PurchaseDate, ""),
		InvoiceNumber:     e.InvoiceNumber,
		CurrentCondition:  e.CurrentCondition,
		CurrentStatus:     e.CurrentStatus,
		Status:            e.Status,
		ClientID:          e.Client.String,
		ClientName:        clientName,
		LastService:       utils.FormatNullDate(e.LastService, ""),
		LastServiceType:   e.LastServiceType.String,
		IsNewInstallation: e.IsNewInstallation,
		InstallationDate:  utils.FormatNullDate(e.InstallationDate, ""),
		Notes:             e.Notes,
		CreatedAt:         formatTimestamp(e.CreatedAt),
		UpdatedAt:         formatTimestamp(e.UpdatedAt),
	}
}

func partsToDTO(parts []entities.Part) []dto.PartDTO {
	out := make([]dto.PartDTO, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.PartDTO{Quantity: p.Quantity, Description: p.Description, UnitPrice: p.UnitPrice, IncludedInService: p.IncludedInService})
	}
	return out
}

func partsFromDTO(parts []dto.PartDTO) []entities.Part {
	out := make([]entities.Part, 0, len(parts))
	for _, p := range parts {
		out = append(out, entities.Part{Quantity: p.Quantity, Description: p.Description, UnitPrice: p.UnitPrice, IncludedInService: p.IncludedInService})
	}
	return out
}

func serviceToDTO(s *entities.Service, clients map[string]*entities.Client, equipment map[string]*entities.Equipment) dto.ServiceDTO {
	checklist := s.Checklist
	if checklist == nil {
		checklist = map[string]bool{}
	}
	return dto.ServiceDTO{
		ID:                  s.ID,
		Folio:               s.Folio,
		ClientID:            s.ClientID,
		ClientName:          maintenance.ClientName(clients, s.ClientID),
		EquipmentID:         s.EquipmentID,
		EquipmentLabel:      maintenance.EquipmentLabel(equipment, s.EquipmentID),
		Type:                s.Type,
		MachineType:         s.MachineType,
		DateStart:           s.DateStart.Format(utils.DateLayout),
		DateEnd:             utils.FormatNullDate(s.DateEnd, ""),
		Status:              s.Status,
		Checklist:           checklist,
		PartsUsed:           partsToDTO(s.PartsUsed),
		Description:         s.Description,
		NextServiceComments: s.NextServiceComments,
		Technician:          s.Technician,
		AssignedTechnician:  s.AssignedTechnician,
		CreatedAt:           formatTimestamp(s.CreatedAt),
		UpdatedAt:           formatTimestamp(s.UpdatedAt),
	}
}

// checklistItems: сначала пункты шаблона по порядку, затем прочие по алфавиту.
func checklistItems(machineType, serviceType string, checklist map[string]bool) []dto.ChecklistItemDTO {
	template := maintenance.ChecklistTemplate(machineType, serviceType)
	items := make([]dto.ChecklistItemDTO, 0, len(checklist))
	seen := make(map[string]bool, len(template))
	for _, label := range template {
		if done, ok := checklist[label]; ok {
			items = append(items, dto.ChecklistItemDTO{Label: label, Done: done})
			seen[label] = true
		}
	}
	var rest []string
	for label := range checklist {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	for _, label := range rest {
		items = append(items, dto.ChecklistItemDTO{Label: label, Done: checklist[label]})
	}
	return items
}

// nullString - пустая строка сохраняется как NULL.
func nullString(s string) null.String {
	return null.NewString(s, s != "")
}
