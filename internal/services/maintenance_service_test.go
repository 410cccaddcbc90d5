package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

func newMaintenanceService(s *store, folios ...string) MaintenanceServiceInterface {
	if len(folios) == 0 {
		folios = []string{"123456"}
	}
	return NewMaintenanceService(fakeServiceRepo{s}, fakeEquipmentRepo{s}, fakeClientRepo{s}, &seqFolios{values: folios}, zap.NewNop())
}

func preventiveVisit() dto.CreateServiceDTO {
	return dto.CreateServiceDTO{
		ClientID:    "c1",
		EquipmentID: "e1",
		Type:        maintenance.ServicePreventive,
		DateStart:   "2025-06-20",
		Checklist:   map[string]bool{"Limpieza de duchas": true, "Inventado": true},
		PartsUsed: []dto.PartDTO{
			{Quantity: 2, Description: "Empaque de grupo", UnitPrice: 5, IncludedInService: true},
			{Quantity: 1, Description: "Ducha", UnitPrice: 12.5},
		},
	}
}

func TestMaintenanceService_Create(t *testing.T) {
	s := seededStore()
	svc := newMaintenanceService(s)

	res, err := svc.CreateService(techCtx(), preventiveVisit())
	require.NoError(t, err)

	assert.Equal(t, "123456", res.Folio)
	assert.Equal(t, techName, res.Technician)
	assert.Equal(t, techName, res.AssignedTechnician)
	assert.Equal(t, maintenance.EquipmentCoffeeMachine, res.MachineType)
	assert.Equal(t, maintenance.ServiceStatusPending, res.Status)
	assert.Equal(t, "Cafetería El Grano", res.ClientName)
	assert.Equal(t, "La Marzocco Linea Mini (LM001)", res.EquipmentLabel)
	assert.Equal(t, "2025-06-20", res.DateStart)

	template := maintenance.ChecklistTemplate(maintenance.EquipmentCoffeeMachine, maintenance.ServicePreventive)
	assert.Len(t, res.Checklist, len(template))
	assert.True(t, res.Checklist["Limpieza de duchas"])
	assert.NotContains(t, res.Checklist, "Inventado")
	require.Len(t, res.ChecklistItems, len(template))
	assert.Equal(t, template[0], res.ChecklistItems[0].Label)

	assert.InDelta(t, 22.5, res.Totals.Total, 0.001)
	assert.InDelta(t, 12.5, res.Totals.Extras, 0.001)
	assert.Len(t, s.services, 1)
}

func TestMaintenanceService_CreateRejectsForeignOrUnavailableEquipment(t *testing.T) {
	s := seededStore()
	svc := newMaintenanceService(s)

	foreign := preventiveVisit()
	foreign.EquipmentID = "e2"
	_, err := svc.CreateService(techCtx(), foreign)
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotForClient)

	// Статус "no disponible" встречается только в старых строках БД.
	legacy := s.equipment["e3"]
	legacy.Status = maintenance.StatusUnavailable
	s.equipment["e3"] = legacy

	unavailable := preventiveVisit()
	unavailable.EquipmentID = "e3"
	_, err = svc.CreateService(techCtx(), unavailable)
	assert.ErrorIs(t, err, apperrors.ErrEquipmentUnavailable)

	missing := preventiveVisit()
	missing.EquipmentID = "nope"
	_, err = svc.CreateService(techCtx(), missing)
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Empty(t, s.services)
}

func TestMaintenanceService_FolioRetry(t *testing.T) {
	s := seededStore()
	s.services["old"] = entities.Service{ID: "old", Folio: "111111", ClientID: "c1", EquipmentID: "e1"}

	res, err := newMaintenanceService(s, "111111", "111111", "222222").CreateService(techCtx(), preventiveVisit())
	require.NoError(t, err)
	assert.Equal(t, "222222", res.Folio)

	_, err = newMaintenanceService(s, "111111").CreateService(techCtx(), preventiveVisit())
	assert.ErrorIs(t, err, apperrors.ErrFolioExhausted)
}

func TestMaintenanceService_Assignment(t *testing.T) {
	s := seededStore()
	svc := newMaintenanceService(s, "100001", "100002")

	payload := preventiveVisit()
	payload.AssignedTechnician = adminName
	_, err := svc.CreateService(techCtx(), payload)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	payload.AssignedTechnician = techName
	res, err := svc.CreateService(adminCtx(), payload)
	require.NoError(t, err)
	assert.Equal(t, adminName, res.Technician)
	assert.Equal(t, techName, res.AssignedTechnician)
}

func TestMaintenanceService_Update(t *testing.T) {
	s := seededStore()
	svc := newMaintenanceService(s)
	created, err := svc.CreateService(techCtx(), preventiveVisit())
	require.NoError(t, err)

	_, err = svc.UpdateService(techCtx(), created.ID, dto.UpdateServiceDTO{Status: utils.ToPtr(maintenance.ServiceStatusCompleted)})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Без смены типа отметки сохраняются.
	res, err := svc.UpdateService(adminCtx(), created.ID, dto.UpdateServiceDTO{
		Status:    utils.ToPtr(maintenance.ServiceStatusInProgress),
		Checklist: map[string]bool{"Limpieza exterior": true},
	})
	require.NoError(t, err)
	assert.True(t, res.Checklist["Limpieza de duchas"])
	assert.True(t, res.Checklist["Limpieza exterior"])
	assert.Equal(t, created.Folio, res.Folio)

	// Смена типа сбрасывает прогресс.
	res, err = svc.UpdateService(adminCtx(), created.ID, dto.UpdateServiceDTO{
		Type:               utils.ToPtr(maintenance.ServiceGeneral),
		AssignedTechnician: utils.ToPtr(adminName),
		DateEnd:            utils.ToPtr("2025-06-21"),
	})
	require.NoError(t, err)
	assert.Len(t, res.Checklist, len(maintenance.ChecklistTemplate(maintenance.EquipmentCoffeeMachine, maintenance.ServiceGeneral)))
	for _, done := range res.Checklist {
		assert.False(t, done)
	}
	assert.Equal(t, adminName, res.AssignedTechnician)
	assert.Equal(t, techName, res.Technician)
	assert.Equal(t, "2025-06-21", res.DateEnd)

	_, err = svc.UpdateService(adminCtx(), created.ID, dto.UpdateServiceDTO{EquipmentID: utils.ToPtr("e2")})
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotForClient)
}

func TestMaintenanceService_DeleteAndTemplate(t *testing.T) {
	s := seededStore()
	svc := newMaintenanceService(s)
	created, err := svc.CreateService(techCtx(), preventiveVisit())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteService(techCtx(), created.ID), apperrors.ErrForbidden)
	require.NoError(t, svc.DeleteService(adminCtx(), created.ID))
	assert.ErrorIs(t, svc.DeleteService(adminCtx(), created.ID), apperrors.ErrNotFound)

	tpl, err := svc.ChecklistTemplate(techCtx(), maintenance.EquipmentGrinder, maintenance.ServiceReconstruction)
	require.NoError(t, err)
	assert.Len(t, tpl.Items, 5)

	tpl, err = svc.ChecklistTemplate(techCtx(), maintenance.EquipmentOther, maintenance.ServicePreventive)
	require.NoError(t, err)
	assert.Empty(t, tpl.Items)
}
