package services

import (
	"context"
	"errors"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
	"kaawa-maintenance/pkg/utils"
)

// maxFolioAttempts - сколько раз генерировать фолио при коллизии.
const maxFolioAttempts = 10

type MaintenanceServiceInterface interface {
	GetServices(ctx context.Context, filter types.Filter) ([]dto.ServiceDTO, uint64, error)
	FindService(ctx context.Context, id string) (*dto.ServiceDetailDTO, error)
	CreateService(ctx context.Context, payload dto.CreateServiceDTO) (*dto.ServiceDetailDTO, error)
	UpdateService(ctx context.Context, id string, payload dto.UpdateServiceDTO) (*dto.ServiceDetailDTO, error)
	DeleteService(ctx context.Context, id string) error
	ChecklistTemplate(ctx context.Context, equipmentType, serviceType string) (*dto.ChecklistTemplateDTO, error)
}

type MaintenanceService struct {
	serviceRepo   repositories.ServiceRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	clientRepo    repositories.ClientRepositoryInterface
	folios        maintenance.FolioGenerator
	logger        *zap.Logger
}

func NewMaintenanceService(
	serviceRepo repositories.ServiceRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	folios maintenance.FolioGenerator,
	logger *zap.Logger,
) MaintenanceServiceInterface {
	return &MaintenanceService{
		serviceRepo:   serviceRepo,
		equipmentRepo: equipmentRepo,
		clientRepo:    clientRepo,
		folios:        folios,
		logger:        logger,
	}
}

func (s *MaintenanceService) indexes(ctx context.Context) (map[string]*entities.Client, map[string]*entities.Equipment, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	equipment, err := s.equipmentRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return maintenance.IndexClients(clients), maintenance.IndexEquipment(equipment), nil
}

func (s *MaintenanceService) GetServices(ctx context.Context, filter types.Filter) ([]dto.ServiceDTO, uint64, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ServicesView); err != nil {
		return nil, 0, err
	}
	services, total, err := s.serviceRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	clients, equipment, err := s.indexes(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ServiceDTO, 0, len(services))
	for i := range services {
		out = append(out, serviceToDTO(&services[i], clients, equipment))
	}
	return out, total, nil
}

// detail - карточка визита: имя клиента, оборудование с серийным номером, суммы.
func (s *MaintenanceService) detail(ctx context.Context, svc *entities.Service) (*dto.ServiceDetailDTO, error) {
	clients := map[string]*entities.Client{}
	if c, err := s.clientRepo.FindByID(ctx, nil, svc.ClientID); err == nil {
		clients[c.ID] = c
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	equipment := map[string]*entities.Equipment{}
	if eq, err := s.equipmentRepo.FindByID(ctx, nil, svc.EquipmentID); err == nil {
		equipment[eq.ID] = eq
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	base := serviceToDTO(svc, clients, equipment)
	base.EquipmentLabel = maintenance.EquipmentLabelWithSerial(equipment, svc.EquipmentID)
	return &dto.ServiceDetailDTO{
		ServiceDTO:     base,
		ChecklistItems: checklistItems(svc.MachineType, svc.Type, svc.Checklist),
		Totals:         maintenance.SumParts(svc.PartsUsed),
	}, nil
}

func (s *MaintenanceService) FindService(ctx context.Context, id string) (*dto.ServiceDetailDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ServicesView); err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, svc)
}

// equipmentForClient проверяет, что оборудование принадлежит клиенту и доступно.
func (s *MaintenanceService) equipmentForClient(ctx context.Context, equipmentID, clientID string) (*entities.Equipment, error) {
	eq, err := s.equipmentRepo.FindByID(ctx, nil, equipmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("El equipo %s no existe", equipmentID)
		}
		return nil, err
	}
	if !eq.Client.Valid || eq.Client.String != clientID {
		return nil, apperrors.ErrEquipmentNotForClient
	}
	if eq.Status == maintenance.StatusUnavailable {
		return nil, apperrors.ErrEquipmentUnavailable
	}
	return eq, nil
}

func parseDateField(field, raw string) (null.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return null.Time{}, nil
	}
	t, ok := utils.ParseDate(raw)
	if !ok {
		return null.Time{}, apperrors.NewInvalidInputError("Fecha inválida en '%s': %s", field, raw)
	}
	return null.TimeFrom(t), nil
}

func (s *MaintenanceService) CreateService(ctx context.Context, payload dto.CreateServiceDTO) (*dto.ServiceDetailDTO, error) {
	authCtx, err := checkPermission(ctx, s.logger, authz.ServicesCreate)
	if err != nil {
		return nil, err
	}

	eq, err := s.equipmentForClient(ctx, payload.EquipmentID, payload.ClientID)
	if err != nil {
		return nil, err
	}
	start, err := parseDateField("date_start", payload.DateStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField("date_end", payload.DateEnd)
	if err != nil {
		return nil, err
	}

	creator := authCtx.Actor.FullName
	if creator == "" {
		creator = maintenance.UnknownCreator
	}
	status := payload.Status
	if status == "" {
		status = maintenance.ServiceStatusPending
	}

	svc := &entities.Service{
		ID:                  uuid.NewString(),
		ClientID:            payload.ClientID,
		EquipmentID:         eq.ID,
		Type:                payload.Type,
		MachineType:         eq.Type,
		DateStart:           start.Time,
		DateEnd:             end,
		Status:              status,
		Checklist:           maintenance.ChecklistFor(eq.Type, payload.Type, nil, true, payload.Checklist),
		PartsUsed:           partsFromDTO(payload.PartsUsed),
		Description:         payload.Description,
		NextServiceComments: payload.NextServiceComments,
		Technician:          creator,
		AssignedTechnician:  creator,
	}
	if assigned := strings.TrimSpace(payload.AssignedTechnician); assigned != "" {
		svc.AssignedTechnician = assigned
	}

	authCtx.Target = svc
	if !authz.CanDo(authz.ServicesCreate, authCtx) {
		s.logger.Warn("Назначение техника без права", zap.String("userID", authCtx.Actor.ID))
		return nil, apperrors.ErrForbidden
	}

	if err := s.createWithFolio(ctx, svc); err != nil {
		return nil, err
	}
	s.logger.Info("Визит создан", zap.String("serviceID", svc.ID), zap.String("folio", svc.Folio))
	return s.detail(ctx, svc)
}

// createWithFolio повторяет вставку с новым фолио, пока индекс сообщает о коллизии.
func (s *MaintenanceService) createWithFolio(ctx context.Context, svc *entities.Service) error {
	for attempt := 1; attempt <= maxFolioAttempts; attempt++ {
		svc.Folio = s.folios.Next()
		err := s.serviceRepo.Create(ctx, nil, svc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrFolioTaken) {
			s.logger.Error("Ошибка создания визита", zap.Error(err))
			return err
		}
		s.logger.Warn("Коллизия фолио", zap.String("folio", svc.Folio), zap.Int("attempt", attempt))
	}
	return apperrors.ErrFolioExhausted
}

func (s *MaintenanceService) UpdateService(ctx context.Context, id string, payload dto.UpdateServiceDTO) (*dto.ServiceDetailDTO, error) {
	authCtx, err := checkPermission(ctx, s.logger, authz.ServicesUpdate)
	if err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	clientID := svc.ClientID
	if payload.ClientID != nil {
		clientID = *payload.ClientID
	}
	equipmentID := svc.EquipmentID
	if payload.EquipmentID != nil {
		equipmentID = *payload.EquipmentID
	}
	equipmentChanged := equipmentID != svc.EquipmentID
	if equipmentChanged || clientID != svc.ClientID {
		eq, err := s.equipmentForClient(ctx, equipmentID, clientID)
		if err != nil {
			return nil, err
		}
		svc.MachineType = eq.Type
	}
	svc.ClientID = clientID
	svc.EquipmentID = equipmentID

	typeChanged := payload.Type != nil && *payload.Type != svc.Type
	if payload.Type != nil {
		svc.Type = *payload.Type
	}
	svc.Checklist = maintenance.ChecklistFor(svc.MachineType, svc.Type, svc.Checklist, equipmentChanged || typeChanged, payload.Checklist)

	if payload.DateStart != nil {
		start, err := parseDateField("date_start", *payload.DateStart)
		if err != nil {
			return nil, err
		}
		if !start.Valid {
			return nil, apperrors.NewInvalidInputError("La fecha de inicio es obligatoria")
		}
		svc.DateStart = start.Time
	}
	if payload.DateEnd != nil {
		end, err := parseDateField("date_end", *payload.DateEnd)
		if err != nil {
			return nil, err
		}
		svc.DateEnd = end
	}
	if payload.Status != nil {
		svc.Status = *payload.Status
	}
	if payload.PartsUsed != nil {
		svc.PartsUsed = partsFromDTO(*payload.PartsUsed)
	}
	if payload.Description != nil {
		svc.Description = *payload.Description
	}
	if payload.NextServiceComments != nil {
		svc.NextServiceComments = *payload.NextServiceComments
	}
	if payload.AssignedTechnician != nil {
		assigned := strings.TrimSpace(*payload.AssignedTechnician)
		if assigned != svc.AssignedTechnician {
			if !authCtx.HasPermission(authz.ServicesAssign) && !authCtx.HasPermission(authz.Superuser) {
				return nil, apperrors.ErrForbidden
			}
			svc.AssignedTechnician = assigned
		}
	}

	if err := s.serviceRepo.Update(ctx, nil, svc); err != nil {
		s.logger.Error("Ошибка обновления визита", zap.String("serviceID", id), zap.Error(err))
		return nil, err
	}
	return s.detail(ctx, svc)
}

func (s *MaintenanceService) DeleteService(ctx context.Context, id string) error {
	if _, err := checkPermission(ctx, s.logger, authz.ServicesDelete); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("Визит удалён", zap.String("serviceID", id))
	return nil
}

func (s *MaintenanceService) ChecklistTemplate(ctx context.Context, equipmentType, serviceType string) (*dto.ChecklistTemplateDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ServicesView); err != nil {
		return nil, err
	}
	return &dto.ChecklistTemplateDTO{
		EquipmentType: equipmentType,
		ServiceType:   serviceType,
		Items:         maintenance.ChecklistTemplate(equipmentType, serviceType),
	}, nil
}
