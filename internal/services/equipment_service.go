package services

import (
	"context"
	"strings"

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

type EquipmentServiceInterface interface {
	GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id string) (*dto.EquipmentDetailDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id string) error
	AvailableForClient(ctx context.Context, clientID string) ([]dto.ShortEquipmentDTO, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	clientRepo    repositories.ClientRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	clientRepo repositories.ClientRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		clientRepo:    clientRepo,
		serviceRepo:   serviceRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) clientIndex(ctx context.Context) (map[string]*entities.Client, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return maintenance.IndexClients(clients), nil
}

func (s *EquipmentService) GetEquipment(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentView); err != nil {
		return nil, 0, err
	}
	equipment, total, err := s.equipmentRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	clients, err := s.clientIndex(ctx)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EquipmentDTO, 0, len(equipment))
	for i := range equipment {
		out = append(out, equipmentToDTO(&equipment[i], clients))
	}
	return out, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDetailDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentView); err != nil {
		return nil, err
	}
	eq, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.FindByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientIndex(ctx)
	if err != nil {
		return nil, err
	}

	equipmentIdx := map[string]*entities.Equipment{eq.ID: eq}
	detail := &dto.EquipmentDetailDTO{
		EquipmentDTO: equipmentToDTO(eq, clients),
		Services:     make([]dto.ServiceDTO, 0, len(services)),
	}
	for i := range services {
		detail.Services = append(detail.Services, serviceToDTO(&services[i], clients, equipmentIdx))
	}
	return detail, nil
}

// ensureClient - ссылка на несуществующего клиента отклоняется.
func (s *EquipmentService) ensureClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}
	ok, err := s.clientRepo.Exists(ctx, nil, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewInvalidInputError("El cliente %s no existe", clientID)
	}
	return nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentCreate); err != nil {
		return nil, err
	}
	clientID := strings.TrimSpace(payload.ClientID)
	if err := s.ensureClient(ctx, clientID); err != nil {
		return nil, err
	}

	eq := &entities.Equipment{
		ID:                uuid.NewString(),
		Type:              payload.Type,
		Brand:             strings.TrimSpace(payload.Brand),
		Model:             strings.TrimSpace(payload.Model),
		Serial:            strings.TrimSpace(payload.Serial),
		PurchaseDate:      utils.ParseNullDate(payload.PurchaseDate),
		InvoiceNumber:     strings.TrimSpace(payload.InvoiceNumber),
		CurrentCondition:  payload.CurrentCondition,
		CurrentStatus:     payload.CurrentStatus,
		Client:            nullString(clientID),
		LastService:       utils.ParseNullDate(payload.LastService),
		LastServiceType:   nullString(payload.LastServiceType),
		IsNewInstallation: payload.IsNewInstallation,
		InstallationDate:  utils.ParseNullDate(payload.InstallationDate),
		Notes:             payload.Notes,
	}
	eq.Status = maintenance.DeriveStatus(eq.Client.String)

	if err := s.equipmentRepo.Create(ctx, nil, eq); err != nil {
		s.logger.Error("Ошибка создания оборудования", zap.Error(err))
		return nil, err
	}
	clients, err := s.clientIndex(ctx)
	if err != nil {
		return nil, err
	}
	res := equipmentToDTO(eq, clients)
	return &res, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentUpdate); err != nil {
		return nil, err
	}
	eq, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Type != nil {
		eq.Type = *payload.Type
	}
	if payload.Brand != nil {
		eq.Brand = strings.TrimSpace(*payload.Brand)
	}
	if payload.Model != nil {
		eq.Model = strings.TrimSpace(*payload.Model)
	}
	if payload.Serial != nil {
		eq.Serial = strings.TrimSpace(*payload.Serial)
	}
	if payload.PurchaseDate != nil {
		eq.PurchaseDate = utils.ParseNullDate(*payload.PurchaseDate)
	}
	if payload.InvoiceNumber != nil {
		eq.InvoiceNumber = strings.TrimSpace(*payload.InvoiceNumber)
	}
	if payload.CurrentCondition != nil {
		eq.CurrentCondition = *payload.CurrentCondition
	}
	if payload.CurrentStatus != nil {
		eq.CurrentStatus = *payload.CurrentStatus
	}
	if payload.ClientID != nil {
		clientID := strings.TrimSpace(*payload.ClientID)
		if err := s.ensureClient(ctx, clientID); err != nil {
			return nil, err
		}
		eq.Client = nullString(clientID)
	}
	if payload.LastService != nil {
		eq.LastService = utils.ParseNullDate(*payload.LastService)
	}
	if payload.LastServiceType != nil {
		eq.LastServiceType = nullString(*payload.LastServiceType)
	}
	if payload.IsNewInstallation != nil {
		eq.IsNewInstallation = *payload.IsNewInstallation
	}
	if payload.InstallationDate != nil {
		eq.InstallationDate = utils.ParseNullDate(*payload.InstallationDate)
	}
	if payload.Notes != nil {
		eq.Notes = *payload.Notes
	}
	eq.Status = maintenance.DeriveStatus(eq.Client.String)

	if err := s.equipmentRepo.Update(ctx, nil, eq); err != nil {
		s.logger.Error("Ошибка обновления оборудования", zap.String("equipmentID", id), zap.Error(err))
		return nil, err
	}
	clients, err := s.clientIndex(ctx)
	if err != nil {
		return nil, err
	}
	res := equipmentToDTO(eq, clients)
	return &res, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentDelete); err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.String("equipmentID", id))
	return nil
}

// AvailableForClient - оборудование клиента, на которое можно записать визит.
func (s *EquipmentService) AvailableForClient(ctx context.Context, clientID string) ([]dto.ShortEquipmentDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.EquipmentView); err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShortEquipmentDTO, 0, len(equipment))
	idx := maintenance.IndexEquipment(equipment)
	for _, eq := range equipment {
		if eq.Status == maintenance.StatusUnavailable {
			continue
		}
		out = append(out, dto.ShortEquipmentDTO{
			ID:     eq.ID,
			Label:  maintenance.EquipmentLabelWithSerial(idx, eq.ID),
			Type:   eq.Type,
			Status: eq.Status,
		})
	}
	return out, nil
}
