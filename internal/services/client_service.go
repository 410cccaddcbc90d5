package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/pkg/types"
	"kaawa-maintenance/pkg/utils"
)

type ClientServiceInterface interface {
	GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error)
	GetActiveClients(ctx context.Context) ([]dto.ShortClientDTO, error)
	FindClient(ctx context.Context, id string) (*dto.ClientDetailDTO, error)
	CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error)
	UpdateClient(ctx context.Context, id string, payload dto.UpdateClientDTO) (*dto.ClientDTO, error)
	DeleteClient(ctx context.Context, id string) error
}

type ClientService struct {
	txManager     repositories.TxManagerInterface
	clientRepo    repositories.ClientRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	logger        *zap.Logger
}

func NewClientService(
	txManager repositories.TxManagerInterface,
	clientRepo repositories.ClientRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	logger *zap.Logger,
) ClientServiceInterface {
	return &ClientService{
		txManager:     txManager,
		clientRepo:    clientRepo,
		equipmentRepo: equipmentRepo,
		serviceRepo:   serviceRepo,
		logger:        logger,
	}
}

func (s *ClientService) GetClients(ctx context.Context, filter types.Filter) ([]dto.ClientDTO, uint64, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ClientsView); err != nil {
		return nil, 0, err
	}
	clients, total, err := s.clientRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ClientDTO, 0, len(clients))
	for i := range clients {
		out = append(out, clientToDTO(&clients[i]))
	}
	return out, total, nil
}

func (s *ClientService) GetActiveClients(ctx context.Context) ([]dto.ShortClientDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ClientsView); err != nil {
		return nil, err
	}
	clients, err := s.clientRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShortClientDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ShortClientDTO{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *ClientService) FindClient(ctx context.Context, id string) (*dto.ClientDetailDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ClientsView); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.FindByClient(ctx, id)
	if err != nil {
		return nil, err
	}

	clients := map[string]*entities.Client{client.ID: client}
	equipmentIdx := maintenance.IndexEquipment(equipment)
	// Визит мог остаться на оборудовании, которое потом передали другому клиенту.
	for _, svc := range services {
		if _, ok := equipmentIdx[svc.EquipmentID]; ok {
			continue
		}
		if eq, err := s.equipmentRepo.FindByID(ctx, nil, svc.EquipmentID); err == nil {
			equipmentIdx[eq.ID] = eq
		}
	}

	detail := &dto.ClientDetailDTO{
		ClientDTO: clientToDTO(client),
		Equipment: make([]dto.EquipmentDTO, 0, len(equipment)),
		Services:  make([]dto.ServiceDTO, 0, len(services)),
	}
	for i := range equipment {
		detail.Equipment = append(detail.Equipment, equipmentToDTO(&equipment[i], clients))
	}
	for i := range services {
		detail.Services = append(detail.Services, serviceToDTO(&services[i], clients, equipmentIdx))
	}
	return detail, nil
}

func (s *ClientService) CreateClient(ctx context.Context, payload dto.CreateClientDTO) (*dto.ClientDTO, error) {
	authCtx, err := checkPermission(ctx, s.logger, authz.ClientsCreate)
	if err != nil {
		return nil, err
	}

	client := &entities.Client{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(payload.Name),
		Contact:  strings.TrimSpace(payload.Contact),
		Phone:    utils.NormalizePhone(payload.Phone),
		Email:    strings.TrimSpace(payload.Email),
		Address:  strings.TrimSpace(payload.Address),
		IsActive: payload.IsActive == nil || *payload.IsActive,
		Zone:     nullString(strings.TrimSpace(payload.Zone)),
		Notes:    payload.Notes,
	}
	if err := s.clientRepo.Create(ctx, nil, client); err != nil {
		s.logger.Error("Ошибка создания клиента", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Клиент создан", zap.String("clientID", client.ID), zap.String("by", authCtx.Actor.Username))
	res := clientToDTO(client)
	return &res, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id string, payload dto.UpdateClientDTO) (*dto.ClientDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ClientsUpdate); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		client.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Contact != nil {
		client.Contact = strings.TrimSpace(*payload.Contact)
	}
	if payload.Phone != nil {
		client.Phone = utils.NormalizePhone(*payload.Phone)
	}
	if payload.Email != nil {
		client.Email = strings.TrimSpace(*payload.Email)
	}
	if payload.Address != nil {
		client.Address = strings.TrimSpace(*payload.Address)
	}
	if payload.IsActive != nil {
		client.IsActive = *payload.IsActive
	}
	if payload.Zone != nil {
		client.Zone = nullString(strings.TrimSpace(*payload.Zone))
	}
	if payload.Notes != nil {
		client.Notes = *payload.Notes
	}

	if err := s.clientRepo.Update(ctx, nil, client); err != nil {
		s.logger.Error("Ошибка обновления клиента", zap.String("clientID", id), zap.Error(err))
		return nil, err
	}
	res := clientToDTO(client)
	return &res, nil
}

// DeleteClient удаляет клиента и освобождает его оборудование в одной транзакции.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	if _, err := checkPermission(ctx, s.logger, authz.ClientsDelete); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.clientRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		detached, err := s.equipmentRepo.DetachClient(ctx, tx, id, maintenance.DeriveStatus(""))
		if err != nil {
			return err
		}
		s.logger.Info("Клиент удалён", zap.String("clientID", id), zap.Int64("detachedEquipment", detached))
		return nil
	})
}
