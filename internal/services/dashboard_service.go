package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dashboard"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/internal/roster"
	apperrors "kaawa-maintenance/pkg/errors"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dashboard.Result, error)
}

type DashboardService struct {
	clientRepo    repositories.ClientRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	serviceRepo   repositories.ServiceRepositoryInterface
	users         roster.Provider
	listLimit     int
	clock         Clock
	logger        *zap.Logger
}

func NewDashboardService(
	clientRepo repositories.ClientRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	serviceRepo repositories.ServiceRepositoryInterface,
	users roster.Provider,
	listLimit int,
	clock Clock,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		clientRepo:    clientRepo,
		equipmentRepo: equipmentRepo,
		serviceRepo:   serviceRepo,
		users:         users,
		listLimit:     listLimit,
		clock:         clock,
		logger:        logger,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dashboard.Result, error) {
	authCtx, err := checkPermission(ctx, s.logger, authz.DashboardView)
	if err != nil {
		return nil, err
	}
	withTechnicians := authCtx.HasPermission(authz.DashboardTechnicians)

	var (
		wg        sync.WaitGroup
		clients   []entities.Client
		equipment []entities.Equipment
		services  []entities.Service
		techs     []entities.User

		errs []error
		mu   sync.Mutex
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { clients, err = s.clientRepo.FindAll(ctx); return })
	addTask(func() (err error) { equipment, err = s.equipmentRepo.FindAll(ctx); return })
	addTask(func() (err error) { services, err = s.serviceRepo.FindAll(ctx); return })
	if withTechnicians {
		addTask(func() (err error) { techs, err = s.users.ListTechnicians(ctx); return })
	}

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("Ошибка загрузки панели", zap.Error(errs[0]))
		return nil, apperrors.NewInternalError("Error al cargar el panel")
	}

	result := dashboard.Aggregate(dashboard.Snapshot{
		Clients:   clients,
		Equipment: equipment,
		Services:  services,
		Roster:    techs,
	}, s.clock(), dashboard.Options{
		Limit:              s.listLimit,
		IncludeTechnicians: withTechnicians,
	})
	return &result, nil
}
