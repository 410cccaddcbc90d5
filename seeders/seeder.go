package seeders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

// SeedUsers создаёт или обновляет учётные записи. Пароль общий для всех,
// хранится только bcrypt-хеш.
func SeedUsers(ctx context.Context, db *pgxpool.Pool, password string, logger *zap.Logger) error {
	if len(password) < 8 {
		return errors.New("пароль должен содержать не менее 8 символов")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}

	userRepo := repositories.NewUserRepository(db, logger)
	return repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, u := range usersData {
			user := u
			user.Password = hash
			if err := userRepo.Upsert(ctx, tx, &user); err != nil {
				return fmt.Errorf("пользователь %s: %w", user.Username, err)
			}
			logger.Info("  - пользователь", zap.String("username", user.Username), zap.String("role", user.Role))
		}
		return nil
	})
}

// SeedDemo наполняет базу демонстрационными клиентами, оборудованием и визитами.
// Уже существующие записи пропускаются.
func SeedDemo(ctx context.Context, db *pgxpool.Pool, now time.Time, logger *zap.Logger) error {
	clientRepo := repositories.NewClientRepository(db, logger)
	equipmentRepo := repositories.NewEquipmentRepository(db, logger)
	serviceRepo := repositories.NewServiceRepository(db, logger)
	folios := maintenance.NewRandomFolioGenerator()

	return repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, c := range clientsData {
			client := c
			exists, err := clientRepo.Exists(ctx, tx, client.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := clientRepo.Create(ctx, tx, &client); err != nil {
				return fmt.Errorf("клиент %s: %w", client.ID, err)
			}
		}

		equipment := equipmentData(now)
		machineTypes := make(map[string]string, len(equipment))
		for i := range equipment {
			e := &equipment[i]
			machineTypes[e.ID] = e.Type
			exists, err := equipmentRepo.Exists(ctx, tx, e.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			if err := equipmentRepo.Create(ctx, tx, e); err != nil {
				return fmt.Errorf("оборудование %s: %w", e.ID, err)
			}
		}

		for _, s := range servicesData(now) {
			svc := s
			exists, err := serviceRepo.Exists(ctx, tx, svc.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			svc.MachineType = machineTypes[svc.EquipmentID]
			svc.Checklist = maintenance.NewChecklist(maintenance.ChecklistTemplate(svc.MachineType, svc.Type))
			if svc.Status == maintenance.ServiceStatusCompleted {
				for item := range svc.Checklist {
					svc.Checklist[item] = true
				}
			}
			if svc.AssignedTechnician == "" {
				svc.AssignedTechnician = svc.Technician
			}
			if err := createWithFolio(ctx, tx, serviceRepo, folios, &svc); err != nil {
				return fmt.Errorf("визит %s: %w", svc.ID, err)
			}
		}
		return nil
	})
}

func createWithFolio(ctx context.Context, tx pgx.Tx, repo repositories.ServiceRepositoryInterface, folios maintenance.FolioGenerator, svc *entities.Service) error {
	for attempt := 0; attempt < 10; attempt++ {
		svc.Folio = folios.Next()
		err := repositories.WithSavepoint(ctx, tx, func(sp pgx.Tx) error {
			return repo.Create(ctx, sp, svc)
		})
		if !errors.Is(err, apperrors.ErrFolioTaken) {
			return err
		}
	}
	return apperrors.ErrFolioExhausted
}
