package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

const (
	serviceTable      = "services"
	serviceFolioIndex = "ux_services_folio"
	serviceFields     = `s.id, s.folio, s.client_id, s.equipment_id, s.type, s.machine_type, s.date_start, s.date_end,
		s.status, s.checklist, s.parts_used, s.description, s.next_service_comments, s.technician,
		s.assigned_technician, s.created_at, s.updated_at`
)

var serviceListSpec = listSpec{
	from:    serviceTable + " s",
	columns: serviceFields,
	joins: []string{
		"clients c ON c.id = s.client_id",
		"equipment e ON e.id = s.equipment_id",
	},
	searchFields: []string{"s.type", "s.folio", "s.status", "c.name", "e.brand", "e.model"},
	filters: map[string]string{
		"status":              "s.status",
		"type":                "s.type",
		"client_id":           "s.client_id",
		"equipment_id":        "s.equipment_id",
		"assigned_technician": "s.assigned_technician",
	},
	sorts: map[string]string{
		"folio":      "s.folio",
		"date_start": "s.date_start",
		"date_end":   "s.date_end",
		"status":     "s.status",
		"type":       "s.type",
		"created_at": "s.created_at",
	},
	defaultOrder: "s.date_start DESC",
}

type ServiceRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error)
	FindAll(ctx context.Context) ([]entities.Service, error)
	FindByEquipment(ctx context.Context, equipmentID string) ([]entities.Service, error)
	FindByClient(ctx context.Context, clientID string) ([]entities.Service, error)
	FindStartedBetween(ctx context.Context, from, to time.Time) ([]entities.Service, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Service, error)
	Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, s *entities.Service) error
	Update(ctx context.Context, tx pgx.Tx, s *entities.Service) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type serviceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewServiceRepository(storage *pgxpool.Pool, logger *zap.Logger) ServiceRepositoryInterface {
	return &serviceRepository{storage: storage, logger: logger}
}

func scanService(row pgx.Row) (*entities.Service, error) {
	var s entities.Service
	var checklist, parts []byte
	err := row.Scan(
		&s.ID, &s.Folio, &s.ClientID, &s.EquipmentID, &s.Type, &s.MachineType, &s.DateStart, &s.DateEnd,
		&s.Status, &checklist, &parts, &s.Description, &s.NextServiceComments, &s.Technician,
		&s.AssignedTechnician, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования service: %w", err)
	}

	s.Checklist = map[string]bool{}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &s.Checklist); err != nil {
			return nil, fmt.Errorf("повреждён checklist визита %s: %w", s.ID, err)
		}
	}
	s.PartsUsed = []entities.Part{}
	if len(parts) > 0 {
		if err := json.Unmarshal(parts, &s.PartsUsed); err != nil {
			return nil, fmt.Errorf("повреждён parts_used визита %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

// jsonbArgs сериализует JSONB-колонки визита.
func jsonbArgs(s *entities.Service) (string, string, error) {
	checklist := s.Checklist
	if checklist == nil {
		checklist = map[string]bool{}
	}
	parts := s.PartsUsed
	if parts == nil {
		parts = []entities.Part{}
	}
	c, err := json.Marshal(checklist)
	if err != nil {
		return "", "", err
	}
	p, err := json.Marshal(parts)
	if err != nil {
		return "", "", err
	}
	return string(c), string(p), nil
}

func (r *serviceRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error) {
	return list(ctx, r.storage, serviceListSpec, filter, scanService)
}

func (r *serviceRepository) findWhere(ctx context.Context, where sq.Sqlizer, orderBy string) ([]entities.Service, error) {
	b := psql.Select(serviceFields).From(serviceTable + " s").OrderBy(orderBy)
	if where != nil {
		b = b.Where(where)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса services: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanService)
}

func (r *serviceRepository) FindAll(ctx context.Context) ([]entities.Service, error) {
	return r.findWhere(ctx, nil, "s.date_start DESC")
}

func (r *serviceRepository) FindByEquipment(ctx context.Context, equipmentID string) ([]entities.Service, error) {
	return r.findWhere(ctx, sq.Eq{"s.equipment_id": equipmentID}, "s.date_start DESC")
}

func (r *serviceRepository) FindByClient(ctx context.Context, clientID string) ([]entities.Service, error) {
	return r.findWhere(ctx, sq.Eq{"s.client_id": clientID}, "s.date_start DESC")
}

func (r *serviceRepository) FindStartedBetween(ctx context.Context, from, to time.Time) ([]entities.Service, error) {
	return r.findWhere(ctx, sq.And{
		sq.GtOrEq{"s.date_start": from},
		sq.LtOrEq{"s.date_start": to},
	}, "s.date_start DESC")
}

func (r *serviceRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Service, error) {
	query, args, err := psql.Select(serviceFields).From(serviceTable + " s").Where(sq.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByID: %w", err)
	}
	return scanService(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *serviceRepository) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	return exists(ctx, getQuerier(r.storage, tx), serviceTable, id)
}

func (r *serviceRepository) Create(ctx context.Context, tx pgx.Tx, s *entities.Service) error {
	checklist, parts, err := jsonbArgs(s)
	if err != nil {
		return fmt.Errorf("ошибка сериализации визита: %w", err)
	}

	query, args, err := psql.Insert(serviceTable).
		Columns("id", "folio", "client_id", "equipment_id", "type", "machine_type", "date_start", "date_end",
			"status", "checklist", "parts_used", "description", "next_service_comments", "technician",
			"assigned_technician", "created_at", "updated_at").
		Values(s.ID, s.Folio, s.ClientID, s.EquipmentID, s.Type, s.MachineType, s.DateStart, s.DateEnd,
			s.Status, checklist, parts, s.Description, s.NextServiceComments, s.Technician,
			s.AssignedTechnician, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err, serviceFolioIndex) {
			return fmt.Errorf("фолио %s: %w", s.Folio, apperrors.ErrFolioTaken)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("визит %s уже существует: %w", s.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка создания service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, tx pgx.Tx, s *entities.Service) error {
	checklist, parts, err := jsonbArgs(s)
	if err != nil {
		return fmt.Errorf("ошибка сериализации визита: %w", err)
	}

	query, args, err := psql.Update(serviceTable).
		Set("folio", s.Folio).
		Set("client_id", s.ClientID).
		Set("equipment_id", s.EquipmentID).
		Set("type", s.Type).
		Set("machine_type", s.MachineType).
		Set("date_start", s.DateStart).
		Set("date_end", s.DateEnd).
		Set("status", s.Status).
		Set("checklist", checklist).
		Set("parts_used", parts).
		Set("description", s.Description).
		Set("next_service_comments", s.NextServiceComments).
		Set("technician", s.Technician).
		Set("assigned_technician", s.AssignedTechnician).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, serviceFolioIndex) {
			return fmt.Errorf("фолио %s: %w", s.Folio, apperrors.ErrFolioTaken)
		}
		return fmt.Errorf("ошибка обновления service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(serviceTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления service: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
