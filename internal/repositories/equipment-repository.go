package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

const (
	equipmentTable  = "equipment"
	equipmentFields = `e.id, e.type, e.brand, e.model, e.serial, e.purchase_date, e.invoice_number,
		e.current_condition, e.current_status, e.status, e.client_id, e.last_service, e.last_service_type,
		e.is_new_installation, e.installation_date, e.notes, e.created_at, e.updated_at`
)

var equipmentListSpec = listSpec{
	from:         equipmentTable + " e",
	columns:      equipmentFields,
	joins:        []string{"clients c ON c.id = e.client_id"},
	searchFields: []string{"e.type", "e.brand", "e.model", "e.serial", "e.status", "c.name"},
	filters: map[string]string{
		"type":      "e.type",
		"status":    "e.status",
		"client_id": "e.client_id",
		"brand":     "e.brand",
	},
	sorts: map[string]string{
		"brand":         "e.brand",
		"model":         "e.model",
		"type":          "e.type",
		"status":        "e.status",
		"purchase_date": "e.purchase_date",
		"last_service":  "e.last_service",
		"created_at":    "e.created_at",
	},
	defaultOrder: "e.created_at DESC",
}

type EquipmentRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindAll(ctx context.Context) ([]entities.Equipment, error)
	FindByClient(ctx context.Context, clientID string) ([]entities.Equipment, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error
	Update(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
	// DetachClient отвязывает всё оборудование клиента и выставляет переданный статус.
	DetachClient(ctx context.Context, tx pgx.Tx, clientID string, status string) (int64, error)
}

type equipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &equipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Type, &e.Brand, &e.Model, &e.Serial, &e.PurchaseDate, &e.InvoiceNumber,
		&e.CurrentCondition, &e.CurrentStatus, &e.Status, &e.Client, &e.LastService, &e.LastServiceType,
		&e.IsNewInstallation, &e.InstallationDate, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}
	return &e, nil
}

func (r *equipmentRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return list(ctx, r.storage, equipmentListSpec, filter, scanEquipment)
}

func (r *equipmentRepository) FindAll(ctx context.Context) ([]entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From(equipmentTable + " e").OrderBy("e.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindAll: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanEquipment)
}

func (r *equipmentRepository) FindByClient(ctx context.Context, clientID string) ([]entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).
		From(equipmentTable + " e").
		Where(sq.Eq{"e.client_id": clientID}).
		OrderBy("e.brand ASC", "e.model ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByClient: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanEquipment)
}

func (r *equipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentFields).From(equipmentTable + " e").Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByID: %w", err)
	}
	return scanEquipment(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *equipmentRepository) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	return exists(ctx, getQuerier(r.storage, tx), equipmentTable, id)
}

func (r *equipmentRepository) Create(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Insert(equipmentTable).
		Columns("id", "type", "brand", "model", "serial", "purchase_date", "invoice_number",
			"current_condition", "current_status", "status", "client_id", "last_service", "last_service_type",
			"is_new_installation", "installation_date", "notes", "created_at", "updated_at").
		Values(e.ID, e.Type, e.Brand, e.Model, e.Serial, e.PurchaseDate, e.InvoiceNumber,
			e.CurrentCondition, e.CurrentStatus, e.Status, e.Client, e.LastService, e.LastServiceType,
			e.IsNewInstallation, e.InstallationDate, e.Notes, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("оборудование %s уже существует: %w", e.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка создания equipment: %w", err)
	}
	return nil
}

func (r *equipmentRepository) Update(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).
		Set("type", e.Type).
		Set("brand", e.Brand).
		Set("model", e.Model).
		Set("serial", e.Serial).
		Set("purchase_date", e.PurchaseDate).
		Set("invoice_number", e.InvoiceNumber).
		Set("current_condition", e.CurrentCondition).
		Set("current_status", e.CurrentStatus).
		Set("status", e.Status).
		Set("client_id", e.Client).
		Set("last_service", e.LastService).
		Set("last_service_type", e.LastServiceType).
		Set("is_new_installation", e.IsNewInstallation).
		Set("installation_date", e.InstallationDate).
		Set("notes", e.Notes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления equipment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) DetachClient(ctx context.Context, tx pgx.Tx, clientID string, status string) (int64, error) {
	query, args, err := psql.Update(equipmentTable).
		Set("client_id", nil).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка сборки запроса DetachClient: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("ошибка отвязки оборудования: %w", err)
	}
	return result.RowsAffected(), nil
}
