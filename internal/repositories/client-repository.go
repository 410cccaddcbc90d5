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
	clientTable  = "clients"
	clientFields = "c.id, c.name, c.contact, c.phone, c.email, c.address, c.is_active, c.zone, c.notes, c.created_at, c.updated_at"
)

var clientListSpec = listSpec{
	from:         clientTable + " c",
	columns:      clientFields,
	searchFields: []string{"c.name", "c.contact"},
	filters: map[string]string{
		"is_active": "c.is_active",
		"zone":      "c.zone",
	},
	boolFilters: map[string]bool{"is_active": true},
	sorts: map[string]string{
		"name":       "c.name",
		"zone":       "c.zone",
		"created_at": "c.created_at",
	},
	defaultOrder: "c.name ASC",
}

type ClientRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error)
	FindAll(ctx context.Context) ([]entities.Client, error)
	FindActive(ctx context.Context) ([]entities.Client, error)
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Client, error)
	Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, c *entities.Client) error
	Update(ctx context.Context, tx pgx.Tx, c *entities.Client) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type clientRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewClientRepository(storage *pgxpool.Pool, logger *zap.Logger) ClientRepositoryInterface {
	return &clientRepository{storage: storage, logger: logger}
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var c entities.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Contact, &c.Phone, &c.Email, &c.Address,
		&c.IsActive, &c.Zone, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования clients: %w", err)
	}
	return &c, nil
}

func (r *clientRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	return list(ctx, r.storage, clientListSpec, filter, scanClient)
}

func (r *clientRepository) FindAll(ctx context.Context) ([]entities.Client, error) {
	query, args, err := clientListSpec.base(clientFields).OrderBy("c.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindAll: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanClient)
}

func (r *clientRepository) FindActive(ctx context.Context) ([]entities.Client, error) {
	query, args, err := clientListSpec.base(clientFields).
		Where(sq.Eq{"c.is_active": true}).
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindActive: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanClient)
}

func (r *clientRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Client, error) {
	query, args, err := clientListSpec.base(clientFields).Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByID: %w", err)
	}
	return scanClient(getQuerier(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *clientRepository) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	return exists(ctx, getQuerier(r.storage, tx), clientTable, id)
}

func (r *clientRepository) Create(ctx context.Context, tx pgx.Tx, c *entities.Client) error {
	query, args, err := psql.Insert(clientTable).
		Columns("id", "name", "contact", "phone", "email", "address", "is_active", "zone", "notes", "created_at", "updated_at").
		Values(c.ID, c.Name, c.Contact, c.Phone, c.Email, c.Address, c.IsActive, c.Zone, c.Notes, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}

	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("клиент %s уже существует: %w", c.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка создания clients: %w", err)
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, tx pgx.Tx, c *entities.Client) error {
	query, args, err := psql.Update(clientTable).
		Set("name", c.Name).
		Set("contact", c.Contact).
		Set("phone", c.Phone).
		Set("email", c.Email).
		Set("address", c.Address).
		Set("is_active", c.IsActive).
		Set("zone", c.Zone).
		Set("notes", c.Notes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Update: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления clients: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(clientTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Delete: %w", err)
	}

	result, err := getQuerier(r.storage, tx).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления clients: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
