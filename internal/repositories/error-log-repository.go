package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

const (
	errorLogTable  = "error_logs"
	errorLogFields = "l.id, l.message, l.component, l.username, l.url, l.user_agent, l.stack, l.created_at"
)

var errorLogListSpec = listSpec{
	from:         errorLogTable + " l",
	columns:      errorLogFields,
	searchFields: []string{"l.message", "l.component", "l.username"},
	filters: map[string]string{
		"component": "l.component",
		"user":      "l.username",
	},
	sorts:        map[string]string{"timestamp": "l.created_at"},
	defaultOrder: "l.created_at DESC",
}

type ErrorLogRepositoryInterface interface {
	Create(ctx context.Context, log *entities.ErrorLog) error
	GetAll(ctx context.Context, filter types.Filter) ([]entities.ErrorLog, uint64, error)
	FindAll(ctx context.Context) ([]entities.ErrorLog, error)
}

type errorLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewErrorLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ErrorLogRepositoryInterface {
	return &errorLogRepository{storage: storage, logger: logger}
}

func scanErrorLog(row pgx.Row) (*entities.ErrorLog, error) {
	var l entities.ErrorLog
	err := row.Scan(&l.ID, &l.Message, &l.Component, &l.User, &l.URL, &l.UserAgent, &l.Stack, &l.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования error_log: %w", err)
	}
	return &l, nil
}

func (r *errorLogRepository) Create(ctx context.Context, log *entities.ErrorLog) error {
	query, args, err := psql.Insert(errorLogTable).
		Columns("id", "message", "component", "username", "url", "user_agent", "stack", "created_at").
		Values(log.ID, log.Message, log.Component, log.User, log.URL, log.UserAgent, log.Stack, log.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Create: %w", err)
	}
	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка записи error_log: %w", err)
	}
	return nil
}

func (r *errorLogRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.ErrorLog, uint64, error) {
	return list(ctx, r.storage, errorLogListSpec, filter, scanErrorLog)
}

func (r *errorLogRepository) FindAll(ctx context.Context) ([]entities.ErrorLog, error) {
	query, args, err := psql.Select(errorLogFields).From(errorLogTable + " l").OrderBy("l.created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindAll: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanErrorLog)
}
