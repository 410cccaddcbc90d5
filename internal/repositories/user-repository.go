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
)

const (
	userTable  = "users"
	userFields = "u.id, u.username, u.full_name, u.role, u.is_active, u.password, u.created_at, u.updated_at"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	// FindByRoles - только активные пользователи, в порядке full_name.
	FindByRoles(ctx context.Context, roles []string) ([]entities.User, error)
	Upsert(ctx context.Context, tx pgx.Tx, user *entities.User) error
}

type userRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.Role, &u.IsActive, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := psql.Select(userFields).From(userTable + " u").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса users: %w", err)
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id})
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.username": username})
}

func (r *userRepository) FindByRoles(ctx context.Context, roles []string) ([]entities.User, error) {
	query, args, err := psql.Select(userFields).
		From(userTable + " u").
		Where(sq.Eq{"u.role": roles, "u.is_active": true}).
		OrderBy("u.full_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса FindByRoles: %w", err)
	}
	return queryAll(ctx, r.storage, query, args, scanUser)
}

// Upsert создаёт пользователя или обновляет его по username.
func (r *userRepository) Upsert(ctx context.Context, tx pgx.Tx, user *entities.User) error {
	query, args, err := psql.Insert(userTable).
		Columns("id", "username", "full_name", "role", "is_active", "password").
		Values(user.ID, user.Username, user.FullName, user.Role, user.IsActive, user.Password).
		Suffix(`ON CONFLICT (username) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			password = EXCLUDED.password,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса Upsert: %w", err)
	}

	if err := getQuerier(r.storage, tx).QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("ошибка сохранения пользователя %s: %w", user.Username, err)
	}
	return nil
}
