package roster

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/repositories"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/utils"
)

type RepositoryProvider struct {
	repo   repositories.UserRepositoryInterface
	logger *zap.Logger
}

func NewRepositoryProvider(repo repositories.UserRepositoryInterface, logger *zap.Logger) *RepositoryProvider {
	return &RepositoryProvider{repo: repo, logger: logger}
}

func (p *RepositoryProvider) ListTechnicians(ctx context.Context) ([]entities.User, error) {
	return p.repo.FindByRoles(ctx, TechnicianRoles)
}

func (p *RepositoryProvider) Authenticate(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := p.repo.FindByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		p.logger.Error("ошибка поиска пользователя", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.Password, password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (p *RepositoryProvider) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return p.repo.FindByID(ctx, id)
}
