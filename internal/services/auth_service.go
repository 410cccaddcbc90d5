package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/internal/roster"
	"kaawa-maintenance/pkg/config"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/service"
	"kaawa-maintenance/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*dto.UserPublicDTO, error)
}

type AuthService struct {
	users      roster.Provider
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        config.AuthConfig
	clock      Clock
	logger     *zap.Logger
}

func NewAuthService(
	users roster.Provider,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	clock Clock,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		users:      users,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		clock:      clock,
		logger:     logger,
	}
}

func userToPublicDTO(user *entities.User) *dto.UserPublicDTO {
	perms := authz.PermissionsForRole(user.Role)
	list := make([]string, 0, len(perms))
	for p := range perms {
		list = append(list, p)
	}
	sort.Strings(list)
	return &dto.UserPublicDTO{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Role:        user.Role,
		Permissions: list,
	}
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.AuthResponseDTO, error) {
	pair, err := s.jwtService.GenerateTokens(user.ID)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.String("userID", user.ID), zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	return &dto.AuthResponseDTO{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         *userToPublicDTO(user),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	username := strings.ToLower(strings.TrimSpace(payload.Username))
	if err := s.checkLockout(ctx, username); err != nil {
		s.logger.Warn("Попытка входа в заблокированную учётную запись", zap.String("username", username))
		return nil, err
	}

	user, err := s.users.Authenticate(ctx, username, payload.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.handleFailedLoginAttempt(ctx, username)
		} else {
			s.logger.Error("Ошибка проверки учётных данных", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}
	s.resetLoginAttempts(ctx, username)

	s.logger.Info("Пользователь вошёл в систему", zap.String("userID", user.ID))
	return s.issueTokens(user)
}

func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.refreshClaims(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}

	// Старый refresh-токен одноразовый.
	s.revoke(ctx, claims)
	return s.issueTokens(user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil
		}
		return err
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	s.revoke(ctx, claims)
	s.logger.Info("Пользователь вышел из системы", zap.String("userID", claims.UserID))
	return nil
}

func (s *AuthService) Me(ctx context.Context) (*dto.UserPublicDTO, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return userToPublicDTO(actor), nil
}

func (s *AuthService) refreshClaims(ctx context.Context, refreshToken string) (*service.JwtCustomClaim, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrUnauthorized
	}
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	revoked, err := s.cacheRepo.Exists(ctx, revokedKey(claims.ID))
	if err != nil {
		s.logger.Error("Ошибка проверки отзыва токена", zap.Error(err))
		return nil, apperrors.ErrInternalServer
	}
	if revoked {
		s.logger.Warn("Повторное использование отозванного refresh-токена", zap.String("userID", claims.UserID))
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_refresh:%s", tokenID)
}

// revoke хранит отметку об отзыве, пока токен ещё мог бы пройти проверку.
func (s *AuthService) revoke(ctx context.Context, claims *service.JwtCustomClaim) {
	ttl := s.jwtService.GetRefreshTokenTTL()
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.clock())
	}
	if ttl <= 0 {
		return
	}
	if err := s.cacheRepo.Set(ctx, revokedKey(claims.ID), "revoked", ttl); err != nil {
		s.logger.Error("Не удалось отозвать refresh-токен", zap.String("jti", claims.ID), zap.Error(err))
	}
}

func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	lockoutKey := fmt.Sprintf("lockout:%s", username)

	// Если ключ существует, учётная запись заблокирована
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, username string) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", username)
	attempts, _ := s.cacheRepo.Incr(ctx, attemptsKey)
	if attempts == 1 {
		s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%s", username)
		s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("Учётная запись заблокирована", zap.String("username", username), zap.Duration("duration", s.cfg.LockoutDuration))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, username string) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", username)
	lockoutKey := fmt.Sprintf("lockout:%s", username)
	s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}

// ==================== Пользователи ====================

type UserServiceInterface interface {
	GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type UserService struct {
	users  roster.Provider
	logger *zap.Logger
}

func NewUserService(users roster.Provider, logger *zap.Logger) UserServiceInterface {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) GetTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	if _, err := checkPermission(ctx, s.logger, authz.UsersView); err != nil {
		return nil, err
	}
	users, err := s.users.ListTechnicians(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TechnicianDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.TechnicianDTO{ID: u.ID, FullName: u.FullName, Role: u.Role})
	}
	return out, nil
}

