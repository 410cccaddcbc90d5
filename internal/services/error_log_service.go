package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/pkg/types"
)

// ServerComponent - компонент для ошибок, пойманных на сервере.
const ServerComponent = "server"

type ErrorLogServiceInterface interface {
	RecordClientError(ctx context.Context, payload dto.CreateErrorLogDTO) (*dto.ErrorLogDTO, error)
	RecordServerError(ctx context.Context, log entities.ErrorLog) error
	GetErrorLogs(ctx context.Context, filter types.Filter) ([]dto.ErrorLogDTO, uint64, error)
}

type ErrorLogService struct {
	repo   repositories.ErrorLogRepositoryInterface
	clock  Clock
	logger *zap.Logger
}

func NewErrorLogService(repo repositories.ErrorLogRepositoryInterface, clock Clock, logger *zap.Logger) ErrorLogServiceInterface {
	return &ErrorLogService{repo: repo, clock: clock, logger: logger}
}

func errorLogToDTO(l *entities.ErrorLog) dto.ErrorLogDTO {
	return dto.ErrorLogDTO{
		ID:        l.ID,
		Message:   l.Message,
		Component: l.Component,
		User:      l.User,
		URL:       l.URL,
		UserAgent: l.UserAgent,
		Stack:     l.Stack,
		Timestamp: formatTimestamp(l.Timestamp),
	}
}

// RecordClientError сохраняет ошибку, присланную интерфейсом. Пользователь берётся из токена.
func (s *ErrorLogService) RecordClientError(ctx context.Context, payload dto.CreateErrorLogDTO) (*dto.ErrorLogDTO, error) {
	authCtx, err := checkPermission(ctx, s.logger, authz.ErrorLogsCreate)
	if err != nil {
		return nil, err
	}
	entry := entities.ErrorLog{
		Message:   strings.TrimSpace(payload.Message),
		Component: payload.Component,
		User:      authCtx.Actor.Username,
		URL:       payload.URL,
		UserAgent: payload.UserAgent,
		Stack:     payload.Stack,
	}
	if err := s.save(ctx, &entry); err != nil {
		return nil, err
	}
	out := errorLogToDTO(&entry)
	return &out, nil
}

// RecordServerError вызывается из обработчика события, проверки прав нет.
func (s *ErrorLogService) RecordServerError(ctx context.Context, log entities.ErrorLog) error {
	if log.Component == "" {
		log.Component = ServerComponent
	}
	if log.User == "" {
		log.User = maintenance.UnknownLabel
	}
	return s.save(ctx, &log)
}

func (s *ErrorLogService) save(ctx context.Context, log *entities.ErrorLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = s.clock()
	}
	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Error("Не удалось сохранить запись журнала ошибок", zap.Error(err))
		return err
	}
	return nil
}

func (s *ErrorLogService) GetErrorLogs(ctx context.Context, filter types.Filter) ([]dto.ErrorLogDTO, uint64, error) {
	if _, err := checkPermission(ctx, s.logger, authz.ErrorLogsView); err != nil {
		return nil, 0, err
	}
	logs, total, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ErrorLogDTO, 0, len(logs))
	for i := range logs {
		out = append(out, errorLogToDTO(&logs[i]))
	}
	return out, total, nil
}
