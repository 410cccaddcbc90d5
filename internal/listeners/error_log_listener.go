package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kaawa-maintenance/internal/events"
	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/eventbus"
)

// ErrorLogListener сохраняет серверные ошибки в журнал вне контекста запроса.
type ErrorLogListener struct {
	errorLogService services.ErrorLogServiceInterface
	logger          *zap.Logger
}

func NewErrorLogListener(errorLogService services.ErrorLogServiceInterface, logger *zap.Logger) *ErrorLogListener {
	return &ErrorLogListener{errorLogService: errorLogService, logger: logger}
}

func (l *ErrorLogListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.ErrorOccurredEventName, l.handleErrorOccurred)
	l.logger.Info("ErrorLogListener подписан на событие", zap.String("event", events.ErrorOccurredEventName))
}

func (l *ErrorLogListener) handleErrorOccurred(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ErrorOccurredEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}
	return l.errorLogService.RecordServerError(ctx, e.Log)
}
