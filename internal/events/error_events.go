package events

import "kaawa-maintenance/internal/entities"

const ErrorOccurredEventName = "error.occurred"

// ErrorOccurredEvent - ошибка на стороне сервера (паника, 5xx), которую нужно сохранить в журнал.
type ErrorOccurredEvent struct {
	Log entities.ErrorLog
}

func (e ErrorOccurredEvent) Name() string {
	return ErrorOccurredEventName
}
