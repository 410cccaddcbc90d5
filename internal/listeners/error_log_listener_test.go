package listeners

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/events"
	"kaawa-maintenance/pkg/eventbus"
	"kaawa-maintenance/pkg/types"
)

type mockErrorLogService struct {
	mock.Mock
}

func (m *mockErrorLogService) RecordClientError(ctx context.Context, payload dto.CreateErrorLogDTO) (*dto.ErrorLogDTO, error) {
	args := m.Called(ctx, payload)
	return nil, args.Error(1)
}

func (m *mockErrorLogService) RecordServerError(ctx context.Context, log entities.ErrorLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *mockErrorLogService) GetErrorLogs(ctx context.Context, filter types.Filter) ([]dto.ErrorLogDTO, uint64, error) {
	args := m.Called(ctx, filter)
	return nil, 0, args.Error(2)
}

type otherEvent struct{}

func (otherEvent) Name() string { return events.ErrorOccurredEventName }

func TestErrorLogListener_RecordsServerErrors(t *testing.T) {
	svc := new(mockErrorLogService)
	entry := entities.ErrorLog{Message: "runtime error: index out of range", URL: "/api/dashboard"}
	svc.On("RecordServerError", mock.Anything, entry).Return(nil).Once()

	bus := eventbus.New(zap.NewNop())
	NewErrorLogListener(svc, zap.NewNop()).Register(bus)

	bus.Publish(context.Background(), events.ErrorOccurredEvent{Log: entry})
	bus.Wait()

	svc.AssertExpectations(t)
}

func TestErrorLogListener_RejectsForeignEvent(t *testing.T) {
	svc := new(mockErrorLogService)
	l := NewErrorLogListener(svc, zap.NewNop())

	err := l.handleErrorOccurred(context.Background(), otherEvent{})
	assert.Error(t, err)
	svc.AssertNotCalled(t, "RecordServerError", mock.Anything, mock.Anything)
}

func TestErrorLogListener_PropagatesServiceError(t *testing.T) {
	svc := new(mockErrorLogService)
	svc.On("RecordServerError", mock.Anything, mock.Anything).Return(errors.New("db down"))
	l := NewErrorLogListener(svc, zap.NewNop())

	err := l.handleErrorOccurred(context.Background(), events.ErrorOccurredEvent{})
	assert.EqualError(t, err, "db down")
}
