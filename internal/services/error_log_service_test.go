package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/dto"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

func TestErrorLogService(t *testing.T) {
	s := newStore()
	svc := NewErrorLogService(fakeErrorLogRepo{s}, fixedClock, zap.NewNop())

	saved, err := svc.RecordClientError(techCtx(), dto.CreateErrorLogDTO{Message: " fallo al guardar ", Component: "AddEditService"})
	require.NoError(t, err)
	assert.Equal(t, "fallo al guardar", saved.Message)
	assert.Equal(t, "carlos", saved.User)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, testNow.Format("2006-01-02T15:04:05Z07:00"), saved.Timestamp)

	require.NoError(t, svc.RecordServerError(context.Background(), entities.ErrorLog{Message: "panic: nil map"}))
	require.Len(t, s.errorLogs, 2)
	assert.Equal(t, ServerComponent, s.errorLogs[1].Component)
	assert.Equal(t, maintenance.UnknownLabel, s.errorLogs[1].User)

	_, _, err = svc.GetErrorLogs(techCtx(), types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	logs, total, err := svc.GetErrorLogs(adminCtx(), types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, logs, 2)
}
