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
	"kaawa-maintenance/pkg/utils"
)

func newClientService(s *store, tx *fakeTxManager) ClientServiceInterface {
	return NewClientService(tx, fakeClientRepo{s}, fakeEquipmentRepo{s}, fakeServiceRepo{s}, zap.NewNop())
}

func TestClientService_CreateAndUpdate(t *testing.T) {
	s := newStore()
	svc := newClientService(s, &fakeTxManager{})

	created, err := svc.CreateClient(techCtx(), dto.CreateClientDTO{Name: "  Café Luna ", Contact: "Rosa", Zone: "Norte"})
	require.NoError(t, err)
	assert.Equal(t, "Café Luna", created.Name)
	assert.True(t, created.IsActive)
	assert.Equal(t, "Norte", created.Zone)
	assert.NotEmpty(t, created.ID)

	_, err = svc.UpdateClient(techCtx(), created.ID, dto.UpdateClientDTO{IsActive: utils.ToPtr(false)})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.UpdateClient(adminCtx(), created.ID, dto.UpdateClientDTO{IsActive: utils.ToPtr(false), Zone: utils.ToPtr("")})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Empty(t, updated.Zone)
	assert.Equal(t, "Rosa", updated.Contact)

	_, err = svc.UpdateClient(adminCtx(), "missing", dto.UpdateClientDTO{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientService_Lists(t *testing.T) {
	s := seededStore()
	svc := newClientService(s, &fakeTxManager{})

	all, total, err := svc.GetClients(techCtx(), types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Len(t, all, 2)

	active, err := svc.GetActiveClients(techCtx())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "c1", active[0].ID)
}

func TestClientService_FindClientResolvesTransferredEquipment(t *testing.T) {
	s := seededStore()
	// Визит на машине, которая уже у другого клиента.
	s.services["s1"] = entities.Service{ID: "s1", ClientID: "c1", EquipmentID: "e2", Type: maintenance.ServiceGeneral, DateStart: testNow}
	s.services["s2"] = entities.Service{ID: "s2", ClientID: "c1", EquipmentID: "deleted", Type: maintenance.ServiceGeneral, DateStart: testNow}

	detail, err := newClientService(s, &fakeTxManager{}).FindClient(techCtx(), "c1")
	require.NoError(t, err)
	assert.Len(t, detail.Equipment, 2)
	require.Len(t, detail.Services, 2)
	assert.Equal(t, "Mahlkönig E65S", detail.Services[0].EquipmentLabel)
	assert.Equal(t, maintenance.UnknownLabel, detail.Services[1].EquipmentLabel)
	assert.Equal(t, "Cafetería El Grano", detail.Equipment[0].ClientName)
}

func TestClientService_DeleteDetachesEquipment(t *testing.T) {
	s := seededStore()
	tx := &fakeTxManager{}
	svc := newClientService(s, tx)

	assert.ErrorIs(t, svc.DeleteClient(techCtx(), "c1"), apperrors.ErrForbidden)
	require.NoError(t, svc.DeleteClient(adminCtx(), "c1"))
	assert.Equal(t, 1, tx.calls)

	assert.NotContains(t, s.clients, "c1")
	for _, id := range []string{"e1", "e3"} {
		assert.False(t, s.equipment[id].Client.Valid, id)
		assert.Equal(t, maintenance.StatusAvailable, s.equipment[id].Status, id)
	}

	assert.ErrorIs(t, svc.DeleteClient(adminCtx(), "c1"), apperrors.ErrNotFound)
}

func TestClientService_RequiresActor(t *testing.T) {
	svc := newClientService(newStore(), &fakeTxManager{})
	_, _, err := svc.GetClients(context.Background(), types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
