package seeders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kaawa-maintenance/internal/maintenance"
)

func TestDemoDataConsistency(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	clients := map[string]bool{}
	for _, c := range clientsData {
		clients[c.ID] = true
	}

	owners := map[string]string{}
	for _, e := range equipmentData(now) {
		assert.True(t, maintenance.Contains(maintenance.EquipmentTypes, e.Type), e.ID)
		assert.True(t, maintenance.Contains(maintenance.Conditions, e.CurrentStatus), e.ID)
		assert.NotEqual(t, e.CurrentStatus, e.CurrentCondition, e.ID)
		assert.Equal(t, maintenance.DeriveStatus(e.Client.String), e.Status, e.ID)
		if e.Client.Valid {
			assert.True(t, clients[e.Client.String], e.ID)
		}
		owners[e.ID] = e.Client.String
	}

	for _, s := range servicesData(now) {
		assert.Equal(t, s.ClientID, owners[s.EquipmentID], s.ID)
		assert.True(t, maintenance.Contains(maintenance.ServiceTypes, s.Type), s.ID)
		assert.True(t, maintenance.Contains(maintenance.ServiceStatuses, s.Status), s.ID)
	}
}

func TestUsersData(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range usersData {
		assert.False(t, seen[u.Username], u.Username)
		seen[u.Username] = true
		assert.True(t, maintenance.Contains(maintenance.Roles, u.Role), u.Username)
		assert.Empty(t, u.Password)
	}
	assert.True(t, seen["carlos"])
	assert.True(t, seen["jonathan"])
}
