package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func machine(id, brand, clientID string) entities.Equipment {
	return entities.Equipment{
		ID:     id,
		Type:   maintenance.EquipmentCoffeeMachine,
		Brand:  brand,
		Model:  "Linea",
		Serial: "S-" + id,
		Client: null.NewString(clientID, clientID != ""),
	}
}

func TestMonthsApproximation(t *testing.T) {
	assert.InDelta(t, 243.52, Months(8).Hours()/24, 1e-6)
	assert.InDelta(t, 60.88, Months(2).Hours()/24, 1e-6)
}

func TestClassify_WindowEdges(t *testing.T) {
	now := day("2025-06-15").Add(10 * time.Hour)
	window := Months(UpcomingWindowMonths)

	cases := []struct {
		name string
		next time.Time
		want Projection
	}{
		{"за наносекунду до now", now.Add(-time.Nanosecond), ProjectionOverdue},
		{"ровно now", now, ProjectionWithinWindow},
		{"ровно конец окна", now.Add(window), ProjectionWithinWindow},
		{"сразу после окна", now.Add(window + time.Nanosecond), ProjectionLater},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.next, now))
		})
	}
}

func TestProjection_OverdueFromLastService(t *testing.T) {
	eq := machine("e1", "La Marzocco", "c1")
	eq.LastService = null.TimeFrom(day("2024-01-01"))
	now := day("2024-09-15")

	next, ok := ProjectNextService(eq, nil)
	require.True(t, ok)
	assert.Equal(t, "2024-08-31", next.Format(dateLayout))
	assert.Equal(t, ProjectionOverdue, Classify(next, now))

	res := Aggregate(Snapshot{
		Clients:   []entities.Client{{ID: "c1", Name: "Café Tulum"}},
		Equipment: []entities.Equipment{eq},
	}, now, Options{})
	require.Len(t, res.Overdue, 1)
	assert.Equal(t, Item{Label: "La Marzocco Linea (Café Tulum)", Date: "2024-08-31"}, res.Overdue[0])
	assert.Empty(t, res.Upcoming2)
	assert.Empty(t, res.Upcoming8)
}

func TestProjection_EightMonthBucketOnly(t *testing.T) {
	eq := machine("e1", "Rancilio", "")
	eq.LastService = null.TimeFrom(day("2024-06-01"))

	res := Aggregate(Snapshot{Equipment: []entities.Equipment{eq}}, day("2024-09-15"), Options{})
	require.Len(t, res.Upcoming8, 1)
	assert.Empty(t, res.Upcoming2)
	assert.Empty(t, res.Overdue)
	assert.Equal(t, "Rancilio Linea (N/A)", res.Upcoming8[0].Label)
}

func TestProjection_WithinWindowGoesToBothLists(t *testing.T) {
	eq := machine("e1", "Rancilio", "")
	eq.LastService = null.TimeFrom(day("2024-02-01"))

	res := Aggregate(Snapshot{Equipment: []entities.Equipment{eq}}, day("2024-09-15"), Options{})
	assert.Len(t, res.Upcoming2, 1)
	assert.Len(t, res.Upcoming8, 1)
	assert.Empty(t, res.Overdue)
}

func TestProjection_CompletedServiceBeatsLastService(t *testing.T) {
	eq := machine("x", "Nuova Simonelli", "")
	eq.LastService = null.TimeFrom(day("2024-01-01"))
	services := []entities.Service{
		{ID: "s1", EquipmentID: "x", Status: maintenance.ServiceStatusCompleted, DateEnd: null.TimeFrom(day("2024-05-01"))},
		{ID: "s2", EquipmentID: "x", Status: maintenance.ServiceStatusCompleted, DateEnd: null.TimeFrom(day("2024-03-01"))},
		{ID: "s3", EquipmentID: "x", Status: maintenance.ServiceStatusPending, DateEnd: null.TimeFrom(day("2024-08-01"))},
		{ID: "s4", EquipmentID: "other", Status: maintenance.ServiceStatusCompleted, DateEnd: null.TimeFrom(day("2024-08-01"))},
	}

	next, ok := ProjectNextService(eq, services)
	require.True(t, ok)
	assert.Equal(t, day("2024-05-01").Add(Months(8)), next)
}

func TestProjection_BaseDateFallbacks(t *testing.T) {
	install := machine("a", "A", "")
	install.IsNewInstallation = true
	install.InstallationDate = null.TimeFrom(day("2024-03-01"))
	install.PurchaseDate = null.TimeFrom(day("2023-01-01"))

	notNew := machine("b", "B", "")
	notNew.InstallationDate = null.TimeFrom(day("2024-03-01"))
	notNew.PurchaseDate = null.TimeFrom(day("2023-01-01"))

	next, ok := ProjectNextService(install, nil)
	require.True(t, ok)
	assert.Equal(t, day("2024-03-01").Add(Months(8)), next)

	next, ok = ProjectNextService(notNew, nil)
	require.True(t, ok)
	assert.Equal(t, day("2023-01-01").Add(Months(8)), next)

	_, ok = ProjectNextService(machine("c", "C", ""), nil)
	assert.False(t, ok)
}

func TestAggregate_ListsCappedAndSorted(t *testing.T) {
	now := day("2024-09-15")
	var equipment []entities.Equipment
	var services []entities.Service
	for i := 0; i < 8; i++ {
		eq := machine(fmt.Sprintf("e%d", i), fmt.Sprintf("Brand%d", i), "")
		eq.PurchaseDate = null.TimeFrom(day("2024-01-01").AddDate(0, 0, i*7))
		eq.LastService = null.TimeFrom(day("2023-06-01").AddDate(0, 0, i*3))
		equipment = append(equipment, eq)
		services = append(services, entities.Service{
			ID:       fmt.Sprintf("s%d", i),
			Type:     maintenance.ServicePreventive,
			Status:   maintenance.ServiceStatusCompleted,
			DateEnd:  null.TimeFrom(day("2022-01-01").AddDate(0, i, 0)),
			ClientID: "missing",
		})
	}

	res := Aggregate(Snapshot{Equipment: equipment, Services: services}, now, Options{})

	for _, list := range [][]Item{res.Overdue, res.LatestCompleted, res.RecentEquipment} {
		assert.Len(t, list, DefaultListLimit)
	}
	assertSorted(t, res.Overdue, true)
	assertSorted(t, res.LatestCompleted, false)
	assertSorted(t, res.RecentEquipment, false)
	assert.Equal(t, "Mantenimiento Preventivo - N/A", res.LatestCompleted[0].Label)
	assert.Equal(t, "2022-08-01", res.LatestCompleted[0].Date)
	assert.Equal(t, "Brand7 Linea (S-e7)", res.RecentEquipment[0].Label)

	custom := Aggregate(Snapshot{Equipment: equipment, Services: services}, now, Options{Limit: 2})
	assert.Len(t, custom.RecentEquipment, 2)
}

func assertSorted(t *testing.T, items []Item, ascending bool) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		if ascending {
			assert.LessOrEqual(t, items[i-1].Date, items[i].Date)
		} else {
			assert.GreaterOrEqual(t, items[i-1].Date, items[i].Date)
		}
	}
}

func TestAggregate_Counters(t *testing.T) {
	res := Aggregate(Snapshot{
		Clients: []entities.Client{{ID: "1", IsActive: true}, {ID: "2"}, {ID: "3", IsActive: true}},
		Equipment: []entities.Equipment{
			machine("a", "A", ""), machine("b", "B", ""),
		},
		Services: []entities.Service{
			{Status: maintenance.ServiceStatusPending},
			{Status: maintenance.ServiceStatusInProgress},
			{Status: maintenance.ServiceStatusPending},
		},
	}, day("2024-09-15"), Options{})

	assert.Equal(t, 2, res.ActiveClients)
	assert.Equal(t, 2, res.EquipmentTotal)
	assert.Equal(t, 2, res.PendingServices)
}

func TestTechnicianTallies(t *testing.T) {
	roster := []entities.User{
		{FullName: "Carlos Hernandez Valencia"},
		{FullName: "Jonathan Valencia Quintal"},
	}
	services := []entities.Service{
		{Technician: "Carlos Hernandez Valencia", Status: maintenance.ServiceStatusCompleted},
		{Technician: "Jonathan Valencia Quintal", AssignedTechnician: "Carlos Hernandez Valencia", Status: maintenance.ServiceStatusInProgress},
		{Technician: "Jonathan Valencia Quintal", Status: maintenance.ServiceStatusPending},
		{Technician: "Jonathan Valencia Quintal", Status: maintenance.ServiceStatusCancelled},
		{Technician: "Alguien Externo", Status: maintenance.ServiceStatusCompleted},
	}

	tallies := TechnicianTallies(roster, services)
	assert.Equal(t, []Tally{
		{Name: "Carlos Hernandez Valencia", Completed: 1, Pending: 1},
		{Name: "Jonathan Valencia Quintal", Completed: 0, Pending: 1},
	}, tallies)

	res := Aggregate(Snapshot{Roster: roster, Services: services}, day("2024-09-15"), Options{})
	assert.Nil(t, res.Technicians)
	res = Aggregate(Snapshot{Roster: roster, Services: services}, day("2024-09-15"), Options{IncludeTechnicians: true})
	assert.Len(t, res.Technicians, 2)
}

func TestHistograms(t *testing.T) {
	zones := ZoneHistogram([]entities.Client{
		{ID: "1"},
		{ID: "2", Zone: null.StringFrom("Tulum")},
		{ID: "3", Zone: null.StringFrom("")},
		{ID: "4", Zone: null.StringFrom("Tulum")},
		{ID: "5", Zone: null.StringFrom("Cancún")},
	})
	assert.Equal(t, []Bucket{
		{Key: "Desconocida", Count: 2},
		{Key: "Tulum", Count: 2},
		{Key: "Cancún", Count: 1},
	}, zones)

	types := ServiceTypeHistogram([]entities.Service{
		{Type: maintenance.ServiceGeneral},
		{Type: ""},
		{Type: maintenance.ServiceGeneral},
		{Type: maintenance.ServiceReconstruction},
	})
	assert.Equal(t, []Bucket{
		{Key: maintenance.ServiceGeneral, Count: 2},
		{Key: maintenance.ServiceReconstruction, Count: 1},
	}, types)
}

func TestAggregate_Scheduled(t *testing.T) {
	now := day("2024-09-15")
	eq := machine("e1", "Mazzer", "c1")
	res := Aggregate(Snapshot{
		Clients:   []entities.Client{{ID: "c1", Name: "Café Tulum"}},
		Equipment: []entities.Equipment{eq},
		Services: []entities.Service{
			{ID: "1", ClientID: "c1", EquipmentID: "e1", Status: maintenance.ServiceStatusPending, DateStart: day("2024-10-01")},
			{ID: "2", ClientID: "c1", EquipmentID: "e1", Status: maintenance.ServiceStatusInProgress, DateStart: day("2024-09-20")},
			{ID: "3", ClientID: "c1", EquipmentID: "e1", Status: maintenance.ServiceStatusCompleted, DateStart: day("2024-09-21")},
			{ID: "4", ClientID: "c1", EquipmentID: "e1", Status: maintenance.ServiceStatusPending, DateStart: day("2026-01-01")},
		},
	}, now, Options{})

	assert.Equal(t, []Item{
		{Label: "Mazzer Linea (Café Tulum)", Date: "2024-09-20"},
		{Label: "Mazzer Linea (Café Tulum)", Date: "2024-10-01"},
	}, res.Scheduled)
}
