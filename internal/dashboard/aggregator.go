// Package dashboard считает показатели панели по уже загруженному снимку данных.
// Пакет не обращается к БД и не читает системные часы: now передаётся снаружи.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
)

const (
	// DefaultListLimit - сколько строк показывает каждый список панели.
	DefaultListLimit = 5

	// Месяц приближён 30.44 сутками, календарная арифметика не используется.
	daysPerMonth = 30.44

	ServiceIntervalMonths = 8
	UpcomingWindowMonths  = 2

	dateLayout = "2006-01-02"
)

// Months переводит число месяцев в длительность по приближению 30.44 суток.
func Months(m float64) time.Duration {
	return time.Duration(m * daysPerMonth * 24 * float64(time.Hour))
}

type Snapshot struct {
	Clients   []entities.Client
	Equipment []entities.Equipment
	Services  []entities.Service
	Roster    []entities.User
}

type Options struct {
	Limit              int
	IncludeTechnicians bool
}

type Item struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type Tally struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
}

type Result struct {
	ActiveClients   int `json:"active_clients"`
	EquipmentTotal  int `json:"equipment_total"`
	PendingServices int `json:"pending_services"`

	Upcoming8       []Item `json:"upcoming_8_months"`
	Upcoming2       []Item `json:"upcoming_2_months"`
	Overdue         []Item `json:"overdue"`
	LatestCompleted []Item `json:"latest_completed"`
	RecentEquipment []Item `json:"recent_equipment"`
	Scheduled       []Item `json:"scheduled"`

	ServiceTypes []Bucket `json:"service_types"`
	Zones        []Bucket `json:"zones"`
	Technicians  []Tally  `json:"technicians,omitempty"`
}

type datedItem struct {
	label string
	at    time.Time
}

// Aggregate никогда не возвращает ошибку: записи без нужных полей
// просто не попадают в соответствующий список.
func Aggregate(snap Snapshot, now time.Time, opts Options) Result {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	clients := maintenance.IndexClients(snap.Clients)
	equipment := maintenance.IndexEquipment(snap.Equipment)

	res := Result{
		EquipmentTotal: len(snap.Equipment),
	}
	for _, c := range snap.Clients {
		if c.IsActive {
			res.ActiveClients++
		}
	}
	for _, s := range snap.Services {
		if s.Status == maintenance.ServiceStatusPending {
			res.PendingServices++
		}
	}

	upcoming8, upcoming2, overdue := projectAll(snap, clients, now)
	res.Upcoming8 = toItems(sortAsc(upcoming8), limit)
	res.Upcoming2 = toItems(sortAsc(upcoming2), limit)
	res.Overdue = toItems(sortAsc(overdue), limit)
	res.LatestCompleted = toItems(sortDesc(latestCompleted(snap.Services, clients)), limit)
	res.RecentEquipment = toItems(sortDesc(recentEquipment(snap.Equipment)), limit)
	res.Scheduled = toItems(sortAsc(scheduled(snap.Services, clients, equipment, now)), limit)

	res.ServiceTypes = ServiceTypeHistogram(snap.Services)
	res.Zones = ZoneHistogram(snap.Clients)
	if opts.IncludeTechnicians {
		res.Technicians = TechnicianTallies(snap.Roster, snap.Services)
	}
	return res
}

// ProjectNextService возвращает дату следующего обслуживания. Приоритет базы:
// последний завершённый визит, lastService, дата установки новой машины, дата покупки.
func ProjectNextService(eq entities.Equipment, services []entities.Service) (time.Time, bool) {
	base, ok := baseDate(eq, services)
	if !ok {
		return time.Time{}, false
	}
	return base.Add(Months(ServiceIntervalMonths)), true
}

func baseDate(eq entities.Equipment, services []entities.Service) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, s := range services {
		if s.EquipmentID != eq.ID || s.Status != maintenance.ServiceStatusCompleted || !s.DateEnd.Valid {
			continue
		}
		if !found || s.DateEnd.Time.After(latest) {
			latest = s.DateEnd.Time
			found = true
		}
	}
	switch {
	case found:
		return latest, true
	case eq.LastService.Valid:
		return eq.LastService.Time, true
	case eq.IsNewInstallation && eq.InstallationDate.Valid:
		return eq.InstallationDate.Time, true
	case eq.PurchaseDate.Valid:
		return eq.PurchaseDate.Time, true
	}
	return time.Time{}, false
}

// Projection - результат классификации прогноза.
type Projection int

const (
	ProjectionNone Projection = iota
	ProjectionOverdue
	ProjectionWithinWindow
	ProjectionLater
)

// Classify: просрочено, в ближайшие два месяца (входит и в восьмимесячный список) или позже.
// Верхней границы у восьмимесячного списка нет.
func Classify(next, now time.Time) Projection {
	switch {
	case next.Before(now):
		return ProjectionOverdue
	case !next.After(now.Add(Months(UpcomingWindowMonths))):
		return ProjectionWithinWindow
	default:
		return ProjectionLater
	}
}

func projectAll(snap Snapshot, clients map[string]*entities.Client, now time.Time) (upcoming8, upcoming2, overdue []datedItem) {
	for _, eq := range snap.Equipment {
		next, ok := ProjectNextService(eq, snap.Services)
		if !ok {
			continue
		}
		item := datedItem{
			label: fmt.Sprintf("%s %s (%s)", eq.Brand, eq.Model, maintenance.ClientName(clients, eq.Client.String)),
			at:    next,
		}
		switch Classify(next, now) {
		case ProjectionOverdue:
			overdue = append(overdue, item)
		case ProjectionWithinWindow:
			upcoming2 = append(upcoming2, item)
			upcoming8 = append(upcoming8, item)
		case ProjectionLater:
			upcoming8 = append(upcoming8, item)
		}
	}
	return upcoming8, upcoming2, overdue
}

func latestCompleted(services []entities.Service, clients map[string]*entities.Client) []datedItem {
	var out []datedItem
	for _, s := range services {
		if s.Status != maintenance.ServiceStatusCompleted || !s.DateEnd.Valid {
			continue
		}
		out = append(out, datedItem{
			label: fmt.Sprintf("%s - %s", s.Type, maintenance.ClientName(clients, s.ClientID)),
			at:    s.DateEnd.Time,
		})
	}
	return out
}

// recentEquipment использует дату покупки как замену даты регистрации.
func recentEquipment(equipment []entities.Equipment) []datedItem {
	var out []datedItem
	for _, eq := range equipment {
		if !eq.PurchaseDate.Valid {
			continue
		}
		out = append(out, datedItem{
			label: fmt.Sprintf("%s %s (%s)", eq.Brand, eq.Model, eq.Serial),
			at:    eq.PurchaseDate.Time,
		})
	}
	return out
}

func scheduled(services []entities.Service, clients map[string]*entities.Client, equipment map[string]*entities.Equipment, now time.Time) []datedItem {
	horizon := now.Add(Months(ServiceIntervalMonths))
	var out []datedItem
	for _, s := range services {
		if !maintenance.Contains(maintenance.OpenServiceStatuses, s.Status) || s.DateStart.IsZero() || s.DateStart.After(horizon) {
			continue
		}
		out = append(out, datedItem{
			label: fmt.Sprintf("%s (%s)", maintenance.EquipmentLabel(equipment, s.EquipmentID), maintenance.ClientName(clients, s.ClientID)),
			at:    s.DateStart,
		})
	}
	return out
}

// TechnicianTallies идёт по ростеру; визиты с неизвестным техником не учитываются.
func TechnicianTallies(roster []entities.User, services []entities.Service) []Tally {
	tallies := make([]Tally, 0, len(roster))
	index := make(map[string]int, len(roster))
	for _, u := range roster {
		if _, dup := index[u.FullName]; dup || u.FullName == "" {
			continue
		}
		index[u.FullName] = len(tallies)
		tallies = append(tallies, Tally{Name: u.FullName})
	}
	for i := range services {
		pos, ok := index[services[i].ResolvedTechnician()]
		if !ok {
			continue
		}
		switch services[i].Status {
		case maintenance.ServiceStatusCompleted:
			tallies[pos].Completed++
		case maintenance.ServiceStatusPending, maintenance.ServiceStatusInProgress:
			tallies[pos].Pending++
		}
	}
	return tallies
}

func ServiceTypeHistogram(services []entities.Service) []Bucket {
	counts := make(map[string]int)
	for _, s := range services {
		if s.Type == "" {
			continue
		}
		counts[s.Type]++
	}
	return toBuckets(counts)
}

func ZoneHistogram(clients []entities.Client) []Bucket {
	counts := make(map[string]int)
	for _, c := range clients {
		zone := c.Zone.String
		if !c.Zone.Valid || zone == "" {
			zone = maintenance.UnknownZone
		}
		counts[zone]++
	}
	return toBuckets(counts)
}

func toBuckets(counts map[string]int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for k, v := range counts {
		out = append(out, Bucket{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func sortAsc(items []datedItem) []datedItem {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.Before(items[j].at)
		}
		return items[i].label < items[j].label
	})
	return items
}

func sortDesc(items []datedItem) []datedItem {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.After(items[j].at)
		}
		return items[i].label < items[j].label
	})
	return items
}

func toItems(items []datedItem, limit int) []Item {
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, Item{Label: it.label, Date: it.at.Format(dateLayout)})
	}
	return out
}
