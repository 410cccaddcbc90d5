package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"

	"kaawa-maintenance/internal/authz"
	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/maintenance"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
	"kaawa-maintenance/pkg/utils"
)

var testNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func actorCtx(id, role, fullName string) context.Context {
	user := &entities.User{ID: id, Username: id, FullName: fullName, Role: role, IsActive: true}
	return utils.WithActor(context.Background(), user, authz.PermissionsForRole(role))
}

// store - общая память для фейковых репозиториев.
type store struct {
	mu        sync.Mutex
	clients   map[string]entities.Client
	equipment map[string]entities.Equipment
	services  map[string]entities.Service
	errorLogs []entities.ErrorLog
	failWith  error
}

func newStore() *store {
	return &store{
		clients:   map[string]entities.Client{},
		equipment: map[string]entities.Equipment{},
		services:  map[string]entities.Service{},
	}
}

func sortedValues[T any](m map[string]T, id func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

// --- клиенты ---

type fakeClientRepo struct{ s *store }

func (r fakeClientRepo) all() []entities.Client {
	return sortedValues(r.s.clients, func(c entities.Client) string { return c.ID })
}

func (r fakeClientRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.Client, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.all()
	return all, uint64(len(all)), r.s.failWith
}

func (r fakeClientRepo) FindAll(ctx context.Context) ([]entities.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(), r.s.failWith
}

func (r fakeClientRepo) FindActive(ctx context.Context) ([]entities.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Client
	for _, c := range r.all() {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r fakeClientRepo) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r fakeClientRepo) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.clients[id]
	return ok, nil
}

func (r fakeClientRepo) Create(ctx context.Context, tx pgx.Tx, c *entities.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; ok {
		return apperrors.ErrConflict
	}
	c.CreatedAt, c.UpdatedAt = testNow, testNow
	r.s.clients[c.ID] = *c
	return nil
}

func (r fakeClientRepo) Update(ctx context.Context, tx pgx.Tx, c *entities.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.clients[c.ID] = *c
	return nil
}

func (r fakeClientRepo) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}

// --- оборудование ---

type fakeEquipmentRepo struct{ s *store }

func (r fakeEquipmentRepo) all() []entities.Equipment {
	return sortedValues(r.s.equipment, func(e entities.Equipment) string { return e.ID })
}

func (r fakeEquipmentRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.all()
	return all, uint64(len(all)), r.s.failWith
}

func (r fakeEquipmentRepo) FindAll(ctx context.Context) ([]entities.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(), r.s.failWith
}

func (r fakeEquipmentRepo) FindByClient(ctx context.Context, clientID string) ([]entities.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entities.Equipment
	for _, e := range r.all() {
		if e.Client.String == clientID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakeEquipmentRepo) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r fakeEquipmentRepo) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.equipment[id]
	return ok, nil
}

func (r fakeEquipmentRepo) Create(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[e.ID]; ok {
		return apperrors.ErrConflict
	}
	e.CreatedAt, e.UpdatedAt = testNow, testNow
	r.s.equipment[e.ID] = *e
	return nil
}

func (r fakeEquipmentRepo) Update(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[e.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.equipment[e.ID] = *e
	return nil
}

func (r fakeEquipmentRepo) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.equipment, id)
	return nil
}

func (r fakeEquipmentRepo) DetachClient(ctx context.Context, tx pgx.Tx, clientID string, status string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, e := range r.s.equipment {
		if e.Client.String == clientID {
			e.Client.Valid, e.Client.String = false, ""
			e.Status = status
			r.s.equipment[id] = e
			n++
		}
	}
	return n, nil
}

// --- визиты ---

type fakeServiceRepo struct{ s *store }

func (r fakeServiceRepo) all() []entities.Service {
	return sortedValues(r.s.services, func(s entities.Service) string { return s.ID })
}

func (r fakeServiceRepo) filtered(keep func(entities.Service) bool) []entities.Service {
	var out []entities.Service
	for _, s := range r.all() {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (r fakeServiceRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.Service, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.all()
	return all, uint64(len(all)), r.s.failWith
}

func (r fakeServiceRepo) FindAll(ctx context.Context) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.all(), r.s.failWith
}

func (r fakeServiceRepo) FindByEquipment(ctx context.Context, equipmentID string) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filtered(func(s entities.Service) bool { return s.EquipmentID == equipmentID }), nil
}

func (r fakeServiceRepo) FindByClient(ctx context.Context, clientID string) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filtered(func(s entities.Service) bool { return s.ClientID == clientID }), nil
}

func (r fakeServiceRepo) FindStartedBetween(ctx context.Context, from, to time.Time) ([]entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filtered(func(s entities.Service) bool {
		return !s.DateStart.Before(from) && !s.DateStart.After(to)
	}), nil
}

func (r fakeServiceRepo) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	s, ok := r.s.services[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r fakeServiceRepo) Exists(ctx context.Context, tx pgx.Tx, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.services[id]
	return ok, nil
}

func (r fakeServiceRepo) folioTaken(folio, exceptID string) bool {
	for id, s := range r.s.services {
		if s.Folio == folio && id != exceptID {
			return true
		}
	}
	return false
}

func (r fakeServiceRepo) Create(ctx context.Context, tx pgx.Tx, s *entities.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.folioTaken(s.Folio, "") {
		return fmt.Errorf("фолио %s: %w", s.Folio, apperrors.ErrFolioTaken)
	}
	if _, ok := r.s.services[s.ID]; ok {
		return apperrors.ErrConflict
	}
	s.CreatedAt, s.UpdatedAt = testNow, testNow
	r.s.services[s.ID] = *s
	return nil
}

func (r fakeServiceRepo) Update(ctx context.Context, tx pgx.Tx, s *entities.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[s.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if r.folioTaken(s.Folio, s.ID) {
		return fmt.Errorf("фолио %s: %w", s.Folio, apperrors.ErrFolioTaken)
	}
	r.s.services[s.ID] = *s
	return nil
}

func (r fakeServiceRepo) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.services, id)
	return nil
}

// --- журнал ошибок ---

type fakeErrorLogRepo struct{ s *store }

func (r fakeErrorLogRepo) Create(ctx context.Context, log *entities.ErrorLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.errorLogs = append(r.s.errorLogs, *log)
	return nil
}

func (r fakeErrorLogRepo) GetAll(ctx context.Context, filter types.Filter) ([]entities.ErrorLog, uint64, error) {
	logs, _ := r.FindAll(ctx)
	return logs, uint64(len(logs)), nil
}

func (r fakeErrorLogRepo) FindAll(ctx context.Context) ([]entities.ErrorLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]entities.ErrorLog(nil), r.s.errorLogs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// --- транзакции, фолио ---

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

func noSavepoint(ctx context.Context, tx pgx.Tx, fn func(tx pgx.Tx) error) error {
	return fn(tx)
}

// seqFolios выдаёт значения по порядку, последнее повторяется.
type seqFolios struct {
	values []string
	next   int
}

func (g *seqFolios) Next() string {
	v := g.values[g.next]
	if g.next < len(g.values)-1 {
		g.next++
	}
	return v
}

const (
	adminName = "Jonathan Valencia Quintal"
	techName  = "Carlos Hernandez Valencia"
)

func adminCtx() context.Context {
	return actorCtx("jonathan", maintenance.RoleAdmin, adminName)
}

func techCtx() context.Context {
	return actorCtx("carlos", maintenance.RoleTechnician, techName)
}

// seededStore: c1 активный с двумя машинами, c2 неактивный, e2 свободна.
// Статусы выводятся из привязки к клиенту, как в EquipmentService.
func seededStore() *store {
	s := newStore()
	s.clients["c1"] = entities.Client{ID: "c1", Name: "Cafetería El Grano", Contact: "Juan Pérez", IsActive: true, Zone: null.StringFrom("Centro")}
	s.clients["c2"] = entities.Client{ID: "c2", Name: "Barra Sur", Contact: "Ana", IsActive: false}
	s.equipment["e1"] = entities.Equipment{
		ID: "e1", Type: maintenance.EquipmentCoffeeMachine, Brand: "La Marzocco", Model: "Linea Mini", Serial: "LM001",
		CurrentStatus: maintenance.ConditionNew, CurrentCondition: "Operando sin fallas", Client: null.StringFrom("c1"),
	}
	s.equipment["e2"] = entities.Equipment{
		ID: "e2", Type: maintenance.EquipmentGrinder, Brand: "Mahlkönig", Model: "E65S", Serial: "MK9",
	}
	s.equipment["e3"] = entities.Equipment{
		ID: "e3", Type: maintenance.EquipmentCoffeeMachine, Brand: "Rancilio", Model: "Silvia", Serial: "RS7",
		CurrentStatus: maintenance.ConditionUsed, Client: null.StringFrom("c1"),
	}
	for id, eq := range s.equipment {
		eq.Status = maintenance.DeriveStatus(eq.Client.String)
		s.equipment[id] = eq
	}
	return s
}
