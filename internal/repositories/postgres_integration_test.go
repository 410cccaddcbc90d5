package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/pkg/database/postgresql"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/types"
)

// Запускается только при заданном TEST_DATABASE_URL.
type PostgresSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	clients   ClientRepositoryInterface
	equipment EquipmentRepositoryInterface
	services  ServiceRepositoryInterface
	users     UserRepositoryInterface
	logs      ErrorLogRepositoryInterface
	tx        TxManagerInterface
}

func TestPostgresSuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	ctx := context.Background()
	logger := zap.NewNop()
	pool, err := postgresql.ConnectDB(ctx, os.Getenv("TEST_DATABASE_URL"), logger)
	s.Require().NoError(err)
	s.Require().NoError(postgresql.Migrate(ctx, pool, "up"))

	s.pool = pool
	s.clients = NewClientRepository(pool, logger)
	s.equipment = NewEquipmentRepository(pool, logger)
	s.services = NewServiceRepository(pool, logger)
	s.users = NewUserRepository(pool, logger)
	s.logs = NewErrorLogRepository(pool, logger)
	s.tx = NewTxManager(pool)
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE clients, equipment, services, users, error_logs")
	s.Require().NoError(err)
}

func (s *PostgresSuite) TearDownSuite() {
	s.pool.Close()
}

func (s *PostgresSuite) TestClientCRUDAndSearch() {
	ctx := context.Background()
	client := &entities.Client{ID: uuid.NewString(), Name: "Café Tulum", Contact: "Ana", IsActive: true, Zone: null.StringFrom("Centro")}
	s.Require().NoError(s.clients.Create(ctx, nil, client))
	s.False(client.CreatedAt.IsZero())

	found, total, err := s.clients.GetAll(ctx, types.Filter{Search: "tulum"})
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Equal("Ana", found[0].Contact)

	_, total, err = s.clients.GetAll(ctx, types.Filter{Filter: map[string]interface{}{"is_active": "false"}})
	s.Require().NoError(err)
	s.Zero(total)

	s.Require().NoError(s.clients.Delete(ctx, nil, client.ID))
	_, err = s.clients.FindByID(ctx, nil, client.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PostgresSuite) TestDetachClientInTransaction() {
	ctx := context.Background()
	clientID := uuid.NewString()
	eq := &entities.Equipment{ID: uuid.NewString(), Type: "Cafetera", Brand: "Rocket", Model: "Appartamento", Status: "asignado", Client: null.StringFrom(clientID)}
	s.Require().NoError(s.equipment.Create(ctx, nil, eq))

	err := s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		n, err := s.equipment.DetachClient(ctx, tx, clientID, "disponible")
		s.Equal(int64(1), n)
		return err
	})
	s.Require().NoError(err)

	got, err := s.equipment.FindByID(ctx, nil, eq.ID)
	s.Require().NoError(err)
	s.False(got.Client.Valid)
	s.Equal("disponible", got.Status)
}

func (s *PostgresSuite) TestServiceFolioIsUnique() {
	ctx := context.Background()
	first := &entities.Service{
		ID: uuid.NewString(), Folio: "482913", ClientID: "c", EquipmentID: "e", Status: "Pendiente",
		DateStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Checklist: map[string]bool{"Limpieza de tolva": true},
		PartsUsed: []entities.Part{{Quantity: 1, Description: "Muela", UnitPrice: 40}},
	}
	s.Require().NoError(s.services.Create(ctx, nil, first))

	second := *first
	second.ID = uuid.NewString()
	s.ErrorIs(s.services.Create(ctx, nil, &second), apperrors.ErrFolioTaken)

	got, err := s.services.FindByID(ctx, nil, first.ID)
	s.Require().NoError(err)
	s.True(got.Checklist["Limpieza de tolva"])
	s.Len(got.PartsUsed, 1)
}

func (s *PostgresSuite) TestSavepointKeepsOuterTransaction() {
	ctx := context.Background()
	err := s.tx.RunInTransaction(ctx, func(tx pgx.Tx) error {
		bad := WithSavepoint(ctx, tx, func(sp pgx.Tx) error {
			_, err := sp.Exec(ctx, "SELECT * FROM no_such_table")
			return err
		})
		s.Error(bad)
		return s.clients.Create(ctx, tx, &entities.Client{ID: uuid.NewString(), Name: "Grano de Oro", IsActive: true})
	})
	s.Require().NoError(err)

	all, err := s.clients.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *PostgresSuite) TestUsersAndErrorLogs() {
	ctx := context.Background()
	s.Require().NoError(s.users.Upsert(ctx, nil, &entities.User{ID: uuid.NewString(), Username: "carlos", FullName: "Carlos Méndez", Role: "tecnico", IsActive: true, Password: "x"}))
	s.Require().NoError(s.users.Upsert(ctx, nil, &entities.User{ID: uuid.NewString(), Username: "luis", FullName: "Luis Ortega", Role: "tecnico", IsActive: false, Password: "x"}))

	techs, err := s.users.FindByRoles(ctx, []string{"tecnico", "administrador"})
	s.Require().NoError(err)
	s.Len(techs, 1)

	_, err = s.users.FindByUsername(ctx, "nobody")
	s.ErrorIs(err, apperrors.ErrUserNotFound)

	older := &entities.ErrorLog{ID: uuid.NewString(), Message: "a", Timestamp: time.Now().Add(-time.Hour)}
	newer := &entities.ErrorLog{ID: uuid.NewString(), Message: "b", Timestamp: time.Now()}
	s.Require().NoError(s.logs.Create(ctx, older))
	s.Require().NoError(s.logs.Create(ctx, newer))
	logs, err := s.logs.FindAll(ctx)
	s.Require().NoError(err)
	s.Equal("b", logs[0].Message)
}
