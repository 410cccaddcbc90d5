package routes

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/maintenance"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/internal/roster"
	"kaawa-maintenance/internal/services"
	"kaawa-maintenance/pkg/config"
	"kaawa-maintenance/pkg/filestorage"
	"kaawa-maintenance/pkg/middleware"
	"kaawa-maintenance/pkg/service"
)

// Services - все сервисы, которые обслуживают HTTP-маршруты.
type Services struct {
	Auth        services.AuthServiceInterface
	User        services.UserServiceInterface
	Client      services.ClientServiceInterface
	Equipment   services.EquipmentServiceInterface
	Maintenance services.MaintenanceServiceInterface
	Dashboard   services.DashboardServiceInterface
	Report      services.ReportServiceInterface
	ErrorLog    services.ErrorLogServiceInterface
	Transfer    services.TransferServiceInterface
}

// NewServices собирает репозитории и сервисы поверх Postgres и Redis.
func NewServices(
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	users roster.Provider,
	jwtSvc service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) (*Services, error) {
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	txManager := repositories.NewTxManager(dbConn)
	clock := services.Clock(time.Now)
	folios := maintenance.NewRandomFolioGenerator()

	// --- 1. РЕПОЗИТОРИИ ---
	clientRepo := repositories.NewClientRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	serviceRepo := repositories.NewServiceRepository(dbConn, logger)
	errorLogRepo := repositories.NewErrorLogRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	return &Services{
		Auth:        services.NewAuthService(users, cacheRepo, jwtSvc, cfg.Auth, clock, logger),
		User:        services.NewUserService(users, logger),
		Client:      services.NewClientService(txManager, clientRepo, equipmentRepo, serviceRepo, logger),
		Equipment:   services.NewEquipmentService(equipmentRepo, clientRepo, serviceRepo, logger),
		Maintenance: services.NewMaintenanceService(serviceRepo, equipmentRepo, clientRepo, folios, logger),
		Dashboard: services.NewDashboardService(
			clientRepo, equipmentRepo, serviceRepo, users, cfg.Dashboard.ListLimit, clock, logger,
		),
		Report:   services.NewReportService(clientRepo, equipmentRepo, serviceRepo, errorLogRepo, clock, logger),
		ErrorLog: services.NewErrorLogService(errorLogRepo, clock, logger),
		Transfer: services.NewTransferService(
			txManager, clientRepo, equipmentRepo, serviceRepo, fileStorage, folios, logger,
		),
	}, nil
}

func InitRouter(
	e *echo.Echo,
	svc *Services,
	jwtSvc service.JWTService,
	users roster.Provider,
	refreshTokenTTL time.Duration,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, users, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, svc.Auth, refreshTokenTTL, logger)
	runClientRouter(secureGroup, svc.Client, logger, authMW)
	runEquipmentRouter(secureGroup, svc.Equipment, logger, authMW)
	runServiceRouter(secureGroup, svc.Maintenance, logger, authMW)
	runDashboardRouter(secureGroup, svc.Dashboard, logger, authMW)
	runReportRouter(secureGroup, svc.Report, logger, authMW)
	runErrorLogRouter(secureGroup, svc.ErrorLog, logger, authMW)
	runTransferRouter(secureGroup, svc.Transfer, logger, authMW)
	runUserRouter(secureGroup, svc.User, logger, authMW)

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}
