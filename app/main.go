package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"kaawa-maintenance/internal/entities"
	"kaawa-maintenance/internal/events"
	"kaawa-maintenance/internal/listeners"
	"kaawa-maintenance/internal/repositories"
	"kaawa-maintenance/internal/roster"
	"kaawa-maintenance/internal/routes"
	"kaawa-maintenance/pkg/config"
	"kaawa-maintenance/pkg/database/postgresql"
	apperrors "kaawa-maintenance/pkg/errors"
	"kaawa-maintenance/pkg/eventbus"
	applogger "kaawa-maintenance/pkg/logger"
	appmiddleware "kaawa-maintenance/pkg/middleware"
	"kaawa-maintenance/pkg/service"
	"kaawa-maintenance/pkg/utils"
	"kaawa-maintenance/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx := context.Background()

	// 2. Базы данных
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к Postgres", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, dbConn, "up"); err != nil {
			logger.Fatal("ошибка применения миграций", zap.Error(err))
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()

	// 3. Пользователи и сервисы
	users, err := newRosterProvider(cfg, dbConn, logger)
	if err != nil {
		logger.Fatal("не удалось загрузить пользователей", zap.Error(err))
	}
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)

	svc, err := routes.NewServices(dbConn, redisClient, users, jwtSvc, cfg, logger)
	if err != nil {
		logger.Fatal("не удалось создать сервисы", zap.Error(err))
	}

	bus := eventbus.New(logger)
	listeners.NewErrorLogListener(svc.ErrorLog, logger).Register(bus)

	// 4. Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			bus.Publish(c.Request().Context(), events.ErrorOccurredEvent{Log: panicLog(c, err, stack)})
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))
	e.Use(appmiddleware.RequestLogger(logger))

	routes.InitRouter(e, svc, jwtSvc, users, cfg.JWT.RefreshTokenTTL, logger)

	// 5. Запуск и корректная остановка
	go func() {
		logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}

func newRosterProvider(cfg *config.Config, dbConn *pgxpool.Pool, logger *zap.Logger) (roster.Provider, error) {
	if cfg.Auth.Provider == "memory" {
		return roster.LoadMemoryProvider(cfg.Auth.UsersFile)
	}
	return roster.NewRepositoryProvider(repositories.NewUserRepository(dbConn, logger), logger), nil
}

func panicLog(c echo.Context, err error, stack []byte) entities.ErrorLog {
	entry := entities.ErrorLog{
		Message:   err.Error(),
		URL:       c.Request().RequestURI,
		UserAgent: c.Request().UserAgent(),
		Stack:     string(stack),
	}
	if actor, actorErr := utils.GetActorFromCtx(c.Request().Context()); actorErr == nil {
		entry.User = actor.FullName
	}
	return entry
}
