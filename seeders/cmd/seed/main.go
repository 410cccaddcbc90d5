package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kaawa-maintenance/pkg/config"
	"kaawa-maintenance/pkg/database/postgresql"
	applogger "kaawa-maintenance/pkg/logger"
	"kaawa-maintenance/seeders"
)

// passwordEnv - откуда берётся пароль учётных записей, если флаг не задан.
const passwordEnv = "SEED_USER_PASSWORD"

type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "seed",
		Short:         "Миграции и наполнение базы данных",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.New()
			a.logger = applogger.NewLogger(a.cfg.Log)
		},
	}

	migrateCmd := &cobra.Command{
		Use:       "migrate <up|down|status|version>",
		Short:     "Управление миграциями goose",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.migrate(cmd.Context(), args[0])
		},
	}

	var password string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Наполнение данными",
	}
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Учётные записи администраторов и техников",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seedUsers(cmd.Context(), password)
		},
	}
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Демонстрационные клиенты, оборудование и визиты",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.seedDemo(cmd.Context())
		},
	}
	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Миграции, пользователи и демо-данные",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.migrate(cmd.Context(), "up"); err != nil {
				return err
			}
			if err := a.seedUsers(cmd.Context(), password); err != nil {
				return err
			}
			return a.seedDemo(cmd.Context())
		},
	}
	seedCmd.PersistentFlags().StringVar(&password, "password", "", "пароль учётных записей (по умолчанию $"+passwordEnv+")")
	seedCmd.AddCommand(usersCmd, demoCmd, allCmd)

	root.AddCommand(migrateCmd, seedCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func (a *app) migrate(ctx context.Context, command string) error {
	pool, err := postgresql.ConnectDB(ctx, a.cfg.Postgres.DSN, a.logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	a.logger.Info("Миграции", zap.String("command", command))
	return postgresql.Migrate(ctx, pool, command)
}

func (a *app) seedUsers(ctx context.Context, password string) error {
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if password == "" {
		return fmt.Errorf("укажите --password или переменную %s", passwordEnv)
	}

	pool, err := postgresql.ConnectDB(ctx, a.cfg.Postgres.DSN, a.logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	a.logger.Info("Наполнение пользователей")
	return seeders.SeedUsers(ctx, pool, password, a.logger)
}

func (a *app) seedDemo(ctx context.Context) error {
	pool, err := postgresql.ConnectDB(ctx, a.cfg.Postgres.DSN, a.logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	a.logger.Info("Наполнение демо-данных")
	return seeders.SeedDemo(ctx, pool, time.Now(), a.logger)
}
