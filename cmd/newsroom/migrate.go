package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/newsroom/pkg/logger"
	"github.com/dmitrymomot/newsroom/pkg/pg"
	"github.com/dmitrymomot/newsroom/repository"
)

func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply every pending migration to the PostgreSQL database named by PG_CONN_URL.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	pgCfg, err := load[pg.Config]()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logCfg, err := load[logger.Config]()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := cmd.Context()

	cmd.Println("Connecting to database...")
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	cmd.Println("Running migrations...")
	log := logger.New(append(logger.FromConfig(logCfg), logger.WithOutput(cmd.ErrOrStderr()))...)
	if err := pg.Migrate(ctx, pool, repository.Migrations, repository.MigrationsDir, pgCfg, log); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
