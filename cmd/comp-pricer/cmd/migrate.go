package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/comp-pricer/internal/config"
	"github.com/donaldgifford/comp-pricer/internal/store"
	"github.com/donaldgifford/comp-pricer/pkg/logger"
)

func migrateCmd() *cobra.Command {
	var list bool

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Example: `  comp-pricer migrate --config config.yaml
  comp-pricer migrate --list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := store.MigrationNames()
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Println(n)
				}
				return nil
			}
			return runMigrate(cmd.Context())
		},
	}

	c.Flags().BoolVar(&list, "list", false, "list embedded migrations without applying them")
	return c
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Database.Enabled() {
		return errors.New("database.host is not configured")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	log.Info("running migrations", "host", cfg.Database.Host, "database", cfg.Database.Name)

	if err := store.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	log.Info("migrations complete")
	return nil
}
