package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mxdserver/mxd/internal/config"
	"github.com/mxdserver/mxd/internal/logger"
	"github.com/mxdserver/mxd/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations for the configured store.

This applies pending schema changes to the configured database (sqlite or
postgres). It is safe to run repeatedly; opening the store triggers
auto-migration.

Examples:
  # Run migrations with the default config
  mxd migrate

  # Run migrations against a specific config file
  mxd migrate --config /etc/mxd/config.yaml`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	logger.Info("running database migrations", "type", cfg.Database.Type)

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer func() { _ = st.Close() }()

	if _, err := st.ListUsers(context.Background()); err != nil {
		return fmt.Errorf("migration verification failed: %w", err)
	}

	fmt.Printf("migrations completed successfully (database type: %s)\n", cfg.Database.Type)
	return nil
}
