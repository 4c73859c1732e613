package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zoomieband/internal/adapters/storage/postgres"
	"zoomieband/internal/adapters/storage/sqlite"
	"zoomieband/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the SQL schema for the configured storage driver",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var version string
		switch cfg.Storage.Driver {
		case config.DriverPostgres:
			db, err := postgres.Open(ctx, cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()

			if version, err = postgres.Migrate(ctx, db); err != nil {
				return err
			}
		case config.DriverSQLite:
			// Open ya aplica las migraciones
			db, err := sqlite.Open(ctx, cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer db.Close()

			if version, err = sqlite.SchemaVersion(ctx, db); err != nil {
				return err
			}
		default:
			log.Info("nothing to migrate", map[string]any{"storage": cfg.Storage.Driver})
			return nil
		}

		log.Info("schema up to date", map[string]any{"storage": cfg.Storage.Driver, "version": version})
		return nil
	},
}
