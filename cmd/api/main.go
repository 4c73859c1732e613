// @title ZoomieBand API
// @version 1.0
// @description Perfil de la mascota, sesión y actividad.
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zoomieband/internal/config"
	"zoomieband/internal/platform/logger"
)

var (
	cfg config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "ZoomieBand API server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.App.Name,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	// sin subcomando arranca el server, como antes
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
