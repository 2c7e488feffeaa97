package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"timeos/internal/config"
	"timeos/internal/migrate"
)

// NewMigrateCommand creates the migrate command, applying pending schema
// migrations and exiting. app.New also migrates on startup; this exists
// for deploy pipelines that migrate before rolling the service.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			return migrate.Run(ctx, cfg.MySQL.DSN, logger)
		},
	}
}
