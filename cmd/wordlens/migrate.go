package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlens/internal/adapter/postgres"
	"github.com/heartmarshall/wordlens/internal/app"
	"github.com/heartmarshall/wordlens/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("migrate: database.dsn is required")
			}

			logger := app.NewLogger(cfg.Log)
			return postgres.Migrate(cmd.Context(), cfg.Database.DSN, logger)
		},
	}
}
