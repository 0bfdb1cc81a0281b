package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlens/internal/adapter/postgres"
	"github.com/heartmarshall/wordlens/internal/adapter/postgres/preference"
	"github.com/heartmarshall/wordlens/internal/app"
	"github.com/heartmarshall/wordlens/internal/config"
)

type pruneOptions struct {
	olderThan time.Duration
	timeout   time.Duration
}

// newPruneCmd removes visitors whose cookie can no longer be presented.
// It is meant to be run from cron against the PostgreSQL store.
func newPruneCmd() *cobra.Command {
	opts := &pruneOptions{}

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete visitors and their preferences after long inactivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.olderThan, "older-than", 0, "Inactivity threshold (default: session.cookie_ttl)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Give up after this long")

	return cmd
}

func runPrune(cmd *cobra.Command, opts *pruneOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("prune: database.dsn is required")
	}
	logger := app.NewLogger(cfg.Log)

	olderThan := opts.olderThan
	if olderThan <= 0 {
		olderThan = cfg.Session.CookieTTL
	}
	threshold := time.Now().Add(-olderThan)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := preference.New(pool, postgres.NewTxManager(pool))
	removed, err := repo.PruneVisitors(ctx, threshold)
	if err != nil {
		logger.ErrorContext(ctx, "prune failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		return err
	}

	logger.InfoContext(ctx, "prune completed",
		slog.Int64("removed", removed),
		slog.Time("threshold", threshold),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d inactive visitors.\n", removed)
	return nil
}
