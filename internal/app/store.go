package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/internal/adapter/memory"
	"github.com/heartmarshall/wordlens/internal/adapter/postgres"
	"github.com/heartmarshall/wordlens/internal/adapter/postgres/preference"
	"github.com/heartmarshall/wordlens/internal/config"
)

// preferenceStore is what the services and health checks need from a
// preference backend.
type preferenceStore interface {
	Get(ctx context.Context, visitorID uuid.UUID, key string) (string, error)
	GetAll(ctx context.Context, visitorID uuid.UUID) (map[string]string, error)
	Set(ctx context.Context, visitorID uuid.UUID, key, value string) error
	Touch(ctx context.Context, visitorID uuid.UUID) error
	Ping(ctx context.Context) error
}

// openStore builds the backend selected by cfg.Store.Driver. The returned
// close func releases its resources and is never nil.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (preferenceStore, func(), error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case config.StorePostgres:
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, nil, fmt.Errorf("app: store: %w", err)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("app: store: %w", err)
		}
		logger.InfoContext(ctx, "preference store ready", slog.String("driver", config.StorePostgres))
		return preference.New(pool, postgres.NewTxManager(pool)), pool.Close, nil

	default:
		logger.InfoContext(ctx, "preference store ready", slog.String("driver", config.StoreMemory))
		return memory.NewPreferenceRepo(), func() {}, nil
	}
}
