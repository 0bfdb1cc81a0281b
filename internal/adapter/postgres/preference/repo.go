// Package preference stores visitor display preferences in PostgreSQL.
package preference

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordlens/internal/adapter/postgres"
)

const (
	tableVisitors    = "visitors"
	tablePreferences = "preferences"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo persists preferences as (visitor_id, key, value) rows.
type Repo struct {
	pool *pgxpool.Pool
	tx   txRunner
}

// New creates a new preference repository.
func New(pool *pgxpool.Pool, tx txRunner) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// Get returns the stored value for key, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, visitorID uuid.UUID, key string) (string, error) {
	query, args, err := psql.
		Select("value").
		From(tablePreferences).
		Where(sq.Eq{"visitor_id": visitorID, "key": key}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("preference: build get: %w", err)
	}

	var value string
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value); err != nil {
		return "", postgres.MapError(err, "preference "+key+" of visitor", visitorID)
	}
	return value, nil
}

// GetAll returns every stored preference of the visitor keyed by storage key.
// A visitor with nothing stored yields an empty map.
func (r *Repo) GetAll(ctx context.Context, visitorID uuid.UUID) (map[string]string, error) {
	query, args, err := psql.
		Select("key", "value").
		From(tablePreferences).
		Where(sq.Eq{"visitor_id": visitorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("preference: build get all: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "preferences of visitor", visitorID)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, postgres.MapError(err, "preferences of visitor", visitorID)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "preferences of visitor", visitorID)
	}
	return out, nil
}

// Set upserts the value for key. The visitor row is created or its
// last_seen_at refreshed in the same transaction.
func (r *Repo) Set(ctx context.Context, visitorID uuid.UUID, key, value string) error {
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.touchVisitor(ctx, visitorID); err != nil {
			return err
		}

		query, args, err := psql.
			Insert(tablePreferences).
			Columns("visitor_id", "key", "value", "updated_at").
			Values(visitorID, key, value, sq.Expr("now()")).
			Suffix("ON CONFLICT (visitor_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("preference: build upsert: %w", err)
		}

		if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "preference "+key+" of visitor", visitorID)
		}
		return nil
	})
}

// Touch refreshes last_seen_at of a visitor that has stored preferences.
// Visitors without a row are left alone; they have nothing to keep.
func (r *Repo) Touch(ctx context.Context, visitorID uuid.UUID) error {
	query, args, err := psql.
		Update(tableVisitors).
		Set("last_seen_at", sq.Expr("now()")).
		Where(sq.Eq{"id": visitorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("preference: build touch: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "visitor", visitorID)
	}
	return nil
}

// PruneVisitors deletes visitors not seen since before, together with their
// preferences, and returns how many visitors were removed.
func (r *Repo) PruneVisitors(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.
		Delete(tableVisitors).
		Where(sq.Lt{"last_seen_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("preference: build prune: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "visitors last seen before", before)
	}
	return tag.RowsAffected(), nil
}

// Ping checks the database connection; used by the readiness probe.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repo) touchVisitor(ctx context.Context, visitorID uuid.UUID) error {
	query, args, err := psql.
		Insert(tableVisitors).
		Columns("id").
		Values(visitorID).
		Suffix("ON CONFLICT (id) DO UPDATE SET last_seen_at = now()").
		ToSql()
	if err != nil {
		return fmt.Errorf("preference: build touch visitor: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "visitor", visitorID)
	}
	return nil
}
