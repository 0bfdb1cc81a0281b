package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/wordlens/internal/domain"
)

// PostgreSQL error codes mapped to domain errors. Preference writes are
// upserts, so unique violations cannot occur and are not mapped.
const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// MapError converts pgx errors into domain errors, prefixing the entity and
// key that were being accessed. Context errors pass through unchanged.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case codeCheckViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
