// Package memory provides process-local stores used when no database is
// configured.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlens/internal/domain"
)

// PreferenceRepo keeps visitor preferences in a map. Contents are lost on
// restart.
type PreferenceRepo struct {
	mu   sync.RWMutex
	data map[uuid.UUID]map[string]string
}

// NewPreferenceRepo creates an empty PreferenceRepo.
func NewPreferenceRepo() *PreferenceRepo {
	return &PreferenceRepo{data: make(map[uuid.UUID]map[string]string)}
}

// Get returns the stored value for key, or domain.ErrNotFound.
func (r *PreferenceRepo) Get(ctx context.Context, visitorID uuid.UUID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[visitorID][key]
	if !ok {
		return "", fmt.Errorf("preference %s of visitor %s: %w", key, visitorID, domain.ErrNotFound)
	}
	return value, nil
}

// GetAll returns a copy of every stored preference of the visitor.
func (r *PreferenceRepo) GetAll(ctx context.Context, visitorID uuid.UUID) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.data[visitorID]))
	maps.Copy(out, r.data[visitorID])
	return out, nil
}

// Set stores value under key for the visitor.
func (r *PreferenceRepo) Set(ctx context.Context, visitorID uuid.UUID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.data[visitorID]
	if !ok {
		prefs = make(map[string]string, 2)
		r.data[visitorID] = prefs
	}
	prefs[key] = value
	return nil
}

// Touch is a no-op; memory contents never expire.
func (r *PreferenceRepo) Touch(ctx context.Context, _ uuid.UUID) error {
	return ctx.Err()
}

// Ping always succeeds.
func (r *PreferenceRepo) Ping(context.Context) error {
	return nil
}
