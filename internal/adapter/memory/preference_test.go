package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordlens/internal/domain"
)

func TestPreferenceRepo_GetMissing(t *testing.T) {
	t.Parallel()
	repo := NewPreferenceRepo()

	_, err := repo.Get(context.Background(), uuid.New(), domain.ThemeKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreferenceRepo_SetGetOverwrite(t *testing.T) {
	t.Parallel()
	repo := NewPreferenceRepo()
	ctx := context.Background()
	visitor := uuid.New()

	require.NoError(t, repo.Set(ctx, visitor, domain.ThemeKey, "dark"))
	require.NoError(t, repo.Set(ctx, visitor, domain.ThemeKey, "light"))

	got, err := repo.Get(ctx, visitor, domain.ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", got)
}

func TestPreferenceRepo_GetAllReturnsCopy(t *testing.T) {
	t.Parallel()
	repo := NewPreferenceRepo()
	ctx := context.Background()
	visitor := uuid.New()

	require.NoError(t, repo.Set(ctx, visitor, domain.FontKey, "mono"))

	all, err := repo.GetAll(ctx, visitor)
	require.NoError(t, err)
	all[domain.FontKey] = "serif"

	got, err := repo.Get(ctx, visitor, domain.FontKey)
	require.NoError(t, err)
	assert.Equal(t, "mono", got)
}

func TestPreferenceRepo_CancelledContext(t *testing.T) {
	t.Parallel()
	repo := NewPreferenceRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Set(ctx, uuid.New(), domain.ThemeKey, "dark"), context.Canceled)
}

func TestPreferenceRepo_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	repo := NewPreferenceRepo()
	ctx := context.Background()
	visitor := uuid.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value := "light"
			if i%2 == 0 {
				value = "dark"
			}
			_ = repo.Set(ctx, visitor, domain.ThemeKey, value)
			_, _ = repo.Get(ctx, visitor, domain.ThemeKey)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, visitor, domain.ThemeKey)
	require.NoError(t, err)
	assert.Contains(t, []string{"light", "dark"}, got)
}
