package lookup

import (
	"context"
	"sync"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordlens/internal/domain"
)

const (
	maxBatch       = 50
	maxParallelism = 8
)

// newEntryLoader returns a loader that coalesces concurrent lookups of the
// same word into one upstream call. Results are never cached: a Load issued
// after a batch has dispatched triggers a new request.
func newEntryLoader(dict dictionaryProvider, wait time.Duration) *dataloader.Loader[string, *domain.WordEntry] {
	return dataloader.NewBatchedLoader(
		newEntryBatchFn(dict),
		dataloader.WithWait[string, *domain.WordEntry](wait),
		dataloader.WithBatchCapacity[string, *domain.WordEntry](maxBatch),
		dataloader.WithCache[string, *domain.WordEntry](&dataloader.NoCache[string, *domain.WordEntry]{}),
	)
}

func newEntryBatchFn(dict dictionaryProvider) dataloader.BatchFunc[string, *domain.WordEntry] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.WordEntry] {
		// The batch runs on the context of whichever caller opened it; one
		// visitor going away must not fail the others sharing the batch.
		ctx = context.WithoutCancel(ctx)

		var (
			mu      sync.Mutex
			fetched = make(map[string]*dataloader.Result[*domain.WordEntry], len(keys))
		)

		var g errgroup.Group
		g.SetLimit(maxParallelism)

		for _, word := range uniqueKeys(keys) {
			g.Go(func() error {
				entry, err := dict.FetchEntry(ctx, word)
				mu.Lock()
				fetched[word] = &dataloader.Result[*domain.WordEntry]{Data: entry, Error: err}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		results := make([]*dataloader.Result[*domain.WordEntry], len(keys))
		for i, k := range keys {
			results[i] = fetched[k]
		}
		return results
	}
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
