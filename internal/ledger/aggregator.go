package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docgrade/docgrade/internal/domain"
)

// AggregatedView is the read-time merge of several per-source ledgers:
// per-model statistics summed across every source that saw the model.
type AggregatedView struct {
	Sources []string
	Models  map[domain.ModelKey]*CachedModelResult
}

// Aggregator merges per-source ledgers into one cross-document view.
// It holds no state between calls; every aggregation re-reads the
// ledgers it is given.
type Aggregator struct {
	store  *Store
	logger *zap.Logger
}

// NewAggregator creates an aggregator over the given store.
func NewAggregator(store *Store, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{store: store, logger: logger}
}

// Aggregate loads every ledger in the store concurrently and merges
// them. Per-model totals and run counts sum across sources, best takes
// the overall max, latest the newest timestamp. A ledger that fails to
// load is skipped with a warning; the merge never fails on one bad
// file.
func (a *Aggregator) Aggregate(ctx context.Context) (*AggregatedView, error) {
	paths, err := a.store.List()
	if err != nil {
		return nil, err
	}

	caches := make([]*Cache, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cache, err := LoadPath(path)
			if err != nil {
				a.logger.Warn("skipping unreadable ledger", zap.String("path", path), zap.Error(err))
				return nil
			}
			caches[i] = cache
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ledger: aggregate: %w", err)
	}

	view := &AggregatedView{Models: make(map[domain.ModelKey]*CachedModelResult)}
	for _, cache := range caches {
		if cache == nil {
			continue
		}
		view.Sources = append(view.Sources, cache.SourceFile)
		mergeInto(view.Models, cache)
	}
	return view, nil
}

// AggregateCaches merges already-loaded caches. Used by tests and by
// callers that hold caches in memory.
func AggregateCaches(caches ...*Cache) *AggregatedView {
	view := &AggregatedView{Models: make(map[domain.ModelKey]*CachedModelResult)}
	for _, cache := range caches {
		if cache == nil {
			continue
		}
		view.Sources = append(view.Sources, cache.SourceFile)
		mergeInto(view.Models, cache)
	}
	return view
}

func mergeInto(models map[domain.ModelKey]*CachedModelResult, cache *Cache) {
	for key, result := range cache.Models {
		merged, ok := models[key]
		if !ok {
			models[key] = cloneResult(result)
			continue
		}
		merged.Merge(result)
	}
}

func cloneResult(r *CachedModelResult) *CachedModelResult {
	clone := *r
	clone.RunHistory = make([]RunHistoryEntry, len(r.RunHistory))
	copy(clone.RunHistory, r.RunHistory)
	return &clone
}
