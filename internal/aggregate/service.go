package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/cache"
	"github.com/yeshika17/ResumeSeRole/internal/model"
	"github.com/yeshika17/ResumeSeRole/internal/observability"
)

// Result is what one aggregation returns to the request layer.
type Result struct {
	Jobs     []model.Job
	Cached   bool
	CacheAge time.Duration
}

// Service ties cache lookup, fan-out, dedup, and cache write together.
type Service struct {
	orchestrator *Orchestrator
	store        cache.Store
	window       time.Duration
}

func NewService(orchestrator *Orchestrator, store cache.Store, window time.Duration) *Service {
	return &Service{orchestrator: orchestrator, store: store, window: window}
}

// Aggregate serves one (keyword, location) query. A fresh cached batch
// short-circuits the pipeline; otherwise every source is fanned out, the
// merged result is deduplicated and, when non-empty, written back. Cache
// failures degrade (read → miss, write → fresh-but-uncached); they never
// fail the request.
func (s *Service) Aggregate(ctx context.Context, keyword, location string) (Result, error) {
	observability.IncAggregation()
	key := cache.NewKey(keyword, location)

	batch, err := s.store.Lookup(ctx, key, s.window)
	if err != nil {
		observability.IncError(observability.ErrorStore, "cache")
		slog.Warn("cache lookup failed, treating as miss", "keyword", key.Keyword, "location", key.Location, "error", err)
	}
	if batch != nil {
		observability.IncCacheHit()
		slog.Info("cache hit",
			"keyword", key.Keyword,
			"location", key.Location,
			"jobs", len(batch.Jobs),
			"age_minutes", int(batch.Age().Minutes()),
		)
		return Result{Jobs: batch.Jobs, Cached: true, CacheAge: batch.Age()}, nil
	}

	observability.IncCacheMiss()
	slog.Info("cache miss, fanning out", "keyword", key.Keyword, "location", key.Location)

	q := model.Query{Keyword: keyword, Location: location}
	if q.Location == "" {
		q.Location = "all"
	}

	outcomes := s.orchestrator.FanOut(ctx, q)
	merged := Flatten(outcomes)
	deduped := Dedupe(merged)

	slog.Info("aggregation complete",
		"keyword", key.Keyword,
		"location", key.Location,
		"collected", len(merged),
		"deduped", len(deduped),
	)

	// An empty aggregation is returned but never cached: caching it would
	// suppress a later successful fetch for the whole window.
	if len(deduped) > 0 {
		if err := s.store.Write(ctx, key, deduped); err != nil {
			observability.IncError(observability.ErrorStore, "cache")
			slog.Warn("cache write failed, returning uncached results", "keyword", key.Keyword, "error", err)
		}
	}

	return Result{Jobs: deduped, Cached: false}, nil
}
