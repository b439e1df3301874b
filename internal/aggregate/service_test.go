package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeshika17/ResumeSeRole/internal/cache"
	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// memStore is an in-memory cache.Store with scriptable failures.
type memStore struct {
	batches    map[cache.Key]*cache.Batch
	lookupErr  error
	writeErr   error
	writeCalls int
}

func newMemStore() *memStore {
	return &memStore{batches: make(map[cache.Key]*cache.Batch)}
}

func (m *memStore) Lookup(ctx context.Context, key cache.Key, window time.Duration) (*cache.Batch, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	b, ok := m.batches[key]
	if !ok || time.Since(b.FetchedAt) > window {
		return nil, nil
	}
	return b, nil
}

func (m *memStore) Write(ctx context.Context, key cache.Key, jobs []model.Job) error {
	m.writeCalls++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.batches[key] = &cache.Batch{Jobs: jobs, FetchedAt: time.Now()}
	return nil
}

func (m *memStore) Close() error { return nil }

func TestAggregate_CacheHit(t *testing.T) {
	store := newMemStore()
	store.batches[cache.NewKey("golang", "")] = &cache.Batch{
		Jobs:      []model.Job{{Title: "Cached Role", Company: "Acme"}},
		FetchedAt: time.Now().Add(-30 * time.Minute),
	}

	// A source that must never run on a hit.
	src := &fakeSource{name: "untouchable", panic: true}
	svc := NewService(NewOrchestrator([]model.Source{src}), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "GoLang ", "")
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.InDelta(t, 30, res.CacheAge.Minutes(), 1)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Cached Role", res.Jobs[0].Title)
}

func TestAggregate_ExpiredBatchIsAMiss(t *testing.T) {
	store := newMemStore()
	key := cache.NewKey("golang", "remote")
	store.batches[key] = &cache.Batch{
		Jobs:      []model.Job{{Title: "Stale Role", Company: "Acme"}},
		FetchedAt: time.Now().Add(-6 * time.Hour),
	}

	svc := NewService(NewOrchestrator([]model.Source{
		&fakeSource{name: "a", jobs: []model.Job{{Title: "Fresh Role", Company: "Beta"}}},
	}), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "golang", "remote")
	require.NoError(t, err)
	assert.False(t, res.Cached, "a batch older than the window must not serve as a hit")
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "Fresh Role", res.Jobs[0].Title, "expiry triggers full re-aggregation")
	assert.Equal(t, 1, store.writeCalls, "the stale batch is overwritten")
	assert.Equal(t, "Fresh Role", store.batches[key].Jobs[0].Title)
}

func TestAggregate_MissFansOutAndWrites(t *testing.T) {
	store := newMemStore()
	sources := []model.Source{
		&fakeSource{name: "a", jobs: []model.Job{{Title: "Go Engineer", Company: "Acme", Location: "Remote"}}},
		&fakeSource{name: "b", jobs: []model.Job{{Title: "Go Engineer", Company: "Acme", Location: "Remote"}, {Title: "SRE", Company: "Beta"}}},
		&fakeSource{name: "c", err: errors.New("down")},
	}
	svc := NewService(NewOrchestrator(sources), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "golang", "remote")
	require.NoError(t, err)
	assert.False(t, res.Cached)
	require.Len(t, res.Jobs, 2, "duplicate collapsed, failed source contributes nothing")
	assert.Equal(t, 1, store.writeCalls)

	// The next identical query is served from cache.
	res2, err := svc.Aggregate(context.Background(), "golang", "remote")
	require.NoError(t, err)
	assert.True(t, res2.Cached)
	assert.Equal(t, 1, store.writeCalls)
}

func TestAggregate_EmptyResultNotCached(t *testing.T) {
	store := newMemStore()
	svc := NewService(NewOrchestrator([]model.Source{
		&fakeSource{name: "empty"},
	}), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "golang", "")
	require.NoError(t, err)
	assert.Empty(t, res.Jobs)
	assert.Zero(t, store.writeCalls, "an empty aggregation must not occupy the cache window")
}

func TestAggregate_LookupFailureIsAMiss(t *testing.T) {
	store := newMemStore()
	store.lookupErr = errors.New("connection refused")
	svc := NewService(NewOrchestrator([]model.Source{
		&fakeSource{name: "a", jobs: []model.Job{{Title: "Go Engineer", Company: "Acme"}}},
	}), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "golang", "")
	require.NoError(t, err, "a broken cache must not fail the request")
	assert.False(t, res.Cached)
	assert.Len(t, res.Jobs, 1)
}

func TestAggregate_WriteFailureStillReturnsJobs(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("disk full")
	svc := NewService(NewOrchestrator([]model.Source{
		&fakeSource{name: "a", jobs: []model.Job{{Title: "Go Engineer", Company: "Acme"}}},
	}), store, 5*time.Hour)

	res, err := svc.Aggregate(context.Background(), "golang", "")
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Len(t, res.Jobs, 1)
}
