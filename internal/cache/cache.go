// Package cache stores aggregated job batches keyed by normalized search
// terms. A batch is written whole and superseded whole; lookups only see
// batches younger than the caller's freshness window, while the store
// reaps rows on its own longer retention schedule.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// Key identifies one cached aggregation. Two requests differing only in
// case or surrounding whitespace share a key.
type Key struct {
	Keyword  string
	Location string
}

// NewKey normalizes raw query terms into a cache key. An empty location
// means "all".
func NewKey(keyword, location string) Key {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		loc = "all"
	}
	return Key{
		Keyword:  strings.ToLower(strings.TrimSpace(keyword)),
		Location: loc,
	}
}

// Batch is one stored aggregation cycle: every record shares FetchedAt.
type Batch struct {
	Jobs      []model.Job
	FetchedAt time.Time
}

// Age returns how old the batch is.
func (b *Batch) Age() time.Duration {
	return time.Since(b.FetchedAt)
}

// Store is the cache contract. Lookup returns (nil, nil) on a miss. Write
// replaces any previous batch for the key; it never merges.
type Store interface {
	Lookup(ctx context.Context, key Key, window time.Duration) (*Batch, error)
	Write(ctx context.Context, key Key, jobs []model.Job) error
	Close() error
}
