package model

import (
	"context"
	"time"
)

// Job is the canonical record every source adapter maps into. Optional
// fields (Salary, Tags, JobType, Thumbnail) are passed through when a
// provider offers them; their absence never affects dedup or caching.
type Job struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Link        string     `json:"link"`
	Source      string     `json:"source"`
	Description string     `json:"description,omitempty"`
	PostedAt    *time.Time `json:"postedDate,omitempty"`
	Salary      string     `json:"salary,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	JobType     string     `json:"jobType,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Remote      bool       `json:"remote,omitempty"`
}

// Query carries the raw search terms as the client sent them.
// Normalization for cache identity happens in the cache package.
type Query struct {
	Keyword  string
	Location string
}

// Tier groups sources for logging order. Tiers do not gate each other;
// every source runs in the same concurrent batch.
type Tier int

const (
	TierRSS Tier = iota
	TierFree
	TierKeyed
	TierMetered
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierRSS:
		return "rss"
	case TierFree:
		return "free"
	case TierKeyed:
		return "keyed"
	case TierMetered:
		return "metered"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// Source is the per-provider adapter contract. Fetch returns the jobs it
// could map, or an error describing why the provider contributed nothing.
// A missing credential is not an error: adapters short-circuit to (nil, nil).
type Source interface {
	Name() string
	Tier() Tier
	Fetch(ctx context.Context, q Query) ([]Job, error)
}
