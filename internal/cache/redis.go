package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// RedisStore keeps one JSON batch per key. The TTL equals the retention
// period, so expiry is enforced by Redis itself; the freshness window is
// checked against the stored FetchedAt on every lookup.
type RedisStore struct {
	rdb       *redis.Client
	retention time.Duration
}

type redisBatch struct {
	FetchedAt time.Time   `json:"fetched_at"`
	Jobs      []model.Job `json:"jobs"`
}

func NewRedisStore(ctx context.Context, redisURL string, retention time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{rdb: rdb, retention: retention}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func redisKey(key Key) string {
	return "jobs:" + key.Keyword + ":" + key.Location
}

func (s *RedisStore) Lookup(ctx context.Context, key Key, window time.Duration) (*Batch, error) {
	val, err := s.rdb.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeBatch(val, redisKey(key), window)
}

// decodeBatch unmarshals a stored value and applies the freshness window.
// An over-window batch is a miss, not an error; the TTL will reclaim it.
func decodeBatch(val []byte, key string, window time.Duration) (*Batch, error) {
	var stored redisBatch
	if err := json.Unmarshal(val, &stored); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %q: %w", key, err)
	}
	if time.Since(stored.FetchedAt) > window {
		return nil, nil
	}
	return &Batch{Jobs: stored.Jobs, FetchedAt: stored.FetchedAt}, nil
}

func (s *RedisStore) Write(ctx context.Context, key Key, jobs []model.Job) error {
	payload, err := json.Marshal(redisBatch{FetchedAt: time.Now(), Jobs: jobs})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisKey(key), payload, s.retention).Err()
}
