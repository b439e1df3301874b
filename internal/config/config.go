// Package config loads and validates environment variables at startup.
// Fail-fast: malformed values abort startup; absent optional credentials
// just disable the sources that need them.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all runtime configuration for the aggregation server.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string // when set, the Redis cache store is used instead of Postgres

	CacheWindow    time.Duration // how long an aggregated batch stays fresh
	CacheRetention time.Duration // how long rows are kept before reaping

	OpenAIAPIKey string

	JoobleKey   string
	FindWorkKey string
	RapidAPIKey string
	SerpAPIKey  string
}

const (
	defaultCacheWindow    = 5 * time.Hour
	defaultCacheRetention = 7 * 24 * time.Hour
)

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           os.Getenv("PORT"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheWindow:    defaultCacheWindow,
		CacheRetention: defaultCacheRetention,
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		JoobleKey:      os.Getenv("JOOBLE_KEY"),
		FindWorkKey:    os.Getenv("FINDWORK_KEY"),
		RapidAPIKey:    os.Getenv("RAPID_API_KEY"),
		SerpAPIKey:     os.Getenv("SERPAPI_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or REDIS_URL is required")
	}

	if s := os.Getenv("CACHE_WINDOW"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("CACHE_WINDOW must be a positive duration, got %q", s)
		}
		cfg.CacheWindow = d
	}
	if s := os.Getenv("CACHE_RETENTION"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("CACHE_RETENTION must be a positive duration, got %q", s)
		}
		cfg.CacheRetention = d
	}
	if cfg.CacheRetention < cfg.CacheWindow {
		return nil, fmt.Errorf("CACHE_RETENTION (%s) must not be shorter than CACHE_WINDOW (%s)",
			cfg.CacheRetention, cfg.CacheWindow)
	}

	return cfg, nil
}
