package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/yeshika17/ResumeSeRole/internal/aggregate"
	"github.com/yeshika17/ResumeSeRole/internal/analyze"
	"github.com/yeshika17/ResumeSeRole/internal/api"
	"github.com/yeshika17/ResumeSeRole/internal/cache"
	"github.com/yeshika17/ResumeSeRole/internal/config"
	"github.com/yeshika17/ResumeSeRole/internal/source"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheRetention)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = redisStore
		slog.Info("using redis cache store")
	} else {
		pgStore, err := cache.NewPostgresStore(cfg.DatabaseURL, cfg.CacheRetention)
		if err != nil {
			slog.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		// Run schema migrations to ensure the cache table exists
		workDir, _ := os.Getwd()
		schemaPath := filepath.Join(workDir, "internal", "cache", "schema.sql")
		if err := pgStore.RunMigrations(schemaPath); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = pgStore
		slog.Info("using postgres cache store")
	}
	defer store.Close()

	sources := source.Roster(cfg)
	orchestrator := aggregate.NewOrchestrator(sources)
	service := aggregate.NewService(orchestrator, store, cfg.CacheWindow)

	analyzer := analyze.NewAnalyzer(cfg.OpenAIAPIKey)

	srv := api.NewServer(service, analyzer)

	slog.Info("starting server", "port", cfg.Port, "sources", len(sources))
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
