package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/api"
	"github.com/nidhogg/ideoscope/internal/cache"
	"github.com/nidhogg/ideoscope/internal/config"
	"github.com/nidhogg/ideoscope/internal/semantics"
	"github.com/nidhogg/ideoscope/internal/session"
	"github.com/nidhogg/ideoscope/internal/source"
	"github.com/nidhogg/ideoscope/internal/thought"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/ideoscope.json"
	}
	cfg, cfgErr := config.Load(cfgPath)

	zcfg := zap.NewDevelopmentConfig()
	if cfgErr == nil && cfg.Server.LogLevel != "" {
		if lvl, err := zap.ParseAtomicLevel(cfg.Server.LogLevel); err == nil {
			zcfg.Level = lvl
		}
	}
	logger, _ := zcfg.Build()
	defer logger.Sync()

	if cfgErr != nil {
		logger.Fatal("failed to load config", zap.String("path", cfgPath), zap.Error(cfgErr))
	}
	logger.Info("Config loaded", zap.String("path", cfgPath), zap.String("source", cfg.Source))

	// Initialize thought source
	ctx := context.Background()
	src, closeSource, err := source.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open source", zap.String("source", cfg.Source), zap.Error(err))
	}

	// Initialize snapshot cache
	var store session.SnapshotStore
	var redisCache *cache.Redis
	if cfg.Database.Redis.URL != "" {
		ttl := time.Duration(cfg.Database.Redis.TTLMinutes) * time.Minute
		rc, rErr := cache.NewRedis(ctx, cfg.Database.Redis.URL, ttl, logger)
		if rErr != nil {
			logger.Warn("Redis unavailable, sessions are kept in memory only", zap.Error(rErr))
		} else {
			redisCache = rc
			store = rc
			logger.Info("Snapshot cache connected", zap.Duration("ttl", ttl))
		}
	}

	sessions := session.NewManager(src, store, thought.FixedZone(cfg.Analysis.UTCOffset), logger)

	volume := semantics.DefaultVolumeOptions()
	volume.Probes = cfg.Analysis.Volume.Probes
	volume.Threshold = cfg.Analysis.Volume.Threshold
	volume.Seed = cfg.Analysis.Volume.Seed
	if cfg.Analysis.Volume.Workers > 0 {
		volume.Workers = cfg.Analysis.Volume.Workers
	}
	projection := semantics.DefaultTSNEOptions()
	if cfg.Analysis.Projection.Perplexity > 0 {
		projection.Perplexity = cfg.Analysis.Projection.Perplexity
	}
	if cfg.Analysis.Projection.Iterations > 0 {
		projection.Iterations = cfg.Analysis.Projection.Iterations
	}
	projection.Seed = cfg.Analysis.Projection.Seed

	// Build HTTP handler
	handler := api.NewHandler(sessions, api.Options{Volume: volume, Projection: projection}, logger)

	// Start server
	port := fmt.Sprintf("%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Ideoscope listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down Ideoscope...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
	if redisCache != nil {
		redisCache.Close()
	}
	closeSource()
}
