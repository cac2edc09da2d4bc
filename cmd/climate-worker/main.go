package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-design-engine/internal/adapter/cachestore"
	httpadapter "github.com/couchcryptid/climate-design-engine/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climate-design-engine/internal/adapter/kafka"
	"github.com/couchcryptid/climate-design-engine/internal/cache"
	"github.com/couchcryptid/climate-design-engine/internal/climate"
	"github.com/couchcryptid/climate-design-engine/internal/config"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
	"github.com/couchcryptid/climate-design-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := cachestore.Open(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to open result cache", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("result cache ready", "backend", backend.Name)

	results := cache.NewResultCache(backend.Store, logger, metrics)
	analyzer := cache.NewCachedAnalyzer(climate.NewEngine(logger), results, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(analyzer, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.ReadinessChecks{p, backend}, results, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start analysis pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if err := backend.Close(); err != nil {
		logger.Error("result cache close error", "error", err)
	}

	logger.Info("shutdown complete")
}
