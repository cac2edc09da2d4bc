// Command analyze runs one AnalysisRequest file through the climate engine
// and prints the resulting Bundle as JSON. Results are cached in SQLite keyed
// by source identity, so re-running the same weather file is a cache hit.
//
// Usage:
//
//	go run ./cmd/analyze -in data/mock/syn001.json
//	go run ./cmd/analyze -in - -cache "" < request.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/climate-design-engine/internal/adapter/sqlstore"
	"github.com/couchcryptid/climate-design-engine/internal/cache"
	"github.com/couchcryptid/climate-design-engine/internal/climate"
	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", `AnalysisRequest JSON file, or "-" for stdin`)
	cachePath := flag.String("cache", "climate-cache.db", `SQLite cache file; "" keeps results in memory only`)
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -in")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.NewLogger(*logLevel, "text")

	req, err := readRequest(*in)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, *cachePath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("cache close error", "error", err)
		}
	}()

	bundle, err := analyze(ctx, req, store, logger, observability.NewMetrics())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func readRequest(path string) (domain.AnalysisRequest, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return domain.AnalysisRequest{}, fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return domain.AnalysisRequest{}, fmt.Errorf("read request: %w", err)
	}
	return domain.ParseAnalysisRequest(domain.RawEvent{Value: data})
}

func openStore(ctx context.Context, path string, logger *slog.Logger) (cache.FieldStore, func() error, error) {
	if path == "" {
		return cache.NewMemoryStore(1), func() error { return nil }, nil
	}
	store, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, path, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	return store, store.Close, nil
}

func analyze(ctx context.Context, req domain.AnalysisRequest, store cache.FieldStore, logger *slog.Logger, metrics *observability.Metrics) (domain.Bundle, error) {
	input, err := req.Input()
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("invalid request: %w", err)
	}

	results := cache.NewResultCache(store, logger, metrics)
	analyzer := cache.NewCachedAnalyzer(climate.NewEngine(logger), results, logger, metrics)

	bundle, err := analyzer.Analyze(ctx, input)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("analyze %s: %w", input.SourceKey, err)
	}
	return bundle, nil
}
