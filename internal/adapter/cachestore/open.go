// Package cachestore opens the result-cache backend named by configuration.
package cachestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/climate-design-engine/internal/adapter/redisstore"
	"github.com/couchcryptid/climate-design-engine/internal/adapter/sqlstore"
	"github.com/couchcryptid/climate-design-engine/internal/cache"
	"github.com/couchcryptid/climate-design-engine/internal/config"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

// Backend is an opened FieldStore plus the hooks that check and release it.
type Backend struct {
	Store   cache.FieldStore
	Name    string
	ping    func(context.Context) error
	breaker *cache.BreakerStore
	close   func() error
}

// ErrCircuitOpen is reported by CheckReadiness while the breaker in front of
// a remote backend is open.
var ErrCircuitOpen = errors.New("cache circuit open")

// CheckReadiness reports whether the backend can serve lookups. Remote
// backends are pinged and fail while their breaker is open.
func (b *Backend) CheckReadiness(ctx context.Context) error {
	if b.breaker != nil && b.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s: %w", b.Name, ErrCircuitOpen)
	}
	if b.ping == nil {
		return nil
	}
	if err := b.ping(ctx); err != nil {
		return fmt.Errorf("%s cache not ready: %w", b.Name, err)
	}
	return nil
}

// Close releases the backend's connections. Memory backends have nothing to
// release.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the configured backend. Remote backends (postgres, redis) are
// wrapped in a circuit breaker so an outage degrades to cache misses.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*Backend, error) {
	switch cfg.CacheBackend {
	case config.CacheMemory:
		return &Backend{Store: cache.NewMemoryStore(cfg.CacheMemoryEntries), Name: cfg.CacheBackend}, nil

	case config.CacheSQLite:
		store, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, cfg.CacheDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return &Backend{Store: store, Name: cfg.CacheBackend, ping: store.Ping, close: store.Close}, nil

	case config.CachePostgres:
		store, err := sqlstore.Open(ctx, sqlstore.DriverPostgres, cfg.CacheDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres cache: %w", err)
		}
		guarded := cache.NewBreakerStore(store, "postgres-cache", cfg.CacheBreakerTimeout, logger, metrics)
		return &Backend{Store: guarded, Name: cfg.CacheBackend, ping: store.Ping, breaker: guarded, close: store.Close}, nil

	case config.CacheRedis:
		store, err := redisstore.Dial(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		guarded := cache.NewBreakerStore(store, "redis-cache", cfg.CacheBreakerTimeout, logger, metrics)
		return &Backend{Store: guarded, Name: cfg.CacheBackend, ping: store.Ping, breaker: guarded, close: store.Close}, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
