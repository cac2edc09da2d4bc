package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

// Cache lookup outcomes, used as the "result" metric label.
const (
	lookupHit     = "hit"
	lookupMiss    = "miss"
	lookupCorrupt = "corrupt"
	lookupError   = "error"
)

// ResultCache stores bundles in a FieldStore. Lookups never fail: a missing,
// corrupt, or unreachable entry is reported as a miss so the caller
// recomputes.
type ResultCache struct {
	store   FieldStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewResultCache creates a ResultCache over store.
func NewResultCache(store FieldStore, logger *slog.Logger, metrics *observability.Metrics) *ResultCache {
	return &ResultCache{store: store, logger: logger, metrics: metrics}
}

// Get returns the cached bundle for key, if a usable one exists.
func (c *ResultCache) Get(ctx context.Context, key string) (domain.Bundle, bool) {
	fields, err := c.store.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		c.metrics.CacheLookups.WithLabelValues(lookupMiss).Inc()
		return domain.Bundle{}, false
	}
	if err != nil {
		c.logger.Warn("cache lookup failed, recomputing", "source_key", key, "error", err)
		c.metrics.CacheLookups.WithLabelValues(lookupError).Inc()
		return domain.Bundle{}, false
	}

	b, err := Decode(key, fields)
	if err != nil {
		c.logger.Warn("discarding corrupt cache entry", "source_key", key, "error", err)
		c.metrics.CacheLookups.WithLabelValues(lookupCorrupt).Inc()
		return domain.Bundle{}, false
	}

	c.metrics.CacheLookups.WithLabelValues(lookupHit).Inc()
	return b, true
}

// Put stores b under its source key.
func (c *ResultCache) Put(ctx context.Context, b domain.Bundle) error {
	if b.SourceKey == "" {
		return errors.New("cache put: bundle has no source key")
	}
	if err := c.store.Save(ctx, b.SourceKey, Encode(b)); err != nil {
		c.metrics.CacheStoreErrors.Inc()
		return fmt.Errorf("cache put %q: %w", b.SourceKey, err)
	}
	return nil
}
