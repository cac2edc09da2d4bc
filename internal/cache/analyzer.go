package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

// CachedAnalyzer wraps an Analyzer with a ResultCache. A hit replaces the
// full computation; a failed write is logged and the fresh bundle is still
// returned.
type CachedAnalyzer struct {
	inner   domain.Analyzer
	cache   *ResultCache
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCachedAnalyzer creates a cache decorator around an analyzer.
func NewCachedAnalyzer(inner domain.Analyzer, cache *ResultCache, logger *slog.Logger, metrics *observability.Metrics) *CachedAnalyzer {
	return &CachedAnalyzer{inner: inner, cache: cache, logger: logger, metrics: metrics}
}

func (a *CachedAnalyzer) Analyze(ctx context.Context, in domain.AnalysisInput) (domain.Bundle, error) {
	if b, ok := a.cache.Get(ctx, in.SourceKey); ok {
		a.logger.Debug("cache hit", "source_key", in.SourceKey)
		return b, nil
	}

	start := time.Now()
	b, err := a.inner.Analyze(ctx, in)
	if err != nil {
		return domain.Bundle{}, err
	}
	a.metrics.AnalysisDuration.WithLabelValues(b.DesignSource).Observe(time.Since(start).Seconds())

	if err := a.cache.Put(ctx, b); err != nil {
		a.logger.Warn("cache write failed", "source_key", in.SourceKey, "error", err)
	}
	return b, nil
}
