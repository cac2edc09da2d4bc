package cachestore_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-design-engine/internal/adapter/cachestore"
	"github.com/couchcryptid/climate-design-engine/internal/cache"
	"github.com/couchcryptid/climate-design-engine/internal/config"
	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{CacheBackend: config.CacheMemory, CacheMemoryEntries: 4}

	b, err := cachestore.Open(context.Background(), cfg, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })

	assert.Equal(t, config.CacheMemory, b.Name)
	assert.IsType(t, &cache.MemoryStore{}, b.Store)
	assert.NoError(t, b.CheckReadiness(context.Background()))
}

func TestOpen_SQLiteReadiness(t *testing.T) {
	cfg := &config.Config{
		CacheBackend: config.CacheSQLite,
		CacheDSN:     filepath.Join(t.TempDir(), "climate.db"),
	}
	ctx := context.Background()

	b, err := cachestore.Open(ctx, cfg, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	require.NoError(t, b.CheckReadiness(ctx))

	require.NoError(t, b.Close())
	err = b.CheckReadiness(ctx)
	assert.ErrorContains(t, err, "sqlite cache not ready")
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	cfg := &config.Config{
		CacheBackend: config.CacheSQLite,
		CacheDSN:     filepath.Join(t.TempDir(), "cache", "climate.db"),
	}
	ctx := context.Background()

	b, err := cachestore.Open(ctx, cfg, discardLogger(), observability.NewMetricsForTesting())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })

	require.NoError(t, b.Store.Save(ctx, "SYN001|abc", map[string]string{"Station": "SYN001"}))
	got, err := b.Store.Load(ctx, "SYN001|abc")
	require.NoError(t, err)
	assert.Equal(t, "SYN001", got["Station"])
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{CacheBackend: "memcached"}

	_, err := cachestore.Open(context.Background(), cfg, discardLogger(), observability.NewMetricsForTesting())
	assert.ErrorContains(t, err, "memcached")
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{CacheBackend: config.CacheRedis, RedisAddr: "127.0.0.1:1"}

	_, err := cachestore.Open(context.Background(), cfg, discardLogger(), observability.NewMetricsForTesting())
	assert.ErrorContains(t, err, "open redis cache")
}
