package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Result cache backends.
const (
	CacheMemory   = "memory"
	CacheSQLite   = "sqlite"
	CachePostgres = "postgres"
	CacheRedis    = "redis"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Result cache configuration.
	CacheBackend        string
	CacheMemoryEntries  int
	CacheDSN            string
	RedisAddr           string
	RedisDB             int
	CacheBreakerTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is read first; variables
// already set in the environment win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	memoryEntries, err := parsePositiveInt("CACHE_MEMORY_ENTRIES", "256")
	if err != nil {
		return nil, err
	}

	redisDB, err := strconv.Atoi(sharedcfg.EnvOrDefault("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, errors.New("invalid REDIS_DB: must be a non-negative integer")
	}

	breakerTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("CACHE_BREAKER_TIMEOUT", "30s"))
	if err != nil || breakerTimeout <= 0 {
		return nil, errors.New("invalid CACHE_BREAKER_TIMEOUT: must be a positive duration")
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "weather-series"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "climate-bundles"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "climate-design-engine"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		CacheBackend:        sharedcfg.EnvOrDefault("CACHE_BACKEND", CacheMemory),
		CacheMemoryEntries:  memoryEntries,
		CacheDSN:            sharedcfg.EnvOrDefault("CACHE_DSN", "file:climate-cache.db"),
		RedisAddr:           sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisDB:             redisDB,
		CacheBreakerTimeout: breakerTimeout,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	switch cfg.CacheBackend {
	case CacheMemory, CacheSQLite, CachePostgres, CacheRedis:
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q: want memory, sqlite, postgres, or redis", cfg.CacheBackend)
	}
	if cfg.CacheBackend == CachePostgres && cfg.CacheDSN == "file:climate-cache.db" {
		return nil, errors.New("CACHE_BACKEND=postgres requires CACHE_DSN")
	}

	return cfg, nil
}

func parsePositiveInt(name, def string) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(name, def))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", name)
	}
	return n, nil
}
