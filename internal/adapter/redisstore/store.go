// Package redisstore persists result-cache field sets as Redis hashes.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/couchcryptid/climate-design-engine/internal/cache"
)

// KeyPrefix namespaces cache hashes in a shared Redis.
const KeyPrefix = "climate:bundle:"

// Store is a cache.FieldStore keeping one hash per source key.
type Store struct {
	client *redis.Client
}

// New wraps an existing client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return New(client), nil
}

func (s *Store) Load(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, KeyPrefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return nil, cache.ErrNotFound
	}
	return fields, nil
}

// Save replaces the hash atomically.
func (s *Store) Save(ctx context.Context, key string, fields map[string]string) error {
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = v
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, KeyPrefix+key)
		if len(values) > 0 {
			pipe.HSet(ctx, KeyPrefix+key, values)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
