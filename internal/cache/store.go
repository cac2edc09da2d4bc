// Package cache persists analysis bundles keyed by weather-source identity so
// repeated runs against the same source skip recomputation.
//
// A bundle is stored as a flat set of named string fields (scalars as decimal
// strings, arrays comma-joined). Backends only need to load and save such a
// field set: see FieldStore.
package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a FieldStore when no entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// FieldStore is a key-value backend holding one field set per key. Save
// replaces any existing entry for the key.
type FieldStore interface {
	Load(ctx context.Context, key string) (map[string]string, error)
	Save(ctx context.Context, key string, fields map[string]string) error
}
