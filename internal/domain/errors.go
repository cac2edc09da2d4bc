package domain

import "fmt"

// DataIntegrityError reports a missing or unusable field on a weather record.
// It is fatal: an analysis that hits one produces no partial results.
type DataIntegrityError struct {
	Index  int
	Field  string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("weather record %d: field %s %s", e.Index, e.Field, e.Reason)
}

// ConfigurationError reports an analysis that cannot start: an absent or
// malformed series, or a site identity that cannot be resolved.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// CacheDeserializationError reports a cached bundle that is malformed or
// missing a field. Caches treat it as a miss and recompute.
type CacheDeserializationError struct {
	Key   string
	Field string
	Err   error
}

func (e *CacheDeserializationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cache entry %q: field %s missing", e.Key, e.Field)
	}
	return fmt.Sprintf("cache entry %q: field %s: %v", e.Key, e.Field, e.Err)
}

func (e *CacheDeserializationError) Unwrap() error { return e.Err }
