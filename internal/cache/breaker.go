package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/climate-design-engine/internal/observability"
)

// consecutiveFailuresToTrip opens the breaker after this many backend errors
// in a row.
const consecutiveFailuresToTrip = 5

// BreakerStore guards a remote FieldStore with a circuit breaker so an
// unreachable cache backend costs one fast failure per call instead of a
// network timeout. A missing entry is a successful call, not a failure.
type BreakerStore struct {
	inner   FieldStore
	circuit *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps inner. timeout is how long the breaker stays open
// before letting a trial request through.
func NewBreakerStore(inner FieldStore, name string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailuresToTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			if to == gobreaker.StateOpen {
				metrics.CacheBreakerOpen.Set(1)
			} else {
				metrics.CacheBreakerOpen.Set(0)
			}
		},
	})
	return &BreakerStore{inner: inner, circuit: cb}
}

func (s *BreakerStore) Load(ctx context.Context, key string) (map[string]string, error) {
	result, err := s.circuit.Execute(func() (any, error) {
		fields, err := s.inner.Load(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return fields, err
	})
	if err != nil {
		return nil, breakerErr("load", err)
	}
	fields, _ := result.(map[string]string)
	if fields == nil {
		return nil, ErrNotFound
	}
	return fields, nil
}

func (s *BreakerStore) Save(ctx context.Context, key string, fields map[string]string) error {
	_, err := s.circuit.Execute(func() (any, error) {
		return nil, s.inner.Save(ctx, key, fields)
	})
	if err != nil {
		return breakerErr("save", err)
	}
	return nil
}

// State reports the breaker state, for readiness and debugging.
func (s *BreakerStore) State() gobreaker.State {
	return s.circuit.State()
}

func breakerErr(op string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("cache %s: backend unavailable: %w", op, err)
	}
	return fmt.Errorf("cache %s: %w", op, err)
}
