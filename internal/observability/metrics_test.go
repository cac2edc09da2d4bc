package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.CacheLookups.WithLabelValues("hit").Inc()
	a.RequestsConsumed.Add(3)

	assert.InDelta(t, 1.0, testutil.ToFloat64(a.CacheLookups.WithLabelValues("hit")), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(a.RequestsConsumed), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.RequestsConsumed), 0)
}
