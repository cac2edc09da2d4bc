package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		name    string
		current time.Duration
		want    time.Duration
	}{
		{"first retry", initialBackoff, 400 * time.Millisecond},
		{"below cap", 2 * time.Second, 4 * time.Second},
		{"reaches cap", 3 * time.Second, maxBackoff},
		{"stays at cap", maxBackoff, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextBackoff(tt.current))
		})
	}
}
