package cache

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-design-engine/internal/climate"
	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/fixture"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	sampleOnce  sync.Once
	sampleInput domain.AnalysisInput
	sampleOut   domain.Bundle
	sampleErr   error
)

// sampleBundle analyzes the reference fixture year once per test binary.
func sampleBundle(t *testing.T) (domain.AnalysisInput, domain.Bundle) {
	t.Helper()
	sampleOnce.Do(func() {
		domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 2, 14, 8, 30, 0, 123456789, time.UTC)))
		defer domain.SetClock(nil)

		opts := fixture.Default()
		opts.SourceID = "weather/SYN001.epw"
		opts.DiurnalSwingC = 6
		in, err := fixture.Request(opts).Input()
		if err != nil {
			sampleErr = err
			return
		}
		sampleInput = in
		sampleOut, sampleErr = climate.NewEngine(discardLogger()).Analyze(context.Background(), in)
	})
	require.NoError(t, sampleErr)
	return sampleInput, sampleOut
}
