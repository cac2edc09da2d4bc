package climate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// Engine runs the full climate analysis. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	infiltration InfiltrationParams
	logger       *slog.Logger
}

// NewEngine creates an Engine using the ASHRAE 62.2 reference building.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{infiltration: ReferenceBuilding, logger: logger}
}

// Analyze computes statistics, design conditions, ground and mains
// temperatures, and WSF for one weather series. Any error aborts the run
// without a partial bundle.
func (e *Engine) Analyze(ctx context.Context, in domain.AnalysisInput) (domain.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return domain.Bundle{}, err
	}
	if in.Series.Len() == 0 {
		return domain.Bundle{}, &domain.ConfigurationError{Reason: "weather series is empty"}
	}
	if err := in.Header.Validate(); err != nil {
		return domain.Bundle{}, err
	}
	source := in.Design
	if source == nil {
		source = domain.DerivedDesign{}
	}
	if native, ok := source.(domain.NativeDesign); ok && native.Data.DailyTemperatureRangeC == nil {
		e.logger.Warn("native design has no daily range, using the monthly mean range",
			"source_key", in.SourceKey, "month", dailyRangeMonthIndex+1)
	}

	start := time.Now()
	stats := Aggregate(in.Series)
	stats.GroundMonthlyTemps = GroundTemperatures(stats.AnnualAvgDrybulb, stats.MonthlyAvgDrybulbs)
	stats.WSF = e.infiltration.WeatherShelterFactor(in.Series)

	design, err := SolveDesign(source, in.Series, in.Header, stats)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("solve design conditions: %w", err)
	}

	solar, found := SelectSolarDesign(in.Series)
	if !found {
		e.logger.Warn("no summer records, solar design left zero", "source_key", in.SourceKey)
	}
	design.CoolingDirectNormal = solar.DirectNormal
	design.CoolingDiffuseHorizontal = solar.DiffuseHorizontal

	mains := MainsWaterTemperatures(stats.AnnualAvgDrybulb, monthlySpread(stats.MonthlyAvgDrybulbs), in.Header.Latitude)

	e.logger.Debug("climate analysis complete",
		"source_key", in.SourceKey,
		"station", in.Header.Station,
		"records", in.Series.Len(),
		"design_source", source.Kind(),
		"duration", time.Since(start),
	)

	return domain.Bundle{
		SourceKey:    in.SourceKey,
		Header:       in.Header,
		Statistics:   stats,
		Design:       design,
		DesignSource: source.Kind(),
		Mains:        mains,
		AnalyzedAt:   domain.Now(),
	}, nil
}

func monthlySpread(monthly [12]float64) float64 {
	return floats.Max(monthly[:]) - floats.Min(monthly[:])
}
