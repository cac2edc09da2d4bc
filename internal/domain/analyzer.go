package domain

import "context"

// AnalysisInput is everything one analysis run needs. The series is owned by
// the run and never mutated.
type AnalysisInput struct {
	SourceKey string
	Header    ClimateHeader
	Series    WeatherSeries
	Design    DesignSource
}

// Analyzer derives a Bundle from validated input.
type Analyzer interface {
	Analyze(ctx context.Context, in AnalysisInput) (Bundle, error)
}

// Input validates the request and resolves its cache key and design source.
func (r AnalysisRequest) Input() (AnalysisInput, error) {
	series, err := r.Series()
	if err != nil {
		return AnalysisInput{}, err
	}
	return AnalysisInput{
		SourceKey: SourceKey(r.SourceID, r.Header, series),
		Header:    r.Header,
		Series:    series,
		Design:    DesignSourceFor(r.Design),
	}, nil
}
