package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// Error kinds, used as the "kind" label of the analysis error metric.
const (
	KindParse         = "parse"
	KindDataIntegrity = "data_integrity"
	KindConfiguration = "configuration"
	KindInternal      = "internal"
)

// ErrorKind classifies a Transform error for metrics and logs.
func ErrorKind(err error) string {
	var (
		integrity *domain.DataIntegrityError
		cfg       *domain.ConfigurationError
		syntax    *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &integrity):
		return KindDataIntegrity
	case errors.As(err, &cfg):
		return KindConfiguration
	case errors.As(err, &syntax), errors.As(err, &typeErr):
		return KindParse
	default:
		return KindInternal
	}
}

// AnalysisTransformer implements Transformer: it decodes a request, runs it
// through an Analyzer, and serializes the resulting bundle.
type AnalysisTransformer struct {
	analyzer domain.Analyzer
	logger   *slog.Logger
}

// NewTransformer creates an AnalysisTransformer over analyzer, usually a
// cache.CachedAnalyzer wrapping the climate engine.
func NewTransformer(analyzer domain.Analyzer, logger *slog.Logger) *AnalysisTransformer {
	return &AnalysisTransformer{
		analyzer: analyzer,
		logger:   logger,
	}
}

func (t *AnalysisTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseAnalysisRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	in, err := req.Input()
	if err != nil {
		return domain.OutputEvent{}, err
	}

	bundle, err := t.analyzer.Analyze(ctx, in)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.logger.Debug("request analyzed",
		"source_key", bundle.SourceKey,
		"records", in.Series.Len(),
		"design_source", bundle.DesignSource,
	)
	return domain.SerializeBundle(bundle)
}
