package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// AnalysisRequest is the JSON payload an external weather-file reader
// publishes: site metadata, the hourly records, and optionally the design
// values embedded in the weather product.
type AnalysisRequest struct {
	SourceID       string            `json:"source_id,omitempty"`
	Header         ClimateHeader     `json:"header"`
	RecordsPerHour int               `json:"records_per_hour,omitempty"`
	Records        []RawRecord       `json:"records"`
	Design         *NativeDesignData `json:"design,omitempty"`
}

// ParseAnalysisRequest deserializes a RawEvent's value into an AnalysisRequest.
// A missing records-per-hour defaults to hourly data.
func ParseAnalysisRequest(raw RawEvent) (AnalysisRequest, error) {
	var req AnalysisRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AnalysisRequest{}, fmt.Errorf("parse analysis request: %w", err)
	}
	if req.RecordsPerHour == 0 {
		req.RecordsPerHour = 1
	}
	return req, nil
}

// Series validates the request's header and records and assembles the
// WeatherSeries an analysis runs over.
func (r AnalysisRequest) Series() (WeatherSeries, error) {
	if err := r.Header.Validate(); err != nil {
		return WeatherSeries{}, err
	}
	if len(r.Records) == 0 {
		return WeatherSeries{}, &ConfigurationError{Reason: "analysis request carries no weather records"}
	}
	records, err := RecordsFromRaw(r.Records)
	if err != nil {
		return WeatherSeries{}, err
	}
	perHour := r.RecordsPerHour
	if perHour == 0 {
		perHour = 1
	}
	return NewWeatherSeries(records, perHour)
}

// SerializeBundle marshals a Bundle into a sink message keyed by its source key.
func SerializeBundle(b Bundle) (OutputEvent, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize bundle: %w", err)
	}
	return OutputEvent{
		Key:   []byte(b.SourceKey),
		Value: data,
		Headers: map[string]string{
			"station":       b.Header.Station,
			"design_source": b.DesignSource,
			"analyzed_at":   b.AnalyzedAt.Format(time.RFC3339),
		},
	}, nil
}
