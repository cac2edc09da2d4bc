package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("weather/denver.epw"),
		Value:     []byte(`{"source_id":"weather/denver.epw"}`),
		Topic:     "weather-series",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "reader", Value: []byte("epw")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("weather/denver.epw"), raw.Key)
	assert.JSONEq(t, `{"source_id":"weather/denver.epw"}`, string(raw.Value))
	assert.Equal(t, "weather-series", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "epw", raw.Headers["reader"])
	assert.Nil(t, raw.Commit)
}

func TestToMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event, err := domain.SerializeBundle(domain.Bundle{
		SourceKey:    "weather/denver.epw",
		Header:       domain.ClimateHeader{Station: "725650"},
		DesignSource: domain.DesignSourceDerived,
		AnalyzedAt:   at,
	})
	require.NoError(t, err)

	msg := toMessage(event)

	assert.Equal(t, []byte("weather/denver.epw"), msg.Key)
	assert.Contains(t, string(msg.Value), `"design_source":"derived"`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "analyzed_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(at.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "design_source", msg.Headers[1].Key)
	assert.Equal(t, "station", msg.Headers[2].Key)
	assert.Equal(t, []byte("725650"), msg.Headers[2].Value)
}
