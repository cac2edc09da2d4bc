package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() RawRecord {
	return RawFromRecord(WeatherRecord{
		Month: 1, Day: 1, Hour: 0,
		DryBulbC: -3.5, DewPointC: -8, RelativeHumidity: 0.7,
		DirectNormalWm2: 0, DiffuseHorizontalWm2: 0, WindSpeedMs: 4.1,
	})
}

func TestRecordsFromRaw(t *testing.T) {
	got, err := RecordsFromRaw([]RawRecord{validRaw()})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, -3.5, got[0].DryBulbC)
	assert.Equal(t, 4.1, got[0].WindSpeedMs)
}

func TestRecordsFromRaw_ZeroIsNotMissing(t *testing.T) {
	raw := validRaw()
	zero := 0.0
	raw.DryBulbC = &zero

	got, err := RecordsFromRaw([]RawRecord{raw})

	require.NoError(t, err)
	assert.Equal(t, 0.0, got[0].DryBulbC)
}

func TestRecordsFromRaw_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *RawRecord)
		field  string
		reason string
	}{
		{"missing drybulb", func(r *RawRecord) { r.DryBulbC = nil }, "dry_bulb_c", "missing"},
		{"missing month", func(r *RawRecord) { r.Month = nil }, "month", "missing"},
		{"negative wind", func(r *RawRecord) { v := -1.0; r.WindSpeedMs = &v }, "wind_speed_ms", "violates min=0"},
		{"humidity percent", func(r *RawRecord) { v := 70.0; r.RelativeHumidity = &v }, "relative_humidity", "violates max=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := validRaw()
			tt.mutate(&bad)

			_, err := RecordsFromRaw([]RawRecord{validRaw(), bad})

			var dataErr *DataIntegrityError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, 1, dataErr.Index)
			assert.Equal(t, tt.field, dataErr.Field)
			assert.Equal(t, tt.reason, dataErr.Reason)
		})
	}
}
