package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = ClimateHeader{Station: "725650", City: "Denver", State: "CO", Latitude: 39.83, Longitude: -104.65, ElevationM: 1650}

func requestJSON(t *testing.T, req AnalysisRequest) []byte {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return data
}

func yearRequest() AnalysisRequest {
	records := yearRecords(false, 1)
	raws := make([]RawRecord, len(records))
	for i, r := range records {
		raws[i] = RawFromRecord(r)
	}
	return AnalysisRequest{SourceID: "USA_CO_Denver.epw", Header: testHeader, Records: raws}
}

func TestParseAnalysisRequest(t *testing.T) {
	raw := RawEvent{Value: requestJSON(t, yearRequest())}

	req, err := ParseAnalysisRequest(raw)

	require.NoError(t, err)
	assert.Equal(t, "USA_CO_Denver.epw", req.SourceID)
	assert.Equal(t, testHeader, req.Header)
	assert.Equal(t, 1, req.RecordsPerHour)
	assert.Len(t, req.Records, 8760)
	assert.Nil(t, req.Design)
}

func TestParseAnalysisRequest_MissingFieldSurvivesDecode(t *testing.T) {
	data := []byte(`{"header":{"station":"X"},"records":[{"month":1,"day":1,"hour":0,"dew_point_c":1,"relative_humidity":0.5,"direct_normal_wm2":0,"diffuse_horizontal_wm2":0,"wind_speed_ms":1}]}`)

	req, err := ParseAnalysisRequest(RawEvent{Value: data})

	require.NoError(t, err)
	assert.Nil(t, req.Records[0].DryBulbC)

	_, err = req.Records[0].toRecord(0)
	var dataErr *DataIntegrityError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "dry_bulb_c", dataErr.Field)
}

func TestParseAnalysisRequest_InvalidJSON(t *testing.T) {
	_, err := ParseAnalysisRequest(RawEvent{Value: []byte(`{not json`)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse analysis request")
}

func TestAnalysisRequest_Series(t *testing.T) {
	s, err := yearRequest().Series()

	require.NoError(t, err)
	assert.Equal(t, 8760, s.Len())
	assert.Equal(t, 1, s.RecordsPerHour())
}

func TestAnalysisRequest_SeriesErrors(t *testing.T) {
	noRecords := yearRequest()
	noRecords.Records = nil

	noStation := yearRequest()
	noStation.Header.Station = "  "

	_, err := noRecords.Series()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))

	_, err = noStation.Series()
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "station")
}

func TestAnalysisRequest_Input(t *testing.T) {
	req := yearRequest()
	dtr := 12.0
	req.Design = &NativeDesignData{HeatingDrybulbC: -17, DailyTemperatureRangeC: &dtr}

	in, err := req.Input()

	require.NoError(t, err)
	assert.Equal(t, "USA_CO_Denver.epw", in.SourceKey)
	assert.Equal(t, DesignSourceNative, in.Design.Kind())
	native, ok := in.Design.(NativeDesign)
	require.True(t, ok)
	assert.Equal(t, -17.0, native.Data.HeatingDrybulbC)

	req.Design = nil
	in, err = req.Input()
	require.NoError(t, err)
	assert.Equal(t, DerivedDesign{}, in.Design)
}

func TestSerializeBundle(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	b := Bundle{
		SourceKey:    "USA_CO_Denver.epw",
		Header:       testHeader,
		Statistics:   ClimateStatistics{AnnualAvgDrybulb: 50.4, HDD65F: 6020},
		Design:       DesignConditions{HeatingDrybulb: 1.0, CoolingDrybulb: 93.0},
		DesignSource: DesignSourceDerived,
		AnalyzedAt:   Now(),
	}

	out, err := SerializeBundle(b)

	require.NoError(t, err)
	assert.Equal(t, []byte("USA_CO_Denver.epw"), out.Key)
	assert.Equal(t, "725650", out.Headers["station"])
	assert.Equal(t, "derived", out.Headers["design_source"])
	assert.Equal(t, "2026-03-01T12:00:00Z", out.Headers["analyzed_at"])

	var decoded Bundle
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.Equal(t, b, decoded)
}
