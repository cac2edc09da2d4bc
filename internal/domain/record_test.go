package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// yearRecords builds a calendar-correct year at the given resolution.
func yearRecords(leap bool, perHour int) []WeatherRecord {
	var out []WeatherRecord
	for m, numDays := range DaysPerMonth(leap) {
		for d := 1; d <= numDays; d++ {
			for h := range HoursPerDay {
				for s := range perHour {
					out = append(out, WeatherRecord{
						Month: m + 1, Day: d, Hour: h, SubHour: s * 60 / perHour,
						DryBulbC: 10, DewPointC: 5, RelativeHumidity: 0.7, WindSpeedMs: 2,
					})
				}
			}
		}
	}
	return out
}

func TestNewWeatherSeries_Valid(t *testing.T) {
	tests := []struct {
		name    string
		leap    bool
		perHour int
		days    int
	}{
		{"hourly standard year", false, 1, 365},
		{"hourly leap year", true, 1, 366},
		{"quarter-hourly", false, 4, 365},
		{"minutely", false, 60, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewWeatherSeries(yearRecords(tt.leap, tt.perHour), tt.perHour)

			require.NoError(t, err)
			assert.Equal(t, tt.days, s.Days())
			assert.Equal(t, tt.leap, s.IsLeapYear())
			assert.Equal(t, tt.days*24*tt.perHour, s.Len())
			assert.Equal(t, 24*tt.perHour, s.RecordsPerDay())
		})
	}
}

func TestNewWeatherSeries_ShapeErrors(t *testing.T) {
	year := yearRecords(false, 1)
	tests := []struct {
		name    string
		records []WeatherRecord
		perHour int
		reason  string
	}{
		{"empty", nil, 1, "empty"},
		{"unsupported resolution", year, 5, "unsupported records per hour"},
		{"partial day", year[:len(year)-3], 1, "whole number"},
		{"short year", year[:24*300], 1, "300 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeatherSeries(tt.records, tt.perHour)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, cfgErr.Reason, tt.reason)
		})
	}
}

func TestNewWeatherSeries_RecordErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *WeatherRecord)
		field  string
	}{
		{"NaN drybulb", func(r *WeatherRecord) { r.DryBulbC = math.NaN() }, "dry_bulb_c"},
		{"infinite wind", func(r *WeatherRecord) { r.WindSpeedMs = math.Inf(1) }, "wind_speed_ms"},
		{"humidity above one", func(r *WeatherRecord) { r.RelativeHumidity = 1.2 }, "relative_humidity"},
		{"negative direct normal", func(r *WeatherRecord) { r.DirectNormalWm2 = -1 }, "direct_normal_wm2"},
		{"hour out of range", func(r *WeatherRecord) { r.Hour = 24 }, "hour"},
		{"wrong calendar month", func(r *WeatherRecord) { r.Month = 3 }, "month"},
		{"mislabelled day", func(r *WeatherRecord) { r.Day = 31 }, "day"},
		{"duplicate hour", func(r *WeatherRecord) { r.Hour-- }, "hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := yearRecords(false, 1)
			tt.mutate(&records[800])

			_, err := NewWeatherSeries(records, 1)

			var dataErr *DataIntegrityError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, 800, dataErr.Index)
			assert.Equal(t, tt.field, dataErr.Field)
		})
	}
}

func TestNewWeatherSeries_Chronology(t *testing.T) {
	reversedDay := func() []WeatherRecord {
		records := yearRecords(false, 1)
		for i, j := 0, HoursPerDay-1; i < j; i, j = i+1, j-1 {
			records[i], records[j] = records[j], records[i]
		}
		return records
	}
	swappedQuarter := func() []WeatherRecord {
		records := yearRecords(false, 4)
		records[401], records[402] = records[402], records[401]
		return records
	}
	skippedDay := func() []WeatherRecord {
		records := yearRecords(false, 1)
		for i := 30 * HoursPerDay; i < 31*HoursPerDay; i++ {
			records[i].Day = 1
			records[i].Month = 2
		}
		return records
	}

	tests := []struct {
		name    string
		records []WeatherRecord
		perHour int
		index   int
		field   string
	}{
		{"hours reversed within a day", reversedDay(), 1, 0, "hour"},
		{"sub-hour slots swapped", swappedQuarter(), 4, 401, "sub_hour"},
		{"January 31 labelled February 1", skippedDay(), 1, 30 * HoursPerDay, "month"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeatherSeries(tt.records, tt.perHour)

			var dataErr *DataIntegrityError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, tt.index, dataErr.Index)
			assert.Equal(t, tt.field, dataErr.Field)
		})
	}
}

func TestNewWeatherSeries_HourlyIgnoresMinuteStamp(t *testing.T) {
	records := yearRecords(false, 1)
	for i := range records {
		records[i].SubHour = 0
	}
	records[5].SubHour = 59

	_, err := NewWeatherSeries(records, 1)
	assert.NoError(t, err)
}

func TestNewWeatherSeries_CopiesInput(t *testing.T) {
	records := yearRecords(false, 1)
	s, err := NewWeatherSeries(records, 1)
	require.NoError(t, err)

	records[0].DryBulbC = 99
	assert.Equal(t, 10.0, s.At(0).DryBulbC)

	out := s.Records()
	out[1].DryBulbC = 99
	assert.Equal(t, 10.0, s.At(1).DryBulbC)
}

func TestMonthOfDay(t *testing.T) {
	assert.Equal(t, 1, monthOfDay(0, false))
	assert.Equal(t, 2, monthOfDay(31, false))
	assert.Equal(t, 3, monthOfDay(59, false))
	assert.Equal(t, 2, monthOfDay(59, true))
	assert.Equal(t, 12, monthOfDay(364, false))
	assert.Equal(t, 12, monthOfDay(365, true))
}

func TestCalendarDate(t *testing.T) {
	tests := []struct {
		dayIndex   int
		leap       bool
		month, day int
	}{
		{0, false, 1, 1},
		{30, false, 1, 31},
		{31, false, 2, 1},
		{59, false, 3, 1},
		{59, true, 2, 29},
		{364, false, 12, 31},
		{365, true, 12, 31},
	}
	for _, tt := range tests {
		month, day := calendarDate(tt.dayIndex, tt.leap)
		assert.Equal(t, tt.month, month, "day index %d", tt.dayIndex)
		assert.Equal(t, tt.day, day, "day index %d", tt.dayIndex)
	}
}
