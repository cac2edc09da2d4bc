package domain

import (
	"fmt"
	"math"
)

// HoursPerDay is the number of hourly slots in one calendar day.
const HoursPerDay = 24

// supportedRecordsPerHour lists the sub-hourly resolutions a series may carry.
var supportedRecordsPerHour = map[int]bool{1: true, 2: true, 3: true, 4: true, 6: true, 12: true, 60: true}

// WeatherRecord is one observation at a fixed timestep. Every field is
// mandatory; a record is only constructed after its raw form passed validation.
type WeatherRecord struct {
	Month                int     `json:"month"`
	Day                  int     `json:"day"`
	Hour                 int     `json:"hour"`
	SubHour              int     `json:"sub_hour,omitempty"`
	DryBulbC             float64 `json:"dry_bulb_c"`
	DewPointC            float64 `json:"dew_point_c"`
	RelativeHumidity     float64 `json:"relative_humidity"` // fraction, 0–1
	DirectNormalWm2      float64 `json:"direct_normal_wm2"`
	DiffuseHorizontalWm2 float64 `json:"diffuse_horizontal_wm2"`
	WindSpeedMs          float64 `json:"wind_speed_ms"`
}

// WeatherSeries is an ordered, gap-free, whole-day sequence of records
// covering one calendar year (365 or 366 days). Each record's month matches
// the calendar position of its day. It is read-only once constructed.
type WeatherSeries struct {
	records        []WeatherRecord
	recordsPerHour int
}

// NewWeatherSeries validates the shape and chronology of records and wraps
// them in a WeatherSeries. Every record's month, day, hour and, for
// sub-hourly data, minute must match its position in the year. The slice is copied so later caller mutation cannot
// leak into an analysis.
func NewWeatherSeries(records []WeatherRecord, recordsPerHour int) (WeatherSeries, error) {
	if len(records) == 0 {
		return WeatherSeries{}, &ConfigurationError{Reason: "weather series is empty"}
	}
	if !supportedRecordsPerHour[recordsPerHour] {
		return WeatherSeries{}, &ConfigurationError{Reason: fmt.Sprintf("unsupported records per hour %d", recordsPerHour)}
	}

	perDay := HoursPerDay * recordsPerHour
	if len(records)%perDay != 0 {
		return WeatherSeries{}, &ConfigurationError{
			Reason: fmt.Sprintf("weather series has %d records, not a whole number of %d-record days", len(records), perDay),
		}
	}
	days := len(records) / perDay
	if days != 365 && days != 366 {
		return WeatherSeries{}, &ConfigurationError{Reason: fmt.Sprintf("weather series covers %d days, want 365 or 366", days)}
	}

	leap := days == 366
	for i, r := range records {
		if err := checkRecord(i, r); err != nil {
			return WeatherSeries{}, err
		}
		if err := checkPosition(i, r, recordsPerHour, leap); err != nil {
			return WeatherSeries{}, err
		}
	}

	owned := make([]WeatherRecord, len(records))
	copy(owned, records)
	return WeatherSeries{records: owned, recordsPerHour: recordsPerHour}, nil
}

// checkRecord rejects ranges and non-finite values that slipped past the raw
// validator, so NaN can never propagate into the statistics.
func checkRecord(i int, r WeatherRecord) error {
	switch {
	case r.Month < 1 || r.Month > 12:
		return &DataIntegrityError{Index: i, Field: "month", Reason: "outside 1-12"}
	case r.Day < 1 || r.Day > 31:
		return &DataIntegrityError{Index: i, Field: "day", Reason: "outside 1-31"}
	case r.Hour < 0 || r.Hour > 23:
		return &DataIntegrityError{Index: i, Field: "hour", Reason: "outside 0-23"}
	}

	fields := []struct {
		name string
		v    float64
	}{
		{"dry_bulb_c", r.DryBulbC},
		{"dew_point_c", r.DewPointC},
		{"relative_humidity", r.RelativeHumidity},
		{"direct_normal_wm2", r.DirectNormalWm2},
		{"diffuse_horizontal_wm2", r.DiffuseHorizontalWm2},
		{"wind_speed_ms", r.WindSpeedMs},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &DataIntegrityError{Index: i, Field: f.name, Reason: "not a finite number"}
		}
	}

	switch {
	case r.RelativeHumidity < 0 || r.RelativeHumidity > 1:
		return &DataIntegrityError{Index: i, Field: "relative_humidity", Reason: "outside 0-1"}
	case r.DirectNormalWm2 < 0:
		return &DataIntegrityError{Index: i, Field: "direct_normal_wm2", Reason: "negative"}
	case r.DiffuseHorizontalWm2 < 0:
		return &DataIntegrityError{Index: i, Field: "diffuse_horizontal_wm2", Reason: "negative"}
	case r.WindSpeedMs < 0:
		return &DataIntegrityError{Index: i, Field: "wind_speed_ms", Reason: "negative"}
	}
	return nil
}

// checkPosition rejects a record whose timestamp does not match its slot in
// the series, so reordered, duplicated or skipped timesteps never reach the
// order-dependent infiltration fold. Hourly data carries no sub-hour stamp
// worth checking: weather files write minute 0 or 60 interchangeably.
func checkPosition(i int, r WeatherRecord, perHour int, leap bool) error {
	perDay := HoursPerDay * perHour
	dayIndex := i / perDay
	month, day := calendarDate(dayIndex, leap)
	hour := (i % perDay) / perHour
	subHour := (i % perHour) * 60 / perHour

	switch {
	case r.Month != month:
		return &DataIntegrityError{
			Index:  i,
			Field:  "month",
			Reason: fmt.Sprintf("is %d, calendar day %d falls in month %d", r.Month, dayIndex+1, month),
		}
	case r.Day != day:
		return &DataIntegrityError{
			Index:  i,
			Field:  "day",
			Reason: fmt.Sprintf("is %d, calendar day %d is day %d of month %d", r.Day, dayIndex+1, day, month),
		}
	case r.Hour != hour:
		return &DataIntegrityError{
			Index:  i,
			Field:  "hour",
			Reason: fmt.Sprintf("is %d, expected hour %d on %d/%d", r.Hour, hour, month, day),
		}
	case perHour > 1 && r.SubHour != subHour:
		return &DataIntegrityError{
			Index:  i,
			Field:  "sub_hour",
			Reason: fmt.Sprintf("is %d, expected minute %d of hour %d on %d/%d", r.SubHour, subHour, hour, month, day),
		}
	}
	return nil
}

// Len returns the number of records.
func (s WeatherSeries) Len() int { return len(s.records) }

// RecordsPerHour returns the timestep resolution.
func (s WeatherSeries) RecordsPerHour() int { return s.recordsPerHour }

// RecordsPerDay returns the number of records making up one calendar day.
func (s WeatherSeries) RecordsPerDay() int { return HoursPerDay * s.recordsPerHour }

// Days returns the number of calendar days covered.
func (s WeatherSeries) Days() int {
	if s.recordsPerHour == 0 {
		return 0
	}
	return len(s.records) / s.RecordsPerDay()
}

// IsLeapYear reports whether the series covers 366 days.
func (s WeatherSeries) IsLeapYear() bool { return s.Days() == 366 }

// At returns the i-th record.
func (s WeatherSeries) At(i int) WeatherRecord { return s.records[i] }

// Records returns a copy of the records in chronological order.
func (s WeatherSeries) Records() []WeatherRecord {
	out := make([]WeatherRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Each calls fn for every record in chronological order.
func (s WeatherSeries) Each(fn func(i int, r WeatherRecord)) {
	for i, r := range s.records {
		fn(i, r)
	}
}
