package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawRecord is the wire form of a WeatherRecord as produced by an external
// weather-file reader. Pointer fields distinguish "missing" from zero.
type RawRecord struct {
	Month                *int     `json:"month" validate:"required,min=1,max=12"`
	Day                  *int     `json:"day" validate:"required,min=1,max=31"`
	Hour                 *int     `json:"hour" validate:"required,min=0,max=23"`
	SubHour              int      `json:"sub_hour,omitempty" validate:"min=0,max=59"`
	DryBulbC             *float64 `json:"dry_bulb_c" validate:"required"`
	DewPointC            *float64 `json:"dew_point_c" validate:"required"`
	RelativeHumidity     *float64 `json:"relative_humidity" validate:"required,min=0,max=1"`
	DirectNormalWm2      *float64 `json:"direct_normal_wm2" validate:"required,min=0"`
	DiffuseHorizontalWm2 *float64 `json:"diffuse_horizontal_wm2" validate:"required,min=0"`
	WindSpeedMs          *float64 `json:"wind_speed_ms" validate:"required,min=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so errors point at the field the reader actually emitted.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RecordsFromRaw converts raw records into WeatherRecords. The first record
// with a missing or out-of-range field aborts the conversion with a
// DataIntegrityError naming the record index and field.
func RecordsFromRaw(raws []RawRecord) ([]WeatherRecord, error) {
	out := make([]WeatherRecord, 0, len(raws))
	for i := range raws {
		rec, err := raws[i].toRecord(i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r RawRecord) toRecord(index int) (WeatherRecord, error) {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			reason := "missing"
			if fe.Tag() != "required" {
				reason = "violates " + fe.Tag() + "=" + fe.Param()
			}
			return WeatherRecord{}, &DataIntegrityError{Index: index, Field: fe.Field(), Reason: reason}
		}
		return WeatherRecord{}, &DataIntegrityError{Index: index, Field: "record", Reason: err.Error()}
	}

	return WeatherRecord{
		Month:                *r.Month,
		Day:                  *r.Day,
		Hour:                 *r.Hour,
		SubHour:              r.SubHour,
		DryBulbC:             *r.DryBulbC,
		DewPointC:            *r.DewPointC,
		RelativeHumidity:     *r.RelativeHumidity,
		DirectNormalWm2:      *r.DirectNormalWm2,
		DiffuseHorizontalWm2: *r.DiffuseHorizontalWm2,
		WindSpeedMs:          *r.WindSpeedMs,
	}, nil
}

// RawFromRecord is the inverse of RecordsFromRaw for a single record. Fixture
// generators and tests use it to build wire payloads.
func RawFromRecord(r WeatherRecord) RawRecord {
	return RawRecord{
		Month:                &r.Month,
		Day:                  &r.Day,
		Hour:                 &r.Hour,
		SubHour:              r.SubHour,
		DryBulbC:             &r.DryBulbC,
		DewPointC:            &r.DewPointC,
		RelativeHumidity:     &r.RelativeHumidity,
		DirectNormalWm2:      &r.DirectNormalWm2,
		DiffuseHorizontalWm2: &r.DiffuseHorizontalWm2,
		WindSpeedMs:          &r.WindSpeedMs,
	}
}
