package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// SchemaVersion is bumped whenever a field is renamed or its meaning changes.
// Entries written under another version decode as corrupt and are recomputed.
const SchemaVersion = "1"

const (
	fieldSchemaVersion = "SchemaVersion"
	fieldDesignSource  = "DesignSource"
	fieldAnalyzedAt    = "AnalyzedAt"
)

type textField struct {
	name string
	ref  func(b *domain.Bundle) *string
}

type scalarField struct {
	name string
	ref  func(b *domain.Bundle) *float64
}

type arrayField struct {
	name string
	ref  func(b *domain.Bundle) []float64
}

var textFields = []textField{
	{"Station", func(b *domain.Bundle) *string { return &b.Header.Station }},
	{"City", func(b *domain.Bundle) *string { return &b.Header.City }},
	{"State", func(b *domain.Bundle) *string { return &b.Header.State }},
	{"Country", func(b *domain.Bundle) *string { return &b.Header.Country }},
	{"DataSource", func(b *domain.Bundle) *string { return &b.Header.DataSource }},
}

var scalarFields = []scalarField{
	{"Latitude", func(b *domain.Bundle) *float64 { return &b.Header.Latitude }},
	{"Longitude", func(b *domain.Bundle) *float64 { return &b.Header.Longitude }},
	{"Timezone", func(b *domain.Bundle) *float64 { return &b.Header.Timezone }},
	{"Elevation", func(b *domain.Bundle) *float64 { return &b.Header.ElevationM }},

	{"AnnualAvgDrybulb", func(b *domain.Bundle) *float64 { return &b.Statistics.AnnualAvgDrybulb }},
	{"AnnualMinDrybulb", func(b *domain.Bundle) *float64 { return &b.Statistics.AnnualMinDrybulb }},
	{"AnnualMaxDrybulb", func(b *domain.Bundle) *float64 { return &b.Statistics.AnnualMaxDrybulb }},
	{"HDD50F", func(b *domain.Bundle) *float64 { return &b.Statistics.HDD50F }},
	{"HDD65F", func(b *domain.Bundle) *float64 { return &b.Statistics.HDD65F }},
	{"CDD50F", func(b *domain.Bundle) *float64 { return &b.Statistics.CDD50F }},
	{"CDD65F", func(b *domain.Bundle) *float64 { return &b.Statistics.CDD65F }},
	{"AnnualAvgWindspeed", func(b *domain.Bundle) *float64 { return &b.Statistics.AnnualAvgWindspeed }},
	{"WSF", func(b *domain.Bundle) *float64 { return &b.Statistics.WSF }},

	{"HeatingDrybulb", func(b *domain.Bundle) *float64 { return &b.Design.HeatingDrybulb }},
	{"HeatingWindspeed", func(b *domain.Bundle) *float64 { return &b.Design.HeatingWindspeed }},
	{"CoolingDrybulb", func(b *domain.Bundle) *float64 { return &b.Design.CoolingDrybulb }},
	{"CoolingWetbulb", func(b *domain.Bundle) *float64 { return &b.Design.CoolingWetbulb }},
	{"CoolingHumidityRatio", func(b *domain.Bundle) *float64 { return &b.Design.CoolingHumidityRatio }},
	{"CoolingWindspeed", func(b *domain.Bundle) *float64 { return &b.Design.CoolingWindspeed }},
	{"DailyTemperatureRange", func(b *domain.Bundle) *float64 { return &b.Design.DailyTemperatureRange }},
	{"DehumidDrybulb", func(b *domain.Bundle) *float64 { return &b.Design.DehumidDrybulb }},
	{"DehumidHumidityRatio", func(b *domain.Bundle) *float64 { return &b.Design.DehumidHumidityRatio }},
	{"CoolingDirectNormal", func(b *domain.Bundle) *float64 { return &b.Design.CoolingDirectNormal }},
	{"CoolingDiffuseHorizontal", func(b *domain.Bundle) *float64 { return &b.Design.CoolingDiffuseHorizontal }},

	{"MainsAnnualTemp", func(b *domain.Bundle) *float64 { return &b.Mains.AnnualTemp }},
}

var arrayFields = []arrayField{
	{"MonthlyAvgDrybulbs", func(b *domain.Bundle) []float64 { return b.Statistics.MonthlyAvgDrybulbs[:] }},
	{"MonthlyAvgDailyHighDrybulbs", func(b *domain.Bundle) []float64 { return b.Statistics.MonthlyAvgDailyHighDrybulbs[:] }},
	{"MonthlyAvgDailyLowDrybulbs", func(b *domain.Bundle) []float64 { return b.Statistics.MonthlyAvgDailyLowDrybulbs[:] }},
	{"GroundMonthlyTemps", func(b *domain.Bundle) []float64 { return b.Statistics.GroundMonthlyTemps[:] }},
	{"MainsMonthlyTemps", func(b *domain.Bundle) []float64 { return b.Mains.MonthlyTemps[:] }},
	{"MainsDailyTemps", func(b *domain.Bundle) []float64 { return b.Mains.DailyTemps[:] }},
}

// Encode flattens a bundle into named string fields.
func Encode(b domain.Bundle) map[string]string {
	fields := make(map[string]string, len(textFields)+len(scalarFields)+len(arrayFields)+3)
	fields[fieldSchemaVersion] = SchemaVersion
	fields[fieldDesignSource] = b.DesignSource
	fields[fieldAnalyzedAt] = b.AnalyzedAt.UTC().Format(time.RFC3339Nano)

	for _, f := range textFields {
		fields[f.name] = *f.ref(&b)
	}
	for _, f := range scalarFields {
		fields[f.name] = formatFloat(*f.ref(&b))
	}
	for _, f := range arrayFields {
		values := f.ref(&b)
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = formatFloat(v)
		}
		fields[f.name] = strings.Join(parts, ",")
	}
	return fields
}

// Decode rebuilds a bundle from its fields. Any missing or malformed field
// yields a *domain.CacheDeserializationError.
func Decode(key string, fields map[string]string) (domain.Bundle, error) {
	b := domain.Bundle{SourceKey: key}
	fail := func(field string, err error) (domain.Bundle, error) {
		return domain.Bundle{}, &domain.CacheDeserializationError{Key: key, Field: field, Err: err}
	}

	version, ok := fields[fieldSchemaVersion]
	if !ok {
		return fail(fieldSchemaVersion, nil)
	}
	if version != SchemaVersion {
		return fail(fieldSchemaVersion, fmt.Errorf("version %q, want %q", version, SchemaVersion))
	}

	source, ok := fields[fieldDesignSource]
	if !ok {
		return fail(fieldDesignSource, nil)
	}
	if source != domain.DesignSourceNative && source != domain.DesignSourceDerived {
		return fail(fieldDesignSource, fmt.Errorf("unknown design source %q", source))
	}
	b.DesignSource = source

	at, ok := fields[fieldAnalyzedAt]
	if !ok {
		return fail(fieldAnalyzedAt, nil)
	}
	analyzedAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return fail(fieldAnalyzedAt, err)
	}
	b.AnalyzedAt = analyzedAt.UTC()

	for _, f := range textFields {
		v, ok := fields[f.name]
		if !ok {
			return fail(f.name, nil)
		}
		*f.ref(&b) = v
	}
	for _, f := range scalarFields {
		v, ok := fields[f.name]
		if !ok {
			return fail(f.name, nil)
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fail(f.name, err)
		}
		*f.ref(&b) = parsed
	}
	for _, f := range arrayFields {
		v, ok := fields[f.name]
		if !ok {
			return fail(f.name, nil)
		}
		if err := parseArray(v, f.ref(&b)); err != nil {
			return fail(f.name, err)
		}
	}
	return b, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseArray(s string, dst []float64) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("empty array")
	}
	parts := strings.Split(s, ",")
	if len(parts) != len(dst) {
		return fmt.Errorf("want %d values, got %d", len(dst), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		dst[i] = v
	}
	return nil
}
