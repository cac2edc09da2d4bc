// Package fixture builds synthetic weather years for tests, local runs, and
// the genmock command.
package fixture

import (
	"math"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// Options shapes a synthetic year. Drybulb follows an annual cosine with its
// minimum in mid-January plus a diurnal swing peaking mid-afternoon.
type Options struct {
	Station        string
	SourceID       string
	Latitude       float64
	Longitude      float64
	ElevationM     float64
	MeanC          float64
	AnnualSwingC   float64 // half the spread between the coldest and warmest hour trend
	DiurnalSwingC  float64
	DewDepressionC float64
	WindMs         float64
	PeakDNIWm2     float64
	PeakDHIWm2     float64
	RecordsPerHour int
	Leap           bool
}

// Default returns the reference year: 0–20 °C annual swing, steady 3 m/s wind.
func Default() Options {
	return Options{
		Station:        "SYN001",
		Latitude:       40.0,
		Longitude:      -105.0,
		ElevationM:     0,
		MeanC:          10,
		AnnualSwingC:   10,
		DewDepressionC: 4,
		WindMs:         3,
		PeakDNIWm2:     800,
		PeakDHIWm2:     150,
		RecordsPerHour: 1,
	}
}

// Header returns the site header for the options.
func (o Options) Header() domain.ClimateHeader {
	return domain.ClimateHeader{
		Station:    o.Station,
		City:       "Synthetic",
		Country:    "USA",
		DataSource: "fixture",
		Latitude:   o.Latitude,
		Longitude:  o.Longitude,
		Timezone:   math.Round(o.Longitude / 15),
		ElevationM: o.ElevationM,
	}
}

// Records generates a calendar-correct year of records.
func Records(o Options) []domain.WeatherRecord {
	perHour := max(o.RecordsPerHour, 1)
	days := domain.DaysPerMonth(o.Leap)
	yearHours := 0.0
	for _, n := range days {
		yearHours += float64(n * domain.HoursPerDay)
	}

	records := make([]domain.WeatherRecord, 0, int(yearHours)*perHour)
	dayOfYear := 0
	for m, numDays := range days {
		for d := 1; d <= numDays; d++ {
			for h := 0; h < domain.HoursPerDay; h++ {
				for s := 0; s < perHour; s++ {
					t := float64(dayOfYear*domain.HoursPerDay+h) + float64(s)/float64(perHour)
					records = append(records, o.record(m+1, d, h, s*60/perHour, t, yearHours))
				}
			}
			dayOfYear++
		}
	}
	return records
}

func (o Options) record(month, day, hour, subHour int, hourOfYear, yearHours float64) domain.WeatherRecord {
	annual := o.MeanC - o.AnnualSwingC*math.Cos(2*math.Pi*(hourOfYear-14*24)/yearHours)
	hourOfDay := math.Mod(hourOfYear, 24)
	diurnal := o.DiurnalSwingC * math.Cos(2*math.Pi*(hourOfDay-15)/24)
	tdb := annual + diurnal
	sun := math.Max(0, math.Sin(math.Pi*(hourOfDay-6)/12))

	dew := tdb - o.DewDepressionC
	return domain.WeatherRecord{
		Month:                month,
		Day:                  day,
		Hour:                 hour,
		SubHour:              subHour,
		DryBulbC:             tdb,
		DewPointC:            dew,
		RelativeHumidity:     relativeHumidity(tdb, dew),
		DirectNormalWm2:      o.PeakDNIWm2 * sun,
		DiffuseHorizontalWm2: o.PeakDHIWm2 * sun,
		WindSpeedMs:          o.WindMs,
	}
}

// relativeHumidity uses the Magnus approximation; fixture data only needs to
// be physically plausible.
func relativeHumidity(tdb, dew float64) float64 {
	const a, b = 17.625, 243.04
	rh := math.Exp(a*dew/(b+dew)) / math.Exp(a*tdb/(b+tdb))
	return math.Min(1, math.Max(0, rh))
}

// Series builds a validated WeatherSeries.
func Series(o Options) (domain.WeatherSeries, error) {
	return domain.NewWeatherSeries(Records(o), max(o.RecordsPerHour, 1))
}

// Request builds the wire payload an external reader would publish.
func Request(o Options) domain.AnalysisRequest {
	records := Records(o)
	raws := make([]domain.RawRecord, len(records))
	for i, r := range records {
		raws[i] = domain.RawFromRecord(r)
	}
	return domain.AnalysisRequest{
		SourceID:       o.SourceID,
		Header:         o.Header(),
		RecordsPerHour: max(o.RecordsPerHour, 1),
		Records:        raws,
	}
}
