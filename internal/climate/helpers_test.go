package climate

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordFunc fills the weather values of one record. dayOfYear is zero-based.
type recordFunc func(dayOfYear, hour, sub int) domain.WeatherRecord

type domainRecord = domain.WeatherRecord

// buildSeries lays out a calendar-correct series for a standard or leap year
// and lets fill choose the weather values.
func buildSeries(t *testing.T, leap bool, perHour int, fill recordFunc) domain.WeatherSeries {
	t.Helper()
	var records []domain.WeatherRecord
	dayOfYear := 0
	for m, numDays := range domain.DaysPerMonth(leap) {
		for d := 1; d <= numDays; d++ {
			for h := 0; h < domain.HoursPerDay; h++ {
				for s := 0; s < perHour; s++ {
					r := fill(dayOfYear, h, s)
					r.Month, r.Day, r.Hour = m+1, d, h
					if perHour > 1 {
						r.SubHour = s * 60 / perHour
					}
					records = append(records, r)
				}
			}
			dayOfYear++
		}
	}
	series, err := domain.NewWeatherSeries(records, perHour)
	require.NoError(t, err)
	return series
}

func constantSeries(t *testing.T, drybulbC, windMs float64) domain.WeatherSeries {
	return buildSeries(t, false, 1, func(_, _, _ int) domain.WeatherRecord {
		return domain.WeatherRecord{
			DryBulbC:         drybulbC,
			DewPointC:        drybulbC - 5,
			RelativeHumidity: 0.7,
			WindSpeedMs:      windMs,
		}
	})
}

// sinusoidSeries swings drybulb between 0 and 20 °C over the year, coldest in
// mid-January, with a daytime solar profile peaking at noon.
func sinusoidSeries(t *testing.T) domain.WeatherSeries {
	return buildSeries(t, false, 1, func(day, hour, _ int) domain.WeatherRecord {
		hourOfYear := float64(day*24 + hour)
		annual := 10 - 10*math.Cos(2*math.Pi*(hourOfYear-14*24)/8760)
		tdb := annual
		sun := math.Max(0, math.Sin(math.Pi*float64(hour-6)/12))
		return domain.WeatherRecord{
			DryBulbC:             tdb,
			DewPointC:            tdb - 4,
			RelativeHumidity:     0.75,
			DirectNormalWm2:      600 * sun,
			DiffuseHorizontalWm2: 120 * sun,
			WindSpeedMs:          3,
		}
	})
}
