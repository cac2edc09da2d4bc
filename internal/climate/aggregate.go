package climate

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/units"
)

// Degree-day base temperatures, °F.
const (
	degreeDayBase50F = 50.0
	degreeDayBase65F = 65.0
)

// DailyDrybulb summarizes one calendar day of drybulb readings, °C.
type DailyDrybulb struct {
	Mean float64
	Max  float64
	Min  float64
}

// DailyDrybulbs groups the series into calendar days and summarizes each.
func DailyDrybulbs(series domain.WeatherSeries) []DailyDrybulb {
	perDay := series.RecordsPerDay()
	days := make([]DailyDrybulb, 0, series.Days())
	values := make([]float64, perDay)

	for d := 0; d < series.Days(); d++ {
		for k := 0; k < perDay; k++ {
			values[k] = series.At(d*perDay + k).DryBulbC
		}
		days = append(days, DailyDrybulb{
			Mean: stat.Mean(values, nil),
			Max:  floats.Max(values),
			Min:  floats.Min(values),
		})
	}
	return days
}

// Aggregate computes the annual and monthly drybulb statistics, degree-days,
// and mean windspeed of a series. Ground temperatures and WSF are left zero;
// they come from their own models.
func Aggregate(series domain.WeatherSeries) domain.ClimateStatistics {
	n := series.Len()
	drybulbs := make([]float64, n)
	winds := make([]float64, n)
	var monthly [12][]float64

	series.Each(func(i int, r domain.WeatherRecord) {
		drybulbs[i] = r.DryBulbC
		winds[i] = r.WindSpeedMs
		monthly[r.Month-1] = append(monthly[r.Month-1], r.DryBulbC)
	})

	var stats domain.ClimateStatistics
	stats.AnnualAvgDrybulb = units.CToF(stat.Mean(drybulbs, nil))
	stats.AnnualMinDrybulb = units.CToF(floats.Min(drybulbs))
	stats.AnnualMaxDrybulb = units.CToF(floats.Max(drybulbs))
	stats.AnnualAvgWindspeed = stat.Mean(winds, nil)

	for m := range monthly {
		stats.MonthlyAvgDrybulbs[m] = units.CToF(stat.Mean(monthly[m], nil))
	}

	daily := DailyDrybulbs(series)
	means := make([]float64, len(daily))
	for i, d := range daily {
		means[i] = d.Mean
	}
	stats.HDD50F = HeatingDegreeDays(means, degreeDayBase50F)
	stats.HDD65F = HeatingDegreeDays(means, degreeDayBase65F)
	stats.CDD50F = CoolingDegreeDays(means, degreeDayBase50F)
	stats.CDD65F = CoolingDegreeDays(means, degreeDayBase65F)

	stats.MonthlyAvgDailyHighDrybulbs, stats.MonthlyAvgDailyLowDrybulbs = monthlyHighsLows(daily, series.IsLeapYear())
	return stats
}

// HeatingDegreeDays sums (base - mean) over days colder than the base.
// Daily means are °C, the base and the result are °F (°F·day).
func HeatingDegreeDays(dailyMeansC []float64, baseF float64) float64 {
	base := units.FToC(baseF)
	var deficits []float64
	for _, t := range dailyMeansC {
		if t < base {
			deficits = append(deficits, base-t)
		}
	}
	return degreeDaysF(deficits)
}

// CoolingDegreeDays sums (mean - base) over days warmer than the base.
func CoolingDegreeDays(dailyMeansC []float64, baseF float64) float64 {
	base := units.FToC(baseF)
	var excesses []float64
	for _, t := range dailyMeansC {
		if t > base {
			excesses = append(excesses, t-base)
		}
	}
	return degreeDaysF(excesses)
}

func degreeDaysF(diffsC []float64) float64 {
	if len(diffsC) == 0 {
		return 0.0
	}
	return units.DeltaCToF(floats.Sum(diffsC))
}

// monthlyHighsLows averages daily maxima and minima per calendar month, °F.
func monthlyHighsLows(daily []DailyDrybulb, leap bool) (highs, lows [12]float64) {
	first := 0
	for m, numDays := range domain.DaysPerMonth(leap) {
		var sumHigh, sumLow float64
		for _, d := range daily[first : first+numDays] {
			sumHigh += d.Max
			sumLow += d.Min
		}
		highs[m] = units.CToF(sumHigh / float64(numDays))
		lows[m] = units.CToF(sumLow / float64(numDays))
		first += numDays
	}
	return highs, lows
}
