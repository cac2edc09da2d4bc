package climate

import (
	"fmt"
	"math"
	"sort"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/psychro"
	"github.com/couchcryptid/climate-design-engine/internal/units"
)

// Percentile fractions of annual hours used for the design points.
const (
	heatingPercentile = 0.01 // 99% of hours are warmer
	coolingPercentile = 0.99
	dehumidPercentile = 0.98

	// Half-width of the band, °C, used for mean-coincident values.
	coincidentBand = 0.5

	// Zero-based month index whose mean daily range stands in for the summer
	// daily range when the weather product has none. Northern-hemisphere
	// convention; southern sites are not compensated.
	dailyRangeMonthIndex = 7
)

// PercentileIndex returns the sorted-array index for percentile fraction p of
// n samples: round(p*n), clamped to the valid range.
func PercentileIndex(n int, p float64) int {
	i := int(math.Round(p * float64(n)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// SolveDesign resolves design conditions from the given source. Native data
// passes through with unit conversion; otherwise the conditions are derived
// from the series by percentile selection. Solar fields are left zero.
func SolveDesign(source domain.DesignSource, series domain.WeatherSeries, header domain.ClimateHeader, stats domain.ClimateStatistics) (domain.DesignConditions, error) {
	switch s := source.(type) {
	case domain.NativeDesign:
		return nativeDesign(s.Data, stats), nil
	case domain.DerivedDesign:
		if series.Len() == 0 {
			return domain.DesignConditions{}, &domain.ConfigurationError{Reason: "cannot derive design conditions from an empty series"}
		}
		return deriveDesign(series, header.StandardPressureKPa(), stats), nil
	default:
		return domain.DesignConditions{}, fmt.Errorf("unknown design source %T", source)
	}
}

func nativeDesign(n domain.NativeDesignData, stats domain.ClimateStatistics) domain.DesignConditions {
	d := domain.DesignConditions{
		HeatingDrybulb:       units.CToF(n.HeatingDrybulbC),
		HeatingWindspeed:     n.HeatingWindspeedMs,
		CoolingDrybulb:       units.CToF(n.CoolingDrybulbC),
		CoolingWetbulb:       units.CToF(n.CoolingWetbulbC),
		CoolingHumidityRatio: n.CoolingHumidityRatio,
		CoolingWindspeed:     n.CoolingWindspeedMs,
		DehumidDrybulb:       units.CToF(n.DehumidDrybulbC),
		DehumidHumidityRatio: n.DehumidHumidityRatio,
	}
	if n.DailyTemperatureRangeC != nil {
		d.DailyTemperatureRange = units.DeltaCToF(*n.DailyTemperatureRangeC)
	} else {
		d.DailyTemperatureRange = fallbackDailyRange(stats)
	}
	return d
}

func fallbackDailyRange(stats domain.ClimateStatistics) float64 {
	return stats.MonthlyAvgDailyHighDrybulbs[dailyRangeMonthIndex] - stats.MonthlyAvgDailyLowDrybulbs[dailyRangeMonthIndex]
}

func deriveDesign(series domain.WeatherSeries, pressureKPa float64, stats domain.ClimateStatistics) domain.DesignConditions {
	byDrybulb := series.Records()
	sort.SliceStable(byDrybulb, func(i, j int) bool { return byDrybulb[i].DryBulbC < byDrybulb[j].DryBulbC })
	byDewpoint := series.Records()
	sort.SliceStable(byDewpoint, func(i, j int) bool { return byDewpoint[i].DewPointC < byDewpoint[j].DewPointC })

	n := len(byDrybulb)
	heatDB := byDrybulb[PercentileIndex(n, heatingPercentile)].DryBulbC
	coolDB := byDrybulb[PercentileIndex(n, coolingPercentile)].DryBulbC
	dehumDP := byDewpoint[PercentileIndex(n, dehumidPercentile)].DewPointC

	coolWind := meanCoincident(byDrybulb, drybulbOf, coolDB, windOf)
	coolWB := meanCoincident(byDrybulb, drybulbOf, coolDB, func(r domain.WeatherRecord) float64 {
		return psychro.WetbulbFromRH(r.DryBulbC, r.RelativeHumidity, pressureKPa)
	})
	heatWind := meanCoincident(byDrybulb, drybulbOf, heatDB, windOf)
	dehumDB := meanCoincident(byDewpoint, dewpointOf, dehumDP, drybulbOf)

	return domain.DesignConditions{
		HeatingDrybulb:        units.CToF(heatDB),
		HeatingWindspeed:      heatWind,
		CoolingDrybulb:        units.CToF(coolDB),
		CoolingWetbulb:        units.CToF(coolWB),
		CoolingHumidityRatio:  psychro.HumidityRatioFromWetbulb(coolDB, coolWB, pressureKPa),
		CoolingWindspeed:      coolWind,
		DehumidDrybulb:        units.CToF(dehumDB),
		DehumidHumidityRatio:  psychro.HumidityRatioFromWetbulb(dehumDP, dehumDP, pressureKPa),
		DailyTemperatureRange: fallbackDailyRange(stats),
	}
}

func drybulbOf(r domain.WeatherRecord) float64  { return r.DryBulbC }
func dewpointOf(r domain.WeatherRecord) float64 { return r.DewPointC }
func windOf(r domain.WeatherRecord) float64     { return r.WindSpeedMs }

// meanCoincident averages secondary over records whose primary lies strictly
// within ±coincidentBand of center. center is always drawn from records, so
// the band holds at least one sample.
func meanCoincident(records []domain.WeatherRecord, primary func(domain.WeatherRecord) float64, center float64, secondary func(domain.WeatherRecord) float64) float64 {
	var sum float64
	var count int
	for _, r := range records {
		v := primary(r)
		if v > center-coincidentBand && v < center+coincidentBand {
			sum += secondary(r)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
