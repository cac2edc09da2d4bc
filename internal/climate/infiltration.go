package climate

import (
	"math"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// InfiltrationParams describes the reference dwelling of the ASHRAE 62.2
// weather and shelter factor (LBNL-5795E, "Infiltration as Ventilation").
type InfiltrationParams struct {
	DischargeCoefficient float64 // C_d, unitless
	IndoorTempC          float64 // year-round setpoint, °C
	PressureExponent     float64 // n, unitless
	ShelterClass         float64 // S, unitless
	ReferencePressurePa  float64 // ΔP the ELA is rated at, Pa
	MinWindSpeedMs       float64 // hourly windspeed floor, m/s
	LeakageAreaM2        float64 // ELA, m²
	FloorAreaM2          float64 // CFA, m²
	StoryHeightM         float64 // H, m
	WindMultiplier       float64 // G, unitless
	StackCoefficient     float64 // C_s
	WindCoefficient      float64 // C_w
	AirDensity           float64 // ρ, kg/m³
}

// ReferenceBuilding is the single-story, no-flue, shelter class 4 house the
// factor is defined for. The values are fixed so results stay comparable
// with published WSF tables.
var ReferenceBuilding = InfiltrationParams{
	DischargeCoefficient: 1.0,
	IndoorTempC:          22.0,
	PressureExponent:     0.67,
	ShelterClass:         0.7,
	ReferencePressurePa:  4.0,
	MinWindSpeedMs:       1.0,
	LeakageAreaM2:        0.074,
	FloorAreaM2:          185.0,
	StoryHeightM:         2.5,
	WindMultiplier:       0.48,
	StackCoefficient:     0.069,
	WindCoefficient:      0.142,
	AirDensity:           1.2,
}

// FlowCoefficient is C = C_d·ELA·sqrt(2/ρ)·ΔP^(0.5−n), m³/(s·Pa^n).
func (p InfiltrationParams) FlowCoefficient() float64 {
	return p.DischargeCoefficient * p.LeakageAreaM2 * math.Sqrt(2/p.AirDensity) *
		math.Pow(p.ReferencePressurePa, 0.5-p.PressureExponent)
}

// AirChangeRate returns the hourly air changes driven by stack and wind for
// one hour of outdoor conditions.
func (p InfiltrationParams) AirChangeRate(outdoorC, windMs float64) float64 {
	c := p.FlowCoefficient()
	n := p.PressureExponent
	qStack := c * p.StackCoefficient * math.Pow(math.Abs(p.IndoorTempC-outdoorC), n)
	qWind := c * p.WindCoefficient * math.Pow(p.ShelterClass*p.WindMultiplier*math.Max(windMs, p.MinWindSpeedMs), 2*n)
	qTotal := math.Sqrt(qStack*qStack + qWind*qWind)
	return 3600 * qTotal / (p.StoryHeightM * p.FloorAreaM2)
}

// TurnoverStep advances the turnover time by one hour:
// tau = (1 − e^−ach)/ach + tau_prev·e^−ach.
func TurnoverStep(tauPrev, ach float64) float64 {
	decay := math.Exp(-ach)
	return (1-decay)/ach + tauPrev*decay
}

// HourlyDriver is the outdoor state the infiltration model sees for one hour.
type HourlyDriver struct {
	DryBulbC    float64
	WindSpeedMs float64
}

// HourlyDrivers collapses the series to one driver per hour, averaging
// sub-hourly records. Hourly series pass through unchanged.
func HourlyDrivers(series domain.WeatherSeries) []HourlyDriver {
	perHour := series.RecordsPerHour()
	hours := make([]HourlyDriver, 0, series.Len()/perHour)
	for h := 0; h < series.Len()/perHour; h++ {
		if perHour == 1 {
			r := series.At(h)
			hours = append(hours, HourlyDriver{DryBulbC: r.DryBulbC, WindSpeedMs: r.WindSpeedMs})
			continue
		}
		var db, ws float64
		for k := 0; k < perHour; k++ {
			r := series.At(h*perHour + k)
			db += r.DryBulbC
			ws += r.WindSpeedMs
		}
		hours = append(hours, HourlyDriver{DryBulbC: db / float64(perHour), WindSpeedMs: ws / float64(perHour)})
	}
	return hours
}

// turnoverAcc is the accumulator of the chronological turnover fold.
type turnoverAcc struct {
	tau   float64 // turnover time after the latest hour
	sum   float64 // running sum of tau over folded hours
	hours int
}

func foldLeft[T, A any](xs []T, acc A, step func(A, T) A) A {
	for _, x := range xs {
		acc = step(acc, x)
	}
	return acc
}

// MeanTurnover folds the hourly drivers left to right, starting from tau=0,
// and returns the mean turnover time. Hour order matters: each step depends
// on the previous hour's tau.
func (p InfiltrationParams) MeanTurnover(hours []HourlyDriver) float64 {
	acc := foldLeft(hours, turnoverAcc{}, func(a turnoverAcc, h HourlyDriver) turnoverAcc {
		tau := TurnoverStep(a.tau, p.AirChangeRate(h.DryBulbC, h.WindSpeedMs))
		return turnoverAcc{tau: tau, sum: a.sum + tau, hours: a.hours + 1}
	})
	if acc.hours == 0 {
		return 0
	}
	return acc.sum / float64(acc.hours)
}

// WeatherShelterFactor returns WSF = (CFA/ELA) / (1000·mean(tau)), rounded to
// two decimals. An empty series has no factor and yields 0.
func (p InfiltrationParams) WeatherShelterFactor(series domain.WeatherSeries) float64 {
	tau := p.MeanTurnover(HourlyDrivers(series))
	if tau == 0 {
		return 0
	}
	wsf := (p.FloorAreaM2 / p.LeakageAreaM2) / (1000 * tau)
	return math.Round(wsf*100) / 100
}
