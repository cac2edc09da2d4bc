package climate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// Kasuda model constants. Depth and diffusivity are in feet and ft²/h.
const (
	groundPeriodHours = 8760.0
	soilDiffusivity   = 0.025
	groundDepthFt     = 10.0
	groundPhaseOffset = 0.6 // radians, surface phase relative to January 1
)

// groundDays are the representative days of year, one per month.
var groundDays = [12]float64{15, 46, 74, 95, 135, 166, 196, 227, 258, 288, 319, 349}

// GroundTemperatures evaluates a damped, phase-shifted annual sinusoid at the
// reference depth for each representative day. Inputs and outputs are °F.
// The amplitude is half the spread between the warmest and coolest month.
// Results stay in plain °F. Implementations that convert the output to
// Rankine and back with a +460 offset read about 0.33 °F warmer.
func GroundTemperatures(annualAvgF float64, monthlyAvgF [12]float64) [12]float64 {
	amplitude := (floats.Max(monthlyAvgF[:]) - floats.Min(monthlyAvgF[:])) * 0.5
	attenuation, lag := groundDamping()

	var temps [12]float64
	for i, day := range groundDays {
		angle := 2*math.Pi/groundPeriodHours*(day*domain.HoursPerDay) - groundPhaseOffset - lag
		temps[i] = annualAvgF - amplitude*math.Cos(angle)*attenuation
	}
	return temps
}

// groundDamping returns the amplitude attenuation and the phase lag, radians,
// of the annual wave at the reference depth.
func groundDamping() (attenuation, lag float64) {
	beta := math.Sqrt(math.Pi/(groundPeriodHours*soilDiffusivity)) * groundDepthFt
	x := math.Exp(-beta)
	x2 := math.Exp(-2 * beta)
	s, c := math.Sin(beta), math.Cos(beta)

	y := (x2 - 2*x*c + 1) / (2 * beta * beta)
	attenuation = math.Sqrt(y)

	z := (1 - x*(c+s)) / (1 - x*(c-s))
	lag = math.Atan(z)
	return attenuation, lag
}
