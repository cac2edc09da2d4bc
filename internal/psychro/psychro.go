// Package psychro implements the moist-air relations from ASHRAE Handbook
// Fundamentals (2017) chapter 1. Inputs and outputs are SI: °C, kPa,
// relative humidity as a fraction, humidity ratio in kg water / kg dry air.
package psychro

import "math"

const (
	// ratio of molecular masses of water vapor and dry air
	molarMassRatio = 0.621945
	zeroCelsiusK   = 273.15

	minHumidityRatio = 1e-7

	wetbulbTolerance = 1e-9
	maxIterations    = 200
)

// StandardPressure returns standard-atmosphere pressure in kPa at the given
// elevation in meters (ASHRAE Fundamentals eq. 3).
func StandardPressure(elevationM float64) float64 {
	return 101.325 * math.Pow(1-2.25577e-5*elevationM, 5.2559)
}

// SaturationPressure returns the saturation vapor pressure in kPa over ice
// below 0 °C and over liquid water otherwise (Hyland-Wexler, eq. 5 and 6).
func SaturationPressure(tC float64) float64 {
	t := tC + zeroCelsiusK
	var lnP float64
	if tC < 0 {
		lnP = -5.6745359e3/t + 6.3925247 - 9.677843e-3*t + 6.2215701e-7*t*t +
			2.0747825e-9*math.Pow(t, 3) - 9.484024e-13*math.Pow(t, 4) + 4.1635019*math.Log(t)
	} else {
		lnP = -5.8002206e3/t + 1.3914993 - 4.8640239e-2*t + 4.1764768e-5*t*t -
			1.4452093e-8*math.Pow(t, 3) + 6.5459673*math.Log(t)
	}
	return math.Exp(lnP) / 1000
}

// HumidityRatioFromVaporPressure returns W for a partial vapor pressure and
// total pressure, both kPa.
func HumidityRatioFromVaporPressure(pw, p float64) float64 {
	return math.Max(molarMassRatio*pw/(p-pw), minHumidityRatio)
}

// HumidityRatioFromRH returns W for a drybulb and relative humidity fraction.
func HumidityRatioFromRH(tdbC, rh, p float64) float64 {
	return HumidityRatioFromVaporPressure(rh*SaturationPressure(tdbC), p)
}

// HumidityRatioFromWetbulb returns W for a drybulb/wetbulb pair (eq. 33/35).
// Passing the dewpoint as both arguments yields the saturation humidity ratio
// at the dewpoint.
func HumidityRatioFromWetbulb(tdbC, twbC, p float64) float64 {
	return math.Max(humidityRatioFromWetbulb(tdbC, twbC, p), minHumidityRatio)
}

func humidityRatioFromWetbulb(tdbC, twbC, p float64) float64 {
	wsStar := molarMassRatio * SaturationPressure(twbC) / (p - SaturationPressure(twbC))
	if twbC >= 0 {
		return ((2501-2.326*twbC)*wsStar - 1.006*(tdbC-twbC)) / (2501 + 1.86*tdbC - 4.186*twbC)
	}
	return ((2830-0.24*twbC)*wsStar - 1.006*(tdbC-twbC)) / (2830 + 1.86*tdbC - 2.1*twbC)
}

// WetbulbFromRH solves for the thermodynamic wetbulb temperature by bisection
// on the humidity ratio. The result lies in [-100 °C, tdb].
func WetbulbFromRH(tdbC, rh, p float64) float64 {
	target := HumidityRatioFromRH(tdbC, rh, p)
	lo, hi := -100.0, tdbC
	twb := (lo + hi) / 2
	for i := 0; i < maxIterations && hi-lo > wetbulbTolerance; i++ {
		twb = (lo + hi) / 2
		if humidityRatioFromWetbulb(tdbC, twb, p) > target {
			hi = twb
		} else {
			lo = twb
		}
	}
	return twb
}
