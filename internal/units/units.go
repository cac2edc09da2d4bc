// Package units converts between the handful of physical units the climate
// engine reads and writes.
package units

import (
	"fmt"
	"strings"
)

type dimension int

const (
	temperature dimension = iota
	temperatureDelta
	speed
	length
	pressure
)

// linear describes a unit as base = value*scale + offset in its dimension's
// base unit (°C, Δ°C, m/s, m, kPa).
type linear struct {
	dim    dimension
	scale  float64
	offset float64
}

var table = map[string]linear{
	"c": {temperature, 1, 0},
	"f": {temperature, 5.0 / 9.0, -32 * 5.0 / 9.0},
	"k": {temperature, 1, -273.15},
	"r": {temperature, 5.0 / 9.0, -273.15},

	"deltac": {temperatureDelta, 1, 0},
	"deltaf": {temperatureDelta, 5.0 / 9.0, 0},

	"m/s":   {speed, 1, 0},
	"mph":   {speed, 0.44704, 0},
	"knots": {speed, 1852.0 / 3600.0, 0},
	"km/h":  {speed, 1.0 / 3.6, 0},

	"m":  {length, 1, 0},
	"ft": {length, 0.3048, 0},
	"in": {length, 0.0254, 0},
	"km": {length, 1000, 0},

	"kpa":  {pressure, 1, 0},
	"pa":   {pressure, 0.001, 0},
	"atm":  {pressure, 101.325, 0},
	"psi":  {pressure, 6.894757293168361, 0},
	"inhg": {pressure, 3.386389, 0},
}

// Convert converts value from one unit to another. Unit names are case
// insensitive. Converting across dimensions is an error.
func Convert(value float64, from, to string) (float64, error) {
	f, ok := table[strings.ToLower(from)]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}
	t, ok := table[strings.ToLower(to)]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}
	if f.dim != t.dim {
		return 0, fmt.Errorf("cannot convert %s to %s", from, to)
	}
	if strings.EqualFold(from, to) {
		return value, nil
	}
	base := value*f.scale + f.offset
	return (base - t.offset) / t.scale, nil
}

// CToF converts °C to °F.
func CToF(c float64) float64 { return c*1.8 + 32 }

// FToC converts °F to °C.
func FToC(f float64) float64 { return (f - 32) / 1.8 }

// DeltaCToF converts a temperature difference from °C to °F.
func DeltaCToF(d float64) float64 { return d * 1.8 }
