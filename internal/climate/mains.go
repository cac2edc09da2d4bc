package climate

import (
	"math"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

const degToRad = math.Pi / 180

// MainsWaterTemperatures applies the Burch and Christensen mains water
// correlation. avgF is the annual mean drybulb, maxDiffF the spread between
// the warmest and coolest monthly means, both °F. Results are °F.
func MainsWaterTemperatures(avgF, maxDiffF, latitude float64) domain.MainsWater {
	ratio := 0.4 + 0.01*(avgF-44)
	lag := 35 - (avgF - 44)
	sign := 1.0
	if latitude >= 0 {
		sign = -1.0
	}

	at := func(day float64) float64 {
		return (avgF + 6) + ratio*maxDiffF/2*math.Sin(degToRad*(0.986*(day-15-lag)+sign*90))
	}

	var m domain.MainsWater
	var sum float64
	for d := range m.DailyTemps {
		m.DailyTemps[d] = at(float64(d + 1))
		sum += m.DailyTemps[d]
	}
	m.AnnualTemp = sum / float64(len(m.DailyTemps))
	for i := range m.MonthlyTemps {
		m.MonthlyTemps[i] = at(float64((i+1)*30 - 15))
	}
	return m
}
