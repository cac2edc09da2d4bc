package climate

import (
	"math"

	"github.com/couchcryptid/climate-design-engine/internal/domain"
)

// roofTiltDeg is a 6:12 roof pitch.
const roofTiltDeg = 26.565052

// summerMonths is a northern-hemisphere convention. Southern sites are not
// compensated.
var summerMonths = map[int]bool{6: true, 7: true, 8: true, 9: true}

// SolarDesign is the summer design radiation pair, W/m².
type SolarDesign struct {
	DirectNormal      float64
	DiffuseHorizontal float64
}

// SelectSolarDesign scans the summer records in chronological order and
// returns the raw radiation of the one with the highest tilted score. The
// first maximum wins. found is false when the series has no summer records.
func SelectSolarDesign(series domain.WeatherSeries) (design SolarDesign, found bool) {
	skyView := (1 + math.Cos(roofTiltDeg*math.Pi/180)) / 2
	best := math.Inf(-1)

	series.Each(func(_ int, r domain.WeatherRecord) {
		if !summerMonths[r.Month] {
			return
		}
		score := r.DirectNormalWm2 + r.DiffuseHorizontalWm2*skyView
		if score > best {
			best = score
			design = SolarDesign{DirectNormal: r.DirectNormalWm2, DiffuseHorizontal: r.DiffuseHorizontalWm2}
			found = true
		}
	})
	return design, found
}
