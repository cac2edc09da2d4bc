package domain

import (
	"strings"

	"github.com/couchcryptid/climate-design-engine/internal/psychro"
)

// ClimateHeader identifies the site a weather series was recorded at.
// Treat it as a value: copies are cheap and nothing mutates one in place.
type ClimateHeader struct {
	Station    string  `json:"station"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	Country    string  `json:"country,omitempty"`
	DataSource string  `json:"data_source,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timezone   float64 `json:"timezone"`    // hours from UTC
	ElevationM float64 `json:"elevation_m"` // meters above sea level
}

// Validate rejects headers whose site identity cannot be resolved.
func (h ClimateHeader) Validate() error {
	if strings.TrimSpace(h.Station) == "" {
		return &ConfigurationError{Reason: "climate header has no station identifier"}
	}
	if h.Latitude < -90 || h.Latitude > 90 {
		return &ConfigurationError{Reason: "climate header latitude outside -90..90"}
	}
	if h.Longitude < -180 || h.Longitude > 180 {
		return &ConfigurationError{Reason: "climate header longitude outside -180..180"}
	}
	return nil
}

// StandardPressureKPa is the ICAO standard-atmosphere pressure at the site
// elevation.
func (h ClimateHeader) StandardPressureKPa() float64 {
	return psychro.StandardPressure(h.ElevationM)
}
