package domain

import "time"

// ClimateStatistics holds annual and monthly aggregates of a weather series.
// Temperatures are °F, degree-days °F·day, windspeed m/s.
type ClimateStatistics struct {
	AnnualAvgDrybulb            float64     `json:"annual_avg_drybulb"`
	AnnualMinDrybulb            float64     `json:"annual_min_drybulb"`
	AnnualMaxDrybulb            float64     `json:"annual_max_drybulb"`
	MonthlyAvgDrybulbs          [12]float64 `json:"monthly_avg_drybulbs"`
	MonthlyAvgDailyHighDrybulbs [12]float64 `json:"monthly_avg_daily_high_drybulbs"`
	MonthlyAvgDailyLowDrybulbs  [12]float64 `json:"monthly_avg_daily_low_drybulbs"`
	HDD50F                      float64     `json:"hdd50f"`
	HDD65F                      float64     `json:"hdd65f"`
	CDD50F                      float64     `json:"cdd50f"`
	CDD65F                      float64     `json:"cdd65f"`
	AnnualAvgWindspeed          float64     `json:"annual_avg_windspeed"`
	GroundMonthlyTemps          [12]float64 `json:"ground_monthly_temps"`
	WSF                         float64     `json:"wsf"`
}

// DesignConditions are the ASHRAE-style sizing points. Temperatures are °F,
// humidity ratios lbm/lbm, windspeed m/s, solar W/m².
type DesignConditions struct {
	HeatingDrybulb           float64 `json:"heating_drybulb"`
	HeatingWindspeed         float64 `json:"heating_windspeed"`
	CoolingDrybulb           float64 `json:"cooling_drybulb"`
	CoolingWetbulb           float64 `json:"cooling_wetbulb"`
	CoolingHumidityRatio     float64 `json:"cooling_humidity_ratio"`
	CoolingWindspeed         float64 `json:"cooling_windspeed"`
	DailyTemperatureRange    float64 `json:"daily_temperature_range"`
	DehumidDrybulb           float64 `json:"dehumid_drybulb"`
	DehumidHumidityRatio     float64 `json:"dehumid_humidity_ratio"`
	CoolingDirectNormal      float64 `json:"cooling_direct_normal"`
	CoolingDiffuseHorizontal float64 `json:"cooling_diffuse_horizontal"`
}

// NativeDesignData carries design values embedded in the source weather
// product, in the product's own SI units. DailyTemperatureRangeC is a
// temperature difference; nil means the product did not provide one.
type NativeDesignData struct {
	HeatingDrybulbC        float64  `json:"heating_drybulb_c"`
	HeatingWindspeedMs     float64  `json:"heating_windspeed_ms"`
	CoolingDrybulbC        float64  `json:"cooling_drybulb_c"`
	CoolingWetbulbC        float64  `json:"cooling_wetbulb_c"`
	CoolingHumidityRatio   float64  `json:"cooling_humidity_ratio"`
	CoolingWindspeedMs     float64  `json:"cooling_windspeed_ms"`
	DehumidDrybulbC        float64  `json:"dehumid_drybulb_c"`
	DehumidHumidityRatio   float64  `json:"dehumid_humidity_ratio"`
	DailyTemperatureRangeC *float64 `json:"daily_temperature_range_c,omitempty"`
}

// DesignSource says where design conditions come from. It is either
// NativeDesign (pass-through of product values) or DerivedDesign (percentile
// derivation from the series).
type DesignSource interface {
	designSource()
	Kind() string
}

// NativeDesign passes product-supplied design values through.
type NativeDesign struct {
	Data NativeDesignData
}

// DerivedDesign derives design values from the series.
type DerivedDesign struct{}

func (NativeDesign) designSource()  {}
func (DerivedDesign) designSource() {}

// Kind returns "native".
func (NativeDesign) Kind() string { return DesignSourceNative }

// Kind returns "derived".
func (DerivedDesign) Kind() string { return DesignSourceDerived }

// Design source labels, as recorded on bundles and cache entries.
const (
	DesignSourceNative  = "native"
	DesignSourceDerived = "derived"
)

// DesignSourceFor resolves the optional native design block into a source.
func DesignSourceFor(native *NativeDesignData) DesignSource {
	if native == nil {
		return DerivedDesign{}
	}
	return NativeDesign{Data: *native}
}

// MainsWater holds mains water temperatures in °F.
type MainsWater struct {
	AnnualTemp   float64      `json:"annual_temp"`
	MonthlyTemps [12]float64  `json:"monthly_temps"`
	DailyTemps   [365]float64 `json:"daily_temps"`
}

// Bundle is everything one analysis produces. It is an immutable value
// returned to the caller and stored verbatim in the result cache.
type Bundle struct {
	SourceKey    string            `json:"source_key"`
	Header       ClimateHeader     `json:"header"`
	Statistics   ClimateStatistics `json:"statistics"`
	Design       DesignConditions  `json:"design"`
	DesignSource string            `json:"design_source"`
	Mains        MainsWater        `json:"mains"`
	AnalyzedAt   time.Time         `json:"analyzed_at"`
}
