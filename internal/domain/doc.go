// Package domain models weather series and the climate results derived from
// them.
//
// # Input
//
// An external weather-file reader publishes an [AnalysisRequest]: a
// [ClimateHeader] describing the site, one [RawRecord] per timestep, and,
// when the weather product embeds ASHRAE design days, a [NativeDesignData]
// block. Raw records use pointer fields so a missing value is distinguishable
// from a legitimate zero; [RecordsFromRaw] turns the first missing field into
// a [DataIntegrityError] naming the record index and field.
//
// Record units:
//
//	dry_bulb_c, dew_point_c      °C
//	relative_humidity            fraction 0–1 (not percent)
//	direct_normal_wm2            W/m², beam on a sun-tracking plane
//	diffuse_horizontal_wm2       W/m², sky diffuse on a horizontal plane
//	wind_speed_ms                m/s at the station anemometer
//
// A [WeatherSeries] is one calendar year of whole days: 365 or 366 days at
// 1, 2, 3, 4, 6, 12 or 60 records per hour, months non-decreasing.
//
// # Output
//
// A [Bundle] carries [ClimateStatistics], [DesignConditions] and [MainsWater].
// Output temperatures are °F and windspeeds stay in m/s, matching what the
// downstream building-energy model expects.
//
// # Design Source
//
// Whether design conditions are passed through or derived is decided once per
// analysis by [DesignSourceFor]: a non-nil native block yields [NativeDesign],
// otherwise [DerivedDesign].
//
// # Identity
//
// Results are cached under [SourceKey]: the caller's source ID when given
// (typically the weather file path), else "<station>|<digest>" where the
// digest is the first 8 bytes of a SHA-256 over every record value.
package domain
