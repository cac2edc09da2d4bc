package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"strings"
)

// SourceKey derives the cache key for a weather source. An explicit source ID
// (typically the weather file path) wins; otherwise the key is the station
// plus a digest of the series content, so identical data maps to one entry.
func SourceKey(sourceID string, header ClimateHeader, series WeatherSeries) string {
	if id := strings.TrimSpace(sourceID); id != "" {
		return id
	}
	return strings.TrimSpace(header.Station) + "|" + SeriesDigest(series)
}

// SeriesDigest is a short, deterministic SHA-256 digest of the series values.
func SeriesDigest(series WeatherSeries) string {
	h := sha256.New()
	var buf [8]byte

	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	putInt(series.RecordsPerHour())
	series.Each(func(_ int, r WeatherRecord) {
		putInt(r.Month)
		putInt(r.Day)
		putInt(r.Hour)
		putInt(r.SubHour)
		putFloat(r.DryBulbC)
		putFloat(r.DewPointC)
		putFloat(r.RelativeHumidity)
		putFloat(r.DirectNormalWm2)
		putFloat(r.DiffuseHorizontalWm2)
		putFloat(r.WindSpeedMs)
	})

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
