package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"Month,Day,Hour,Minute,DryBulb,DewPoint,RelHum,DNI,DHI,WindSpeed",
		"1,1,0,0,-3.5,-8.1,70,0,0,2.6",
		"1,1,1,30,-3.9,,72,0,0,2.1",
	}, "\n")

	raws, err := parseCSV(strings.NewReader(input), csvUnits{temperature: "C", windspeed: "m/s"})
	require.NoError(t, err)
	require.Len(t, raws, 2)

	first := raws[0]
	require.NotNil(t, first.Month)
	assert.Equal(t, 1, *first.Month)
	require.NotNil(t, first.DryBulbC)
	assert.InDelta(t, -3.5, *first.DryBulbC, 1e-9)
	require.NotNil(t, first.RelativeHumidity)
	assert.InDelta(t, 0.70, *first.RelativeHumidity, 1e-9)

	second := raws[1]
	assert.Equal(t, 30, second.SubHour)
	assert.Nil(t, second.DewPointC, "blank cell should stay missing")
}

func TestParseCSV_NoRows(t *testing.T) {
	_, err := parseCSV(strings.NewReader("Month,Day,Hour\n"), csvUnits{temperature: "C", windspeed: "m/s"})
	assert.ErrorContains(t, err, "no data rows")
}

func TestParseCSV_ConvertsUnits(t *testing.T) {
	input := strings.Join([]string{
		"Month,Day,Hour,Minute,DryBulb,DewPoint,RelHum,DNI,DHI,WindSpeed",
		"7,15,14,0,95,59,29,850,120,10",
	}, "\n")

	raws, err := parseCSV(strings.NewReader(input), csvUnits{temperature: "F", windspeed: "mph"})
	require.NoError(t, err)
	require.Len(t, raws, 1)

	r := raws[0]
	require.NotNil(t, r.DryBulbC)
	assert.InDelta(t, 35.0, *r.DryBulbC, 1e-9)
	require.NotNil(t, r.DewPointC)
	assert.InDelta(t, 15.0, *r.DewPointC, 1e-9)
	require.NotNil(t, r.WindSpeedMs)
	assert.InDelta(t, 4.4704, *r.WindSpeedMs, 1e-9)
	require.NotNil(t, r.DirectNormalWm2)
	assert.InDelta(t, 850.0, *r.DirectNormalWm2, 1e-9)
}

func TestParseCSV_RejectsWrongDimension(t *testing.T) {
	input := "Month,Day,Hour\n1,1,0\n"

	_, err := parseCSV(strings.NewReader(input), csvUnits{temperature: "mph", windspeed: "m/s"})
	assert.ErrorContains(t, err, "temperature unit")

	_, err = parseCSV(strings.NewReader(input), csvUnits{temperature: "C", windspeed: "furlongs"})
	assert.ErrorContains(t, err, "windspeed unit")
}
