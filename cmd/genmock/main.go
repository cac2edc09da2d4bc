// Command genmock writes an AnalysisRequest fixture for local runs and test
// suites. By default it synthesizes a sinusoidal weather year; with -csv it
// wraps hourly observations from a CSV export instead. The fixture is run
// through the real climate engine so the printed summary matches pipeline
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/syn001.json
//	go run ./cmd/genmock -csv data/denver_tmy.csv -station 725650 -lat 39.83 -lon -104.65 -out data/mock/denver.json
//	go run ./cmd/genmock -csv data/kden.csv -temp-unit F -wind-unit mph -elevation 5434 -elevation-unit ft -out data/mock/kden.json
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-design-engine/internal/climate"
	"github.com/couchcryptid/climate-design-engine/internal/domain"
	"github.com/couchcryptid/climate-design-engine/internal/fixture"
	"github.com/couchcryptid/climate-design-engine/internal/units"
)

// csvColumns maps CSV header names to record fields.
var csvColumns = struct {
	month, day, hour, minute, drybulb, dewpoint, rh, dni, dhi, wind string
}{
	month: "Month", day: "Day", hour: "Hour", minute: "Minute",
	drybulb: "DryBulb", dewpoint: "DewPoint", rh: "RelHum",
	dni: "DNI", dhi: "DHI", wind: "WindSpeed",
}

// csvUnits names the units of the CSV's temperature and windspeed columns.
// Records are always stored in °C and m/s.
type csvUnits struct {
	temperature string
	windspeed   string
}

// validate rejects unit names units.Convert does not know for the column's
// dimension.
func (u csvUnits) validate() error {
	if _, err := units.Convert(0, u.temperature, "C"); err != nil {
		return fmt.Errorf("temperature unit: %w", err)
	}
	if _, err := units.Convert(0, u.windspeed, "m/s"); err != nil {
		return fmt.Errorf("windspeed unit: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	opts := fixture.Default()
	out := flag.String("out", "", "output path for the AnalysisRequest JSON fixture")
	csvPath := flag.String("csv", "", "optional hourly CSV export to wrap instead of a synthetic year")
	flag.StringVar(&opts.Station, "station", opts.Station, "station identifier")
	flag.StringVar(&opts.SourceID, "source-id", "", "explicit source identity (cache key)")
	flag.Float64Var(&opts.Latitude, "lat", opts.Latitude, "site latitude, degrees")
	flag.Float64Var(&opts.Longitude, "lon", opts.Longitude, "site longitude, degrees")
	flag.Float64Var(&opts.ElevationM, "elevation", opts.ElevationM, "site elevation, in -elevation-unit")
	elevationUnit := flag.String("elevation-unit", "m", "unit of -elevation: m or ft")
	colUnits := csvUnits{}
	flag.StringVar(&colUnits.temperature, "temp-unit", "C", "CSV drybulb/dewpoint unit: C, F or K")
	flag.StringVar(&colUnits.windspeed, "wind-unit", "m/s", "CSV windspeed unit: m/s, mph, knots or km/h")
	flag.Float64Var(&opts.MeanC, "mean", opts.MeanC, "annual mean drybulb, °C")
	flag.Float64Var(&opts.AnnualSwingC, "annual-swing", opts.AnnualSwingC, "annual drybulb half swing, °C")
	flag.Float64Var(&opts.DiurnalSwingC, "diurnal-swing", opts.DiurnalSwingC, "diurnal drybulb half swing, °C")
	flag.Float64Var(&opts.WindMs, "wind", opts.WindMs, "steady windspeed, m/s")
	flag.IntVar(&opts.RecordsPerHour, "records-per-hour", opts.RecordsPerHour, "records per hour (1, 2, 3, 4, 6, 12, 60)")
	flag.BoolVar(&opts.Leap, "leap", false, "generate a 366-day year")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	elevation, err := units.Convert(opts.ElevationM, *elevationUnit, "m")
	if err != nil {
		return fmt.Errorf("elevation: %w", err)
	}
	opts.ElevationM = elevation

	req := fixture.Request(opts)
	if *csvPath != "" {
		raws, err := readCSV(*csvPath, colUnits)
		if err != nil {
			return fmt.Errorf("processing %s: %w", *csvPath, err)
		}
		req.Records = raws
		req.RecordsPerHour = opts.RecordsPerHour
		req.Header.City = ""
		req.Header.DataSource = filepath.Base(*csvPath)
		log.Printf("%s: %d records", *csvPath, len(raws))
	}

	if err := writeJSON(*out, req); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote fixture: %s", *out)

	return printSummary(req)
}

func readCSV(path string, u csvUnits) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return parseCSV(f, u)
}

// parseCSV converts rows into raw records in °C and m/s. Blank or unparsable
// cells become missing fields so the analysis reports them as integrity
// errors.
func parseCSV(r io.Reader, u csvUnits) ([]domain.RawRecord, error) {
	if err := u.validate(); err != nil {
		return nil, err
	}
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}

	c := csvColumns
	raws := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		minute := intCell(row, colIdx, c.minute)
		raw := domain.RawRecord{
			Month:                intCell(row, colIdx, c.month),
			Day:                  intCell(row, colIdx, c.day),
			Hour:                 intCell(row, colIdx, c.hour),
			DryBulbC:             convertCell(floatCell(row, colIdx, c.drybulb), u.temperature, "C"),
			DewPointC:            convertCell(floatCell(row, colIdx, c.dewpoint), u.temperature, "C"),
			RelativeHumidity:     percentCell(row, colIdx, c.rh),
			DirectNormalWm2:      floatCell(row, colIdx, c.dni),
			DiffuseHorizontalWm2: floatCell(row, colIdx, c.dhi),
			WindSpeedMs:          convertCell(floatCell(row, colIdx, c.wind), u.windspeed, "m/s"),
		}
		if minute != nil {
			raw.SubHour = *minute
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func intCell(row []string, idx map[string]int, col string) *int {
	v, err := strconv.Atoi(get(row, idx, col))
	if err != nil {
		return nil
	}
	return &v
}

func floatCell(row []string, idx map[string]int, col string) *float64 {
	v, err := strconv.ParseFloat(get(row, idx, col), 64)
	if err != nil {
		return nil
	}
	return &v
}

// convertCell converts a parsed cell between units already checked by
// csvUnits.validate. Missing cells stay missing.
func convertCell(v *float64, from, to string) *float64 {
	if v == nil {
		return nil
	}
	converted, err := units.Convert(*v, from, to)
	if err != nil {
		return nil
	}
	return &converted
}

// percentCell reads relative humidity exported as 0-100 and returns a fraction.
func percentCell(row []string, idx map[string]int, col string) *float64 {
	v := floatCell(row, idx, col)
	if v == nil {
		return nil
	}
	frac := *v / 100
	return &frac
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printSummary(req domain.AnalysisRequest) error {
	// Fixed clock for reproducible AnalyzedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
	defer domain.SetClock(nil)

	in, err := req.Input()
	if err != nil {
		return fmt.Errorf("fixture does not validate: %w", err)
	}
	engine := climate.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	b, err := engine.Analyze(context.Background(), in)
	if err != nil {
		return fmt.Errorf("analyze fixture: %w", err)
	}

	s, d := b.Statistics, b.Design
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Source key: %s\n", b.SourceKey)
	fmt.Printf("Records: %d (%d per hour)\n", in.Series.Len(), in.Series.RecordsPerHour())
	fmt.Printf("Drybulb °F: avg=%.2f min=%.2f max=%.2f\n", s.AnnualAvgDrybulb, s.AnnualMinDrybulb, s.AnnualMaxDrybulb)
	fmt.Printf("Degree-days: HDD50=%.1f HDD65=%.1f CDD50=%.1f CDD65=%.1f\n", s.HDD50F, s.HDD65F, s.CDD50F, s.CDD65F)
	fmt.Printf("Design °F: heating=%.2f cooling=%.2f/%.2f dehumid=%.2f range=%.2f\n",
		d.HeatingDrybulb, d.CoolingDrybulb, d.CoolingWetbulb, d.DehumidDrybulb, d.DailyTemperatureRange)
	fmt.Printf("Solar W/m²: DNI=%.1f DHI=%.1f\n", d.CoolingDirectNormal, d.CoolingDiffuseHorizontal)
	fmt.Printf("WSF: %.2f  Mains annual °F: %.2f\n", s.WSF, b.Mains.AnnualTemp)
	return nil
}
