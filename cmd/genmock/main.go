// Command genmock writes a synthetic weather log in the station export layout
// for local runs and demos. Output is deterministic for a given seed. It uses
// the real domain and pipeline packages so the printed summary matches what
// windfinder will report for the generated file.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/wg_data.csv \
//	  -start 2013-10-01 -days 365 -seed 42 -delimiter tab
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/config"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
	"github.com/couchcryptid/wind-window-finder/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	out := fs.String("out", "", "output path for the generated log")
	startStr := fs.String("start", "2013-10-01", "first day (yyyy-mm-dd)")
	days := fs.Int("days", 365, "number of days to generate")
	seed := fs.Uint64("seed", 42, "random seed")
	delimiterFlag := fs.String("delimiter", "tab", "field delimiter: tab, comma, semicolon or a literal string")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	delimiter := config.ParseDelimiter(*delimiterFlag)
	if delimiter == "" {
		return fmt.Errorf("invalid -delimiter: empty")
	}
	start, err := time.Parse(time.DateOnly, *startStr)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if *days <= 0 {
		return fmt.Errorf("invalid -days: %d", *days)
	}

	records := generate(start, *days, *seed)
	if err := writeLog(*out, delimiter, records); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}
	log.Printf("wrote %d days to %s", len(records), *out)

	return printStats(records)
}

// generate models a coastal station: wind peaks in the afternoon and in
// winter, rain arrives in multi-hour showers.
func generate(start time.Time, days int, seed uint64) []domain.DailyRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]domain.DailyRecord, 0, days)

	for d := range days {
		date := start.AddDate(0, 0, d)
		season := math.Cos(2 * math.Pi * float64(date.YearDay()-15) / 365)
		dayBase := 10 + 6*season + rng.NormFloat64()*4

		var wind [domain.HoursPerDay]int
		var precip [domain.HoursPerDay]float64
		for h := range domain.HoursPerDay {
			diurnal := 5 * math.Sin(math.Pi*float64(h-6)/12)
			wind[h] = max(0, int(math.Round(dayBase+diurnal+rng.NormFloat64()*2)))
		}

		if rng.Float64() < 0.3 {
			from := rng.IntN(domain.HoursPerDay)
			length := 1 + rng.IntN(8)
			for h := from; h < min(from+length, domain.HoursPerDay); h++ {
				precip[h] = math.Round(rng.ExpFloat64()*1.5*10) / 10
			}
		}

		records = append(records, domain.NewDailyRecord(date, wind, precip))
	}
	return records
}

func header(delimiter string) string {
	fields := make([]string, 0, domain.FieldsPerRow)
	fields = append(fields, "date")
	for h := range domain.HoursPerDay {
		fields = append(fields, fmt.Sprintf("wind_%02d", h))
	}
	fields = append(fields, "")
	for h := range domain.HoursPerDay {
		fields = append(fields, fmt.Sprintf("precip_%02d", h))
	}
	return strings.Join(fields, delimiter)
}

func writeLog(path, delimiter string, records []domain.DailyRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, header(delimiter))
	for _, rec := range records {
		fmt.Fprintln(w, domain.FormatRow(rec, delimiter))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

func printStats(records []domain.DailyRecord) error {
	hours, err := domain.NewHourRange(9, 18)
	if err != nil {
		return err
	}
	months, err := pipeline.Process(domain.AcceptAll, hours, 16, 0.2, pipeline.FromRecords(records))
	if err != nil {
		return err
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Days: %d (%s to %s)\n", len(records),
		records[0].Date.Format(time.DateOnly), records[len(records)-1].Date.Format(time.DateOnly))
	fmt.Printf("Qualifying months with default window [09:00,18:00), wind > 16, precip < 0.2: %d\n", len(months))
	for _, m := range months {
		fmt.Printf("  %s\n", m.Format(time.DateOnly))
	}
	return nil
}
