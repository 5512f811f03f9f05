// Command validate checks a weather log for problems that would abort or
// skew a windfinder run. Unlike the analysis itself it does not stop at the
// first malformed row: it reports every bad line, then duplicate, out-of-order
// and missing days.
//
// Usage:
//
//	go run ./cmd/validate -delimiter tab wg_data.csv
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/config"
	"github.com/couchcryptid/wind-window-finder/internal/domain"
)

// maxReported caps how many lines of each kind are printed.
const maxReported = 20

type lineError struct {
	line int
	err  error
}

type dateIssue struct {
	line int
	date time.Time
	prev time.Time
}

type duplicate struct {
	line      int
	date      time.Time
	firstLine int
}

type gap struct {
	after time.Time
	days  int
}

// result is the outcome of validating one log.
type result struct {
	rows       int
	first      time.Time
	last       time.Time
	bad        []lineError
	duplicates []duplicate
	outOfOrder []dateIssue
	gaps       []gap
}

func (r result) ok() bool { return len(r.bad) == 0 }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	delimiter := fs.String("delimiter", "tab", "field delimiter: tab, comma, semicolon or a literal string")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(out, "usage: validate [-delimiter tab] <file>")
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(out, "open data file: %v\n", err)
		return 1
	}
	defer f.Close()

	res, err := validate(f, config.ParseDelimiter(*delimiter))
	if err != nil {
		fmt.Fprintf(out, "read data file: %v\n", err)
		return 1
	}
	printResult(out, fs.Arg(0), res)

	if !res.ok() {
		return 1
	}
	return 0
}

func validate(rd io.Reader, delimiter string) (result, error) {
	var res result
	seen := make(map[time.Time]int)

	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	var prev time.Time
	for sc.Scan() {
		line++
		if line == 1 || strings.TrimSpace(sc.Text()) == "" {
			continue
		}

		rec, err := domain.ParseLine(sc.Text(), delimiter)
		if err != nil {
			res.bad = append(res.bad, lineError{line: line, err: err})
			continue
		}
		res.rows++

		if first, dup := seen[rec.Date]; dup {
			res.duplicates = append(res.duplicates, duplicate{line: line, date: rec.Date, firstLine: first})
		} else {
			seen[rec.Date] = line
		}

		if !prev.IsZero() {
			switch {
			case rec.Date.Before(prev):
				res.outOfOrder = append(res.outOfOrder, dateIssue{line: line, date: rec.Date, prev: prev})
			case rec.Date.After(prev.AddDate(0, 0, 1)):
				res.gaps = append(res.gaps, gap{after: prev, days: int(rec.Date.Sub(prev).Hours()/24) - 1})
			}
		}
		if res.first.IsZero() || rec.Date.Before(res.first) {
			res.first = rec.Date
		}
		if rec.Date.After(res.last) {
			res.last = rec.Date
		}
		prev = rec.Date
	}
	if err := sc.Err(); err != nil {
		return res, err
	}
	return res, nil
}

func printResult(out io.Writer, path string, res result) {
	fmt.Fprintf(out, "=== %s ===\n", path)
	fmt.Fprintf(out, "Rows: %d", res.rows)
	if res.rows > 0 {
		fmt.Fprintf(out, " (%s to %s)", res.first.Format(time.DateOnly), res.last.Format(time.DateOnly))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Malformed lines: %d\n", len(res.bad))
	for _, b := range res.bad[:min(maxReported, len(res.bad))] {
		fmt.Fprintf(out, "  line %d: %v\n", b.line, b.err)
	}

	fmt.Fprintf(out, "Duplicate days: %d\n", len(res.duplicates))
	for _, d := range res.duplicates[:min(maxReported, len(res.duplicates))] {
		fmt.Fprintf(out, "  line %d: %s (first seen on line %d)\n", d.line, d.date.Format(time.DateOnly), d.firstLine)
	}

	fmt.Fprintf(out, "Out of order: %d\n", len(res.outOfOrder))
	for _, d := range res.outOfOrder[:min(maxReported, len(res.outOfOrder))] {
		fmt.Fprintf(out, "  line %d: %s after %s\n", d.line, d.date.Format(time.DateOnly), d.prev.Format(time.DateOnly))
	}

	missing := 0
	for _, g := range res.gaps {
		missing += g.days
	}
	fmt.Fprintf(out, "Gaps: %d (%d missing days)\n", len(res.gaps), missing)
	for _, g := range res.gaps[:min(maxReported, len(res.gaps))] {
		fmt.Fprintf(out, "  %d days after %s\n", g.days, g.after.Format(time.DateOnly))
	}

	if res.ok() {
		fmt.Fprintln(out, "\nPASS")
	} else {
		fmt.Fprintln(out, "\nFAIL")
	}
}
