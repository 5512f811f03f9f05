package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day.month.year layout of the date column.
const DateLayout = "02.01.2006"

// Column offsets of the row layout described in the package documentation.
const (
	windOffset     = 1
	separatorIndex = windOffset + HoursPerDay
	precipOffset   = separatorIndex + 1

	// FieldsPerRow is the number of fields in a well-formed row.
	FieldsPerRow = precipOffset + HoursPerDay
)

var errMissingField = errors.New("missing field")

// ParseLine splits a raw line on delimiter and parses it with ParseRow.
func ParseLine(line, delimiter string) (DailyRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	return ParseRow(strings.Split(line, delimiter))
}

// ParseRow converts the fields of one row into a DailyRecord. The first field
// that fails to parse aborts the row with a *FormatError.
func ParseRow(fields []string) (DailyRecord, error) {
	fields = trimTrailingEmpty(fields)
	if len(fields) == 0 {
		return DailyRecord{}, &FormatError{Field: "date", Err: errMissingField}
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return DailyRecord{}, err
	}

	var rec DailyRecord
	rec.Date = date

	for h := range HoursPerDay {
		i := windOffset + h
		if i >= len(fields) {
			return DailyRecord{}, &FormatError{Field: fmt.Sprintf("wind[%d]", h), Err: errMissingField}
		}
		v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return DailyRecord{}, &FormatError{Field: fmt.Sprintf("wind[%d]", h), Value: fields[i], Err: err}
		}
		rec.Wind[h] = v
	}

	if n := max(len(fields)-precipOffset, 0); n != HoursPerDay {
		return DailyRecord{}, &FormatError{
			Field: "precip",
			Value: strconv.Itoa(n),
			Err:   fmt.Errorf("got %d hourly values, want %d", n, HoursPerDay),
		}
	}

	for h := range HoursPerDay {
		i := precipOffset + h
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return DailyRecord{}, &FormatError{Field: fmt.Sprintf("precip[%d]", h), Value: fields[i], Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return DailyRecord{}, &FormatError{Field: fmt.Sprintf("precip[%d]", h), Value: fields[i], Err: errors.New("not a finite number")}
		}
		rec.Precip[h] = v
	}

	return rec, nil
}

// FormatRow renders a record in the row layout accepted by ParseRow. The
// separator column is written empty.
func FormatRow(rec DailyRecord, delimiter string) string {
	fields := make([]string, FieldsPerRow)
	fields[0] = rec.Date.Format(DateLayout)
	for h := range HoursPerDay {
		fields[windOffset+h] = strconv.Itoa(rec.Wind[h])
		fields[precipOffset+h] = strconv.FormatFloat(rec.Precip[h], 'f', -1, 64)
	}
	return strings.Join(fields, delimiter)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &FormatError{Field: "date", Value: s, Err: err}
	}
	return t, nil
}

// trimTrailingEmpty drops blank fields left by a trailing delimiter.
func trimTrailingEmpty(fields []string) []string {
	for len(fields) > 0 && strings.TrimSpace(fields[len(fields)-1]) == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
