package domain

import (
	"fmt"
	"time"
)

// HoursPerDay is the number of hourly readings carried by a DailyRecord.
const HoursPerDay = 24

// DailyRecord is one calendar day of station readings. The readings are fixed
// size arrays, so copying a record copies its data and no caller can mutate
// another caller's view.
type DailyRecord struct {
	Date   time.Time // midnight UTC
	Wind   [HoursPerDay]int
	Precip [HoursPerDay]float64
}

// NewDailyRecord builds a record for the given calendar day. The date is
// normalized to midnight UTC.
func NewDailyRecord(date time.Time, wind [HoursPerDay]int, precip [HoursPerDay]float64) DailyRecord {
	return DailyRecord{
		Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Wind:   wind,
		Precip: precip,
	}
}

func (r DailyRecord) String() string {
	return fmt.Sprintf("DailyRecord[date=%s wind=%v precip=%v]", r.Date.Format(time.DateOnly), r.Wind, r.Precip)
}

// MonthOf returns the first day of the month containing t, at midnight UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
