package pipeline

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/domain"
)

// Process returns the distinct months, ascending, that contain at least one
// record accepted by pred whose mean precipitation over hours is below
// maxPrecip and whose mean wind over hours is above minWind.
//
// Records are consumed lazily and in order. The first error yielded by
// records, or raised while aggregating, aborts the run and no months are
// returned.
func Process(pred domain.Predicate, hours domain.HourRange, minWind, maxPrecip float64, records iter.Seq2[domain.DailyRecord, error]) ([]time.Time, error) {
	c := Criteria{Predicate: pred, Hours: hours, MinWind: minWind, MaxPrecip: maxPrecip}
	t := newTally()
	for rec, err := range records {
		if err != nil {
			return nil, err
		}
		stage, err := c.Evaluate(rec)
		if err != nil {
			return nil, err
		}
		t.add(rec, stage)
	}
	return t.sortedMonths(), nil
}

// FromRecords adapts an in-memory slice to a record sequence.
func FromRecords(records []domain.DailyRecord) iter.Seq2[domain.DailyRecord, error] {
	return func(yield func(domain.DailyRecord, error) bool) {
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// tally accumulates the outcome of a run. It is only ever touched by one
// goroutine.
type tally struct {
	months     map[time.Time]struct{}
	read       int
	qualifying int
	rejected   map[Stage]int
}

func newTally() *tally {
	return &tally{
		months:   make(map[time.Time]struct{}),
		rejected: make(map[Stage]int),
	}
}

func (t *tally) add(rec domain.DailyRecord, stage Stage) {
	t.read++
	if stage != StageQualified {
		t.rejected[stage]++
		return
	}
	t.qualifying++
	t.months[domain.MonthOf(rec.Date)] = struct{}{}
}

func (t *tally) sortedMonths() []time.Time {
	months := slices.SortedFunc(maps.Keys(t.months), time.Time.Compare)
	if months == nil {
		return []time.Time{}
	}
	return months
}
