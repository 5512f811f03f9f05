package pipeline

import "sync/atomic"

// Progress is a snapshot of the run in flight.
type Progress struct {
	RecordsRead    int64           `json:"records_read"`
	QualifyingDays int64           `json:"qualifying_days"`
	Rejected       map[Stage]int64 `json:"rejected"`
}

// runProgress is written by the run goroutine and read by status handlers.
type runProgress struct {
	read       atomic.Int64
	qualifying atomic.Int64
	predicate  atomic.Int64
	precip     atomic.Int64
	wind       atomic.Int64
}

func (r *runProgress) reset() {
	for _, c := range []*atomic.Int64{&r.read, &r.qualifying, &r.predicate, &r.precip, &r.wind} {
		c.Store(0)
	}
}

func (r *runProgress) add(stage Stage) {
	r.read.Add(1)
	switch stage {
	case StageQualified:
		r.qualifying.Add(1)
	case StagePredicate:
		r.predicate.Add(1)
	case StagePrecip:
		r.precip.Add(1)
	case StageWind:
		r.wind.Add(1)
	}
}

func (r *runProgress) snapshot() Progress {
	return Progress{
		RecordsRead:    r.read.Load(),
		QualifyingDays: r.qualifying.Load(),
		Rejected: map[Stage]int64{
			StagePredicate: r.predicate.Load(),
			StagePrecip:    r.precip.Load(),
			StageWind:      r.wind.Load(),
		},
	}
}
