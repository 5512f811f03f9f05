package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/wind-window-finder/internal/domain"
	"github.com/couchcryptid/wind-window-finder/internal/observability"
)

// RecordSource yields daily records in file order. Iteration stops at the
// first yielded error.
type RecordSource interface {
	Records(ctx context.Context) iter.Seq2[domain.DailyRecord, error]
}

// MonthSink receives the qualifying months of a finished run.
type MonthSink interface {
	LoadMonths(ctx context.Context, months []time.Time) error
}

// Report summarizes a completed run.
type Report struct {
	Months         []time.Time
	RecordsRead    int
	QualifyingDays int
	Rejected       map[Stage]int
	StartedAt      time.Time
	Duration       time.Duration
}

// Pipeline reads records from a source, filters and aggregates them against
// a Criteria, and hands the qualifying months to a sink.
type Pipeline struct {
	source   RecordSource
	sink     MonthSink
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
	progress runProgress
}

// New creates a Pipeline with the given stages and observability.
func New(source RecordSource, sink MonthSink, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once the current run has evaluated at least one
// record, or an error describing why it has not.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not evaluated any records yet")
	}
	return nil
}

// Progress returns the counts of the current, or last, run so far. It is safe
// to call from any goroutine while Run is in progress.
func (p *Pipeline) Progress() Progress {
	return p.progress.snapshot()
}

// Run processes the whole source once, in order, on the calling goroutine.
// Any read, parse, or aggregation error aborts the run before the sink is
// called.
func (p *Pipeline) Run(ctx context.Context, c Criteria) (Report, error) {
	start := clock.Now()
	p.logger.Info("pipeline started",
		"hours", c.Hours.String(),
		"min_wind", c.MinWind,
		"max_precip", c.MaxPrecip,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	p.ready.Store(false)
	p.progress.reset()

	t := newTally()
	if err := p.evaluate(ctx, c, t); err != nil {
		p.logger.Error("pipeline aborted", "error", err, "records_read", t.read)
		return Report{}, err
	}

	months := t.sortedMonths()
	p.metrics.QualifyingMonths.Set(float64(len(months)))

	if err := p.sink.LoadMonths(ctx, months); err != nil {
		p.logger.Error("load months failed", "error", err, "months", len(months))
		return Report{}, fmt.Errorf("load months: %w", err)
	}

	duration := clock.Since(start)
	p.metrics.RunDuration.Observe(duration.Seconds())
	p.metrics.LastSuccess.Set(float64(clock.Now().Unix()))

	p.logger.Info("pipeline finished",
		"records_read", t.read,
		"qualifying_days", t.qualifying,
		"qualifying_months", len(months),
		"duration", duration,
	)

	return Report{
		Months:         months,
		RecordsRead:    t.read,
		QualifyingDays: t.qualifying,
		Rejected:       t.rejected,
		StartedAt:      start,
		Duration:       duration,
	}, nil
}

func (p *Pipeline) evaluate(ctx context.Context, c Criteria, t *tally) error {
	for rec, err := range p.source.Records(ctx) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			p.metrics.ReadErrors.Inc()
			return fmt.Errorf("read records: %w", err)
		}
		stage, err := c.Evaluate(rec)
		if err != nil {
			return err
		}
		p.observe(t, rec, stage)
	}
	return ctx.Err()
}

// observe folds one evaluated record into t and the live metrics.
func (p *Pipeline) observe(t *tally, rec domain.DailyRecord, stage Stage) {
	t.add(rec, stage)
	p.progress.add(stage)
	p.ready.Store(true)
	p.metrics.RecordsRead.Inc()

	if stage == StageQualified {
		p.metrics.QualifyingDays.Inc()
		return
	}
	p.metrics.RecordsRejected.WithLabelValues(string(stage)).Inc()
	p.logger.Debug("record rejected", "date", rec.Date.Format(time.DateOnly), "stage", string(stage))
}
