package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// analysis run. Each Metrics owns its registry so runs and tests never collide
// on the default registry.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsRead      prometheus.Counter
	RecordsRejected  *prometheus.CounterVec // labels: stage={predicate,precip,wind}
	ReadErrors       prometheus.Counter
	QualifyingDays   prometheus.Counter
	QualifyingMonths prometheus.Gauge
	PipelineRunning  prometheus.Gauge

	RunDuration prometheus.Histogram
	LastSuccess prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them, together with the Go
// runtime collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windfinder",
			Name:      "records_read_total",
			Help:      "Total daily records pulled from the source.",
		}),
		RecordsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windfinder",
			Name:      "records_rejected_total",
			Help:      "Daily records dropped, by the filter stage that dropped them.",
		}, []string{"stage"}),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windfinder",
			Name:      "read_errors_total",
			Help:      "Rows that failed to read or parse. Any error aborts the run.",
		}),
		QualifyingDays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "windfinder",
			Name:      "qualifying_days_total",
			Help:      "Daily records that passed every filter.",
		}),
		QualifyingMonths: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windfinder",
			Name:      "qualifying_months",
			Help:      "Distinct months with at least one qualifying day in the last run.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windfinder",
			Name:      "pipeline_running",
			Help:      "1 while a run is in progress, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "windfinder",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete analysis run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "windfinder",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that completed without error.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RecordsRead,
		m.RecordsRejected,
		m.ReadErrors,
		m.QualifyingDays,
		m.QualifyingMonths,
		m.PipelineRunning,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}
