// Package metrics provides Prometheus metrics for the exchange-rates ETL job.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/exchange_rates_etl/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const defaultJobName = "exchange_rates_etl"

// Manager records run metrics and optionally pushes them to a Pushgateway.
// A batch job exits too quickly to be scraped, so pushing is the delivery path.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry
	pushURL          string
	pushJob          string

	runsTotal          *prometheus.CounterVec
	stageFailures      *prometheus.CounterVec
	stageDuration      *prometheus.HistogramVec
	rowsInsertedTotal  prometheus.Counter
	lastRunRows        prometheus.Gauge
	lastSuccessSeconds prometheus.Gauge
	lastRunDuration    prometheus.Gauge
}

// NewManager creates a metrics manager on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "exchange_rates",
		subsystem:        "etl",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
		pushJob:          defaultJobName,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Total number of ETL runs by outcome",
	}, []string{"status"})

	m.stageFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_failures_total",
		Help:      "Total number of failed runs by the stage that failed",
	}, []string{"stage"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.rowsInsertedTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_inserted_total",
		Help:      "Total number of Exchange_Rates rows committed",
	})

	m.lastRunRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_rows_inserted",
		Help:      "Rows committed by the most recent run",
	})

	m.lastSuccessSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the most recent successful run",
	})

	m.lastRunDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_duration_seconds",
		Help:      "Wall time of the most recent run",
	})
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(stage domain.Stage, elapsed time.Duration) {
	m.stageDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}

// ObserveRun records the outcome of a run.
func (m *Manager) ObserveRun(result domain.RunResult) {
	m.runsTotal.WithLabelValues(string(result.Status)).Inc()
	m.lastRunDuration.Set(result.Duration.Seconds())
	m.lastRunRows.Set(float64(result.RowsInserted))

	if result.Failed() {
		m.stageFailures.WithLabelValues(string(result.FailedStage)).Inc()
		return
	}
	m.rowsInsertedTotal.Add(float64(result.RowsInserted))
	m.lastSuccessSeconds.Set(float64(result.StartedAt.Add(result.Duration).Unix()))
}

// PushEnabled reports whether a Pushgateway URL is configured.
func (m *Manager) PushEnabled() bool {
	return m.pushURL != ""
}

// Push sends the current metrics to the Pushgateway. It is a no-op when none is configured.
func (m *Manager) Push(ctx context.Context) error {
	if !m.PushEnabled() {
		return nil
	}
	if err := push.New(m.pushURL, m.pushJob).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	return nil
}
