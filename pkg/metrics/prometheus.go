package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chart kinds used as the "kind" label.
const (
	KindScatter    = "scatter"
	KindRadar      = "radar"
	KindRadarTeam  = "radar_team"
	KindRadarPair  = "radar_pair"
	KindTeamAvg    = "radar_team_average"
	labelKind      = "kind"
	percentBuckets = 10
)

// Manager owns the Prometheus metrics of a birdplot run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         *prometheus.Registry

	runtimeCollectors bool

	chartsRendered      *prometheus.CounterVec
	chartRenderErrors   *prometheus.CounterVec
	chartRenderDuration *prometheus.HistogramVec
	recordsLoaded       prometheus.Gauge
	overlapPercent      prometheus.Histogram
	runDuration         prometheus.Gauge
	lastRunTimestamp    prometheus.Gauge
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "birdplot",
		subsystem:        "charts",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	if m.runtimeCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.chartsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rendered_total",
		Help:        "Charts written to disk, by kind",
		ConstLabels: labels,
	}, []string{labelKind})

	m.chartRenderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_errors_total",
		Help:        "Charts that failed to render, by kind",
		ConstLabels: labels,
	}, []string{labelKind})

	m.chartRenderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Time to draw and encode one chart, by kind",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{labelKind})

	m.recordsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "records_loaded",
		Help:        "Person records read from the input table",
		ConstLabels: labels,
	})

	m.overlapPercent = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Name:        "overlap_percent",
		Help:        "Estimated radar polygon overlap of comparison charts",
		Buckets:     prometheus.LinearBuckets(percentBuckets, percentBuckets, 10),
		ConstLabels: labels,
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "run_duration_seconds",
		Help:        "Wall time of the last run",
		ConstLabels: labels,
	})

	m.lastRunTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Name:        "last_run_timestamp_seconds",
		Help:        "Unix time at which the last run finished",
		ConstLabels: labels,
	})
}

// RecordChartRendered counts a written chart and its render time.
func (m *Manager) RecordChartRendered(kind string, took time.Duration) {
	if !m.enabled {
		return
	}
	m.chartsRendered.WithLabelValues(kind).Inc()
	m.chartRenderDuration.WithLabelValues(kind).Observe(float64(took) / float64(time.Millisecond))
}

// RecordChartError counts a failed chart.
func (m *Manager) RecordChartError(kind string) {
	if !m.enabled {
		return
	}
	m.chartRenderErrors.WithLabelValues(kind).Inc()
}

// SetRecordsLoaded sets the number of input records.
func (m *Manager) SetRecordsLoaded(n int) {
	if !m.enabled {
		return
	}
	m.recordsLoaded.Set(float64(n))
}

// RecordOverlap observes one overlap percentage.
func (m *Manager) RecordOverlap(percent float64) {
	if !m.enabled {
		return
	}
	m.overlapPercent.Observe(percent)
}

// RecordRun sets the run duration and completion time.
func (m *Manager) RecordRun(took time.Duration, finished time.Time) {
	if !m.enabled {
		return
	}
	m.runDuration.Set(took.Seconds())
	m.lastRunTimestamp.Set(float64(finished.Unix()))
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
