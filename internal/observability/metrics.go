package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// impact service.
type Metrics struct {
	ImpactRequests  *prometheus.CounterVec // labels: outcome={success,invalid,error}
	ImpactDuration  prometheus.Histogram
	CountiesMatched prometheus.Histogram
	DatasetLoaded   prometheus.Gauge
	DatasetCounties prometheus.Gauge
	GeometrySkips   prometheus.Counter
	PublishErrors   prometheus.Counter
	RecordErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ImpactRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fire_impact",
			Name:      "requests_total",
			Help:      "Impact computations by outcome.",
		}, []string{"outcome"}),
		ImpactDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fire_impact",
			Name:      "request_duration_seconds",
			Help:      "Duration of a complete impact computation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		CountiesMatched: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fire_impact",
			Name:      "counties_matched",
			Help:      "Number of counties intersecting a spread polygon.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fire_impact",
			Name:      "dataset_loaded",
			Help:      "1 when the county dataset is loaded, 0 otherwise.",
		}),
		DatasetCounties: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fire_impact",
			Name:      "dataset_counties",
			Help:      "Number of counties in the loaded dataset.",
		}),
		GeometrySkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fire_impact",
			Name:      "geometry_skips_total",
			Help:      "Counties dropped at load time for unparseable geometry.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fire_impact",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka publishes of impact results.",
		}),
		RecordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fire_impact",
			Name:      "record_errors_total",
			Help:      "Failed database writes of impact results.",
		}),
	}

	prometheus.MustRegister(
		m.ImpactRequests,
		m.ImpactDuration,
		m.CountiesMatched,
		m.DatasetLoaded,
		m.DatasetCounties,
		m.GeometrySkips,
		m.PublishErrors,
		m.RecordErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ImpactRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "fire_impact", Name: "requests_total"}, []string{"outcome"}),
		ImpactDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fire_impact", Name: "request_duration_seconds"}),
		CountiesMatched: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "fire_impact", Name: "counties_matched"}),
		DatasetLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fire_impact", Name: "dataset_loaded"}),
		DatasetCounties: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fire_impact", Name: "dataset_counties"}),
		GeometrySkips:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fire_impact", Name: "geometry_skips_total"}),
		PublishErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fire_impact", Name: "publish_errors_total"}),
		RecordErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fire_impact", Name: "record_errors_total"}),
	}
}
