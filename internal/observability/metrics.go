package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "waiola"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset metrics, set once per load.
	DatasetRecords   prometheus.Gauge
	DatasetSites     prometheus.Gauge
	ImputedValues    prometheus.Counter
	UnrepairedValues prometheus.Gauge

	// Callback metrics.
	Callbacks        *prometheus.CounterVec   // labels: group, outcome={updated,suppressed,error}
	CallbackDuration *prometheus.HistogramVec // labels: group
	ChartExports     *prometheus.CounterVec   // labels: format, outcome={success,empty,error}
	HTTPRequests     *prometheus.CounterVec   // labels: route, code

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge

	SitesPublished  prometheus.Counter
	PublishFailures prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Cleaned records in the loaded dataset.",
		}),
		DatasetSites: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_sites",
			Help:      "Distinct sites in the loaded dataset.",
		}),
		ImputedValues: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imputed_values_total",
			Help:      "Missing values replaced by their site mean.",
		}),
		UnrepairedValues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unrepaired_values",
			Help:      "Values still missing after imputation.",
		}),
		Callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callbacks_total",
			Help:      "Callback group executions by outcome.",
		}, []string{"group", "outcome"}),
		CallbackDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "callback_duration_seconds",
			Help:      "Time to compute a callback group's figures.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"group"}),
		ChartExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_exports_total",
			Help:      "Static chart exports by format and outcome.",
		}, []string{"format", "outcome"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
		SitesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_published_total",
			Help:      "Site averages written to the summary topic.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_failures_total",
			Help:      "Publish attempts that returned an error.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DatasetRecords,
		m.DatasetSites,
		m.ImputedValues,
		m.UnrepairedValues,
		m.Callbacks,
		m.CallbackDuration,
		m.ChartExports,
		m.HTTPRequests,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.SitesPublished,
		m.PublishFailures,
	}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics registered with a fresh registry to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	prometheus.NewRegistry().MustRegister(m.collectors()...)
	return m
}
