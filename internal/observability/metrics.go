package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Coordinate resolution metrics.
	ResolveRequests *prometheus.CounterVec // labels: outcome={cache_hit,upstream,fallback,rejected,none}
	ResolveDuration prometheus.Histogram

	// Upstream geocoder metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge

	// Catalog matcher metrics.
	MatchResults *prometheus.CounterVec // labels: tier={exact,partial,variation,state,none}

	// Catalog sync metrics.
	SyncRuns       *prometheus.CounterVec // labels: outcome={success,error}
	SyncDuration   prometheus.Histogram
	CatalogRecords prometheus.Gauge

	// HTTP metrics.
	RateLimited prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ResolveRequests,
		m.ResolveDuration,
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.MatchResults,
		m.SyncRuns,
		m.SyncDuration,
		m.CatalogRecords,
		m.RateLimited,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ResolveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "district_stats",
			Name:      "resolve_requests_total",
			Help:      "Coordinate resolution attempts by outcome.",
		}, []string{"outcome"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "district_stats",
			Name:      "resolve_duration_seconds",
			Help:      "End-to-end coordinate resolution duration.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "district_stats",
			Name:      "geocode_requests_total",
			Help:      "Reverse-geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "district_stats",
			Name:      "geocode_api_duration_seconds",
			Help:      "Reverse-geocoding API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "district_stats",
			Name:      "geocode_enabled",
			Help:      "1 when the upstream geocoder is enabled, 0 otherwise.",
		}),
		MatchResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "district_stats",
			Name:      "match_results_total",
			Help:      "Catalog match attempts by winning matcher tier.",
		}, []string{"tier"}),
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "district_stats",
			Name:      "sync_runs_total",
			Help:      "Catalog sync runs by outcome.",
		}, []string{"outcome"}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "district_stats",
			Name:      "sync_duration_seconds",
			Help:      "Duration of a complete fetch-transform-store sync cycle.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		CatalogRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "district_stats",
			Name:      "catalog_records",
			Help:      "Number of district records loaded by the last sync.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "district_stats",
			Name:      "rate_limited_total",
			Help:      "API requests rejected by the rate limiter.",
		}),
	}
}
