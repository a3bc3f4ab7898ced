// Package metrics exports Prometheus metrics for the compass server.
//
// A [Registry] owns its own prometheus.Registry and implements the
// observability hook interfaces, so registering it routes compose, render,
// cache and outgoing HTTP events into counters and histograms:
//
//	m := metrics.NewRegistry()
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the collectors.
type Registry struct {
	registry *prometheus.Registry

	// Server
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Compose and render
	ComposeTotal       prometheus.Counter
	ComposeEntries     prometheus.Histogram
	ComposeOutputBytes prometheus.Histogram
	RenderTotal        *prometheus.CounterVec
	RenderDuration     *prometheus.HistogramVec
	RendersInFlight    prometheus.Gauge

	// Cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheSetBytes    *prometheus.HistogramVec

	// Outgoing requests (methods fetcher)
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamErrorsTotal     *prometheus.CounterVec
}

// NewRegistry creates a registry with all collectors registered, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clevacompass_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Name: "clevacompass_http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	})

	r.ComposeTotal = f.NewCounter(prometheus.CounterOpts{
		Name: "clevacompass_compose_total",
		Help: "Total number of filled templates",
	})
	r.ComposeEntries = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "clevacompass_compose_entries",
		Help:    "Number of entries per filled template",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
	})
	r.ComposeOutputBytes = f.NewHistogram(prometheus.HistogramOpts{
		Name:    "clevacompass_compose_output_bytes",
		Help:    "Size of filled templates in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
	})
	r.RenderTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_render_total",
			Help: "Total number of renders",
		},
		[]string{"format", "status"}, // success, error
	)
	r.RenderDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clevacompass_render_duration_seconds",
			Help:    "Render latency in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"format"},
	)
	r.RendersInFlight = f.NewGauge(prometheus.GaugeOpts{
		Name: "clevacompass_renders_in_flight",
		Help: "Current number of renders",
	})

	r.CacheHitsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"type"},
	)
	r.CacheMissesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"type"},
	)
	r.CacheSetBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clevacompass_cache_set_bytes",
			Help:    "Size of cache writes in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"type"},
	)

	r.UpstreamRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_upstream_requests_total",
			Help: "Total number of outgoing HTTP requests",
		},
		[]string{"method", "host", "status"},
	)
	r.UpstreamRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clevacompass_upstream_request_duration_seconds",
			Help:    "Outgoing HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "host"},
	)
	r.UpstreamErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clevacompass_upstream_errors_total",
			Help: "Total number of failed outgoing HTTP requests",
		},
		[]string{"method", "host"},
	)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordHTTPRequest records a served request. route is the router pattern,
// not the raw path, to keep label cardinality bounded.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
