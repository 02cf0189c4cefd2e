// Package metrics exports pipeline, cache and HTTP metrics to Prometheus.
//
// A [Registry] implements the hook interfaces of pkg/observability, so
// registering it is all the wiring needed:
//
//	reg := metrics.NewRegistry()
//	observability.SetPipelineHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetHTTPHooks(reg)
//	http.Handle("/metrics", reg.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/umlgraph/pkg/observability"
)

const namespace = "umlgraph"

// Registry holds every metric of the service.
type Registry struct {
	// Pipeline
	ParsesTotal     prometheus.Counter
	ParseDuration   prometheus.Histogram
	ClassesParsed   prometheus.Histogram
	RelationsParsed prometheus.Histogram
	LinesDropped    prometheus.Counter
	LayoutDuration  prometheus.Histogram
	LayoutCrossings prometheus.Histogram
	EdgesReversed   prometheus.Counter
	RendersTotal    *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	ArtifactBytes   *prometheus.HistogramVec

	// Cache
	CacheRequests *prometheus.CounterVec
	CacheSetBytes *prometheus.HistogramVec
	CacheErrors   *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric registered, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{registry: reg}
	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)
	r.ParsesTotal = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "parses_total",
		Help: "Diagrams parsed.",
	})
	r.ParseDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "parse_duration_seconds",
		Help:    "Time spent parsing diagram text.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	r.ClassesParsed = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "diagram_classes",
		Help:    "Classes per parsed diagram.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
	})
	r.RelationsParsed = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "diagram_relations",
		Help:    "Relations per parsed diagram.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
	})
	r.LinesDropped = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "lines_dropped_total",
		Help: "Input lines that contributed nothing to a diagram.",
	})
	r.LayoutDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "layout_duration_seconds",
		Help:    "Time spent computing layouts.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	r.LayoutCrossings = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "layout_crossings",
		Help:    "Edge crossings left by the final ordering.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 100},
	})
	r.EdgesReversed = f.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "layout_edges_reversed_total",
		Help: "Edges reversed to break cycles.",
	})
	r.RendersTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "renders_total",
		Help: "Artifacts rendered, by format and status.",
	}, []string{"format", "status"})
	r.RenderDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "render_duration_seconds",
		Help:    "Time spent formatting artifacts.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})
	r.ArtifactBytes = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "artifact_bytes",
		Help:    "Size of rendered artifacts.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"format"})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)
	r.CacheRequests = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "cache_requests_total",
		Help: "Cache lookups by backend and result (hit, miss).",
	}, []string{"backend", "result"})
	r.CacheSetBytes = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "cache_set_bytes",
		Help:    "Size of values written to the cache.",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"backend"})
	r.CacheErrors = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "cache_errors_total",
		Help: "Failed cache operations.",
	}, []string{"backend"})
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)
	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// OnParse implements observability.PipelineHooks.
func (r *Registry) OnParse(_ context.Context, s observability.ParseStats, d time.Duration) {
	r.ParsesTotal.Inc()
	r.ParseDuration.Observe(d.Seconds())
	r.ClassesParsed.Observe(float64(s.Classes))
	r.RelationsParsed.Observe(float64(s.Edges))
	r.LinesDropped.Add(float64(s.Dropped))
}

// OnLayout implements observability.PipelineHooks.
func (r *Registry) OnLayout(_ context.Context, s observability.LayoutStats, d time.Duration) {
	r.LayoutDuration.Observe(d.Seconds())
	r.LayoutCrossings.Observe(float64(s.Crossings))
	r.EdgesReversed.Add(float64(s.Reversed))
}

// OnRender implements observability.PipelineHooks.
func (r *Registry) OnRender(_ context.Context, format string, size int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.RendersTotal.WithLabelValues(format, status).Inc()
	r.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		r.ArtifactBytes.WithLabelValues(format).Observe(float64(size))
	}
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, backend string) {
	r.CacheRequests.WithLabelValues(backend, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, backend string) {
	r.CacheRequests.WithLabelValues(backend, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, backend string, size int) {
	r.CacheSetBytes.WithLabelValues(backend).Observe(float64(size))
}

// OnCacheError implements observability.CacheHooks.
func (r *Registry) OnCacheError(_ context.Context, backend string, _ error) {
	r.CacheErrors.WithLabelValues(backend).Inc()
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)
