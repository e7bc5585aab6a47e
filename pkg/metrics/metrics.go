package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/routetable"
	"github.com/dmitrymomot/folio/pkg/routing"
)

const unmatchedKind = "none"

// Option configures Metrics.
type Option func(*config)

type config struct {
	registry    *prometheus.Registry
	constLabels prometheus.Labels
	namespace   string
	buckets     []float64
}

// WithNamespace prefixes every metric name. Default: "folio".
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithRegistry registers collectors on r instead of a private registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithConstLabels adds labels to every metric.
func WithConstLabels(l prometheus.Labels) Option {
	return func(c *config) { c.constLabels = l }
}

// WithBuckets sets histogram buckets, in seconds, for match and request latency.
func WithBuckets(b []float64) Option {
	return func(c *config) { c.buckets = b }
}

// Metrics holds folio's collectors.
type Metrics struct {
	registry      *prometheus.Registry
	factory       promauto.Factory
	matches       *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec
	matchErrors   *prometheus.CounterVec
	reloads       *prometheus.CounterVec
	routeEntries  prometheus.Gauge
	requests      *prometheus.CounterVec
	reqDuration   *prometheus.HistogramVec
	cfg           config
}

// New creates and registers the collectors.
func New(opts ...Option) *Metrics {
	cfg := config{
		namespace: "folio",
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
		cfg.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	f := promauto.With(cfg.registry)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return f.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace, Name: name, Help: help, ConstLabels: cfg.constLabels,
		}, labels)
	}
	histogram := func(name, help string, labels ...string) *prometheus.HistogramVec {
		return f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace, Name: name, Help: help, ConstLabels: cfg.constLabels, Buckets: cfg.buckets,
		}, labels)
	}

	return &Metrics{
		registry:      cfg.registry,
		factory:       f,
		cfg:           cfg,
		matches:       counter("route_matches_total", "Requests resolved by the router, by settling stage and match kind.", "stage", "kind"),
		matchDuration: histogram("route_match_duration_seconds", "Time spent resolving a request.", "stage"),
		matchErrors:   counter("route_match_errors_total", "Match calls that failed, by stage.", "stage"),
		reloads:       counter("route_table_reloads_total", "Route table reload attempts.", "result"),
		routeEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.namespace, Name: "route_table_entries", Help: "Exact entries in the active route table.", ConstLabels: cfg.constLabels,
		}),
		requests:    counter("http_requests_total", "HTTP requests served, by method and status code.", "method", "code"),
		reqDuration: histogram("http_request_duration_seconds", "HTTP request latency.", "method"),
	}
}

// ObserveMatch implements routing.Observer.
func (m *Metrics) ObserveMatch(stage routing.Stage, rm *routing.RouteMatch, elapsed time.Duration) {
	kind := unmatchedKind
	if rm != nil {
		kind = string(rm.Kind())
	}
	m.matches.WithLabelValues(string(stage), kind).Inc()
	m.matchDuration.WithLabelValues(string(stage)).Observe(elapsed.Seconds())
}

// ObserveError implements routing.Observer.
func (m *Metrics) ObserveError(stage routing.Stage, _ error) {
	m.matchErrors.WithLabelValues(string(stage)).Inc()
}

// TableReloaded records a successful route table swap. Pass it to
// routetable.WithReloadCallback.
func (m *Metrics) TableReloaded(t *routetable.Table) {
	m.reloads.WithLabelValues("ok").Inc()
	m.routeEntries.Set(float64(t.Len()))
}

// TableReloadFailed records a rejected route table file.
func (m *Metrics) TableReloadFailed(error) {
	m.reloads.WithLabelValues("error").Inc()
}

// SetTable records the route table loaded at boot.
func (m *Metrics) SetTable(t *routetable.Table) {
	m.routeEntries.Set(float64(t.Len()))
}

// RegisterCache exports hit and miss counters of a cache under the given name.
func (m *Metrics) RegisterCache(name string, s cache.StatsReporter) {
	labels := prometheus.Labels{"cache": name}
	for k, v := range m.cfg.constLabels {
		labels[k] = v
	}
	m.factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: m.cfg.namespace, Name: "cache_hits_total", Help: "Cache hits.", ConstLabels: labels,
	}, func() float64 { return float64(s.Stats().Hits) })
	m.factory.NewCounterFunc(prometheus.CounterOpts{
		Namespace: m.cfg.namespace, Name: "cache_misses_total", Help: "Cache misses.", ConstLabels: labels,
	}, func() float64 { return float64(s.Stats().Misses) })
}

// Middleware counts requests and their latency.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, strconv.Itoa(code)).Inc()
		m.reqDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:          m.registry,
		ErrorHandling:     promhttp.ContinueOnError,
		EnableOpenMetrics: true,
	})
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

var _ routing.Observer = (*Metrics)(nil)
