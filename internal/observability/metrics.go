package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/campaign-analytics/internal/utils"
)

// Metrics holds the Prometheus collectors of the dashboard service.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	dashboards      prometheus.Counter
	filteredRows    prometheus.Histogram
	computeDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campaign_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	dashboards := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_dashboard_computations_total",
		Help: "Filter and compute passes over the base table.",
	})
	filtered := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_dashboard_filtered_rows",
		Help:    "Rows left after applying dashboard filters.",
		Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
	})
	compute := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_dashboard_compute_seconds",
		Help:    "Time spent filtering and aggregating one dashboard.",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})
	registry.MustRegister(requests, duration, dashboards, filtered, compute)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		dashboards:      dashboards,
		filteredRows:    filtered,
		computeDuration: compute,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveDashboard implements metrics.Observer.
func (m *Metrics) ObserveDashboard(rows int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dashboards.Inc()
	m.filteredRows.Observe(float64(rows))
	m.computeDuration.Observe(elapsed.Seconds())
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := utils.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.Status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
