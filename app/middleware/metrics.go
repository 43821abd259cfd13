package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodpoint",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodpoint",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodpoint",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// MetricsHandler returns an HTTP handler exposing the registered Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Metrics wraps the provided handler with HTTP metrics collection.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := routeLabel(r.URL.Path)
		httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// knownRoutes are the path labels the router can serve. Any other path is
// counted as "other" so unknown URLs cannot create new series.
var knownRoutes = map[string]bool{
	"/ping":                        true,
	"/api/food-items":              true,
	"/api/food-items/menu":         true,
	"/api/food-items/:id":          true,
	"/api/orders":                  true,
	"/api/orders/pending":          true,
	"/api/orders/:id":              true,
	"/api/orders/:id/payment-done": true,
	"/api/orders/:id/bill":         true,
	"/api/sales":                   true,
	"/api/sales/today":             true,
	"/api/sales/monthly":           true,
	"/api/sales/total":             true,
	"/api/sales/recent":            true,
	"/api/sales/trend":             true,
	"/uploads/:file":               true,
}

// routeLabel maps a request path to one of knownRoutes, collapsing numeric ids
// and upload names, e.g. /api/orders/12/payment-done -> /api/orders/:id/payment-done
func routeLabel(path string) string {
	if strings.HasPrefix(path, "/uploads/") {
		return "/uploads/:file"
	}
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	label := strings.Join(parts, "/")
	if !knownRoutes[label] {
		return "other"
	}
	return label
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
