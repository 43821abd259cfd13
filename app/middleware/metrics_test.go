package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	if out.Counter != nil {
		return out.GetCounter().GetValue()
	}
	return out.GetGauge().GetValue()
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/orders/:id/payment-done", routeLabel("/api/orders/12/payment-done"))
	assert.Equal(t, "/api/orders/pending", routeLabel("/api/orders/pending"))
	assert.Equal(t, "/uploads/:file", routeLabel("/uploads/abc_dosa.jpg"))
	assert.Equal(t, "/api/food-items/:id", routeLabel("/api/food-items/3"))

	for _, path := range []string{"/scan-1", "/api/orders/abc", "/api/orders/", "/api/orders/1/2", "/wp-login.php"} {
		assert.Equal(t, "other", routeLabel(path), path)
	}
}

func requestSeries(t *testing.T) int {
	t.Helper()
	families, err := Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "foodpoint_http_requests_total" {
			return len(mf.GetMetric())
		}
	}
	return 0
}

func TestMetricsUnknownPathsShareOneSeries(t *testing.T) {
	h := Metrics(http.HandlerFunc(http.NotFound))

	// create the "other" series up front
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	other := httpRequests.WithLabelValues(http.MethodGet, "other", "404")
	before := metricValue(t, other)
	series := requestSeries(t)

	for i := 0; i < 50; i++ {
		path := fmt.Sprintf("/scan-%d/admin", i)
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+50, metricValue(t, other))
	assert.Equal(t, series, requestSeries(t))
}

func TestMetricsCountsRequests(t *testing.T) {
	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	counter := httpRequests.WithLabelValues(http.MethodGet, "/api/orders/:id", "404")
	before := metricValue(t, counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders/99", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, before+1, metricValue(t, counter))
	assert.Equal(t, 0.0, metricValue(t, httpInFlight))
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	Metrics(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "foodpoint_http_requests_total")
	assert.Contains(t, rec.Body.String(), "foodpoint_http_request_duration_seconds")
}
