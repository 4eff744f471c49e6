package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/routekit/router"
)

func TestMetrics(t *testing.T) {
	t.Run("counts requests by method and status", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		h := Metrics(MetricsConfig{Registry: reg})(router.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) error {
				w.WriteHeader(http.StatusNoContent)
				return nil
			}))

		for i := 0; i < 3; i++ {
			require.NoError(t, h.ServeRoute(httptest.NewRecorder(),
				httptest.NewRequest(http.MethodGet, "/", nil)))
		}

		counter := findMetric(t, reg, "routekit_requests_total",
			map[string]string{"method": "GET", "status": "204"})
		assert.Equal(t, float64(3), counter.GetCounter().GetValue())
	})

	t.Run("observes request duration by method", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		h := Metrics(MetricsConfig{Registry: reg})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error { return nil }))

		require.NoError(t, h.ServeRoute(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodPost, "/", nil)))

		histogram := findMetric(t, reg, "routekit_request_duration_seconds",
			map[string]string{"method": "POST"})
		assert.Equal(t, uint64(1), histogram.GetHistogram().GetSampleCount())
	})

	t.Run("a handler error without a write counts as 500", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		h := Metrics(MetricsConfig{Registry: reg})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error {
				return assert.AnError
			}))

		err := h.ServeRoute(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Error(t, err)

		counter := findMetric(t, reg, "routekit_requests_total",
			map[string]string{"method": "GET", "status": "500"})
		assert.Equal(t, float64(1), counter.GetCounter().GetValue())
	})

	t.Run("namespace and subsystem are configurable", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		h := Metrics(MetricsConfig{
			Registry:  reg,
			Namespace: "myapp",
			Subsystem: "http",
		})(router.HandlerFunc(
			func(http.ResponseWriter, *http.Request) error { return nil }))

		require.NoError(t, h.ServeRoute(httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/", nil)))

		findMetric(t, reg, "myapp_http_requests_total",
			map[string]string{"method": "GET", "status": "500"})
	})
}

// findMetric gathers the registry and returns the metric of the named
// family whose labels include all of want.
func findMetric(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			return m
		}
	}

	t.Fatalf("metric %s with labels %v not found", name, want)
	return nil
}
