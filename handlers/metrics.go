package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vitalvas/routekit/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routekit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Metrics returns middleware that records a request counter labeled by
// method and written status, and a request duration histogram labeled by
// method.
func Metrics(cfg MetricsConfig) router.MiddlewareFunc {
	if cfg.Namespace == "" {
		cfg.Namespace = "routekit"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(cfg.Registry)

	requestsTotal := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "requests_total",
		Help:        "Total number of dispatched requests",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "status"})

	requestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "request_duration_seconds",
		Help:        "Request handling duration in seconds",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"method"})

	return func(next router.Handler) router.Handler {
		return router.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			err := next.ServeRoute(sw, r)

			status := sw.status
			if status == 0 {
				// Nothing written yet; the router will translate the
				// returned error after the middleware chain unwinds.
				status = http.StatusInternalServerError
			}
			requestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

			return err
		})
	}
}
