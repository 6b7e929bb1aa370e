package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgd_auth_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"success"},
	)
	lifecycleOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgd_lifecycle_operations_total",
			Help: "Total organization lifecycle operations by outcome",
		},
		[]string{"operation", "success"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordAuthAttempt records a login attempt.
func RecordAuthAttempt(success bool) {
	authAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordLifecycleOp records a create/rename/delete outcome.
func RecordLifecycleOp(operation string, success bool) {
	lifecycleOps.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}
