package router

import (
	"net/http"
	"strconv"

	"crowdshield/pkg/observability"

	"github.com/prometheus/client_golang/prometheus"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func PromeHTTPMiddleware(m *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			rw := NewResponseWriter(w)
			timer := prometheus.NewTimer(m.HTTPDuration.With(prometheus.Labels{"method": r.Method, "path": path}))

			next.ServeHTTP(rw, r)

			statusCode := rw.statusCode

			m.StatusCode.With(prometheus.Labels{"status": strconv.Itoa(statusCode), "method": r.Method, "path": path}).Inc()
			m.TotalRequests.With(prometheus.Labels{"path": path, "method": r.Method, "status": strconv.Itoa(statusCode)}).Inc()
			timer.ObserveDuration()
		})
	}
}
