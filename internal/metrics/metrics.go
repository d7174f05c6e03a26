package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sangam_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sangam_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AuditQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sangam_audit_queue_depth",
		Help: "Entries currently buffered in the audit queue.",
	})

	AuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sangam_audit_dropped_total",
		Help: "Audit entries dropped because the queue was full.",
	})

	AuditWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sangam_audit_write_failures_total",
		Help: "Audit writes that failed and were discarded.",
	})
)

// HTTPMiddleware records per-request counters and latency, keyed by the route
// template (not the raw path, to keep cardinality bounded).
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
