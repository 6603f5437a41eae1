// Package metrics khai báo các collector Prometheus của dashboard
// và middleware Fiber ghi nhận request HTTP.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Aggregation engine
	AggregationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Duration of traffic aggregation operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Import CSV
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_rows_total",
			Help: "Total number of rows inserted by dataset imports",
		},
		[]string{"kind"}, // "traffic", "mapping"
	)

	RegistryCollections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_collections",
			Help: "Number of collection handles registered in this process",
		},
	)
)

// ObserveAggregation ghi thời gian chạy một phép tổng hợp
func ObserveAggregation(operation string, start time.Time) {
	AggregationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordImport cộng số dòng đã ghi của một lần import
func RecordImport(kind string, rows int) {
	if rows <= 0 {
		return
	}
	ImportRowsTotal.WithLabelValues(kind).Add(float64(rows))
}

// Middleware ghi nhận số request và độ trễ theo route pattern (không theo path thật để tránh bùng nổ label)
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unknown"
		}
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
