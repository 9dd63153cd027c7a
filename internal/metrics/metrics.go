package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InventoryTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_transactions_total",
			Help: "Inventory transactions applied, by type.",
		},
		[]string{"type"},
	)
	OrderRequestsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_requests_generated_total",
			Help: "Order requests created automatically by the reorder trigger.",
		},
	)
	ReorderSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reorder_skipped_total",
			Help: "Reorder triggers that did not create a request, by reason.",
		},
		[]string{"reason"},
	)
)

const (
	SkipOpenRequest       = "open_request_exists"
	SkipZeroReorderAmount = "zero_reorder_quantity"
)

// Middleware records count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		httpRequestsTotal.WithLabelValues(strconv.Itoa(status), c.Method(), path).Inc()
		httpRequestsDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
