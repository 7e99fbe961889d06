// Package metrics provides Prometheus instrumentation for vanij.
//
// Beyond the standard HTTP metrics it tracks the fulfillment engine:
// how many orders were created or rejected, how often reservations were
// denied for insufficient stock, and how many compensating releases ran.
// Scrape http://localhost:8080/metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vanij",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanij",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vanij",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// OrdersTotal counts fulfillment outcomes.
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanij",
			Subsystem: "fulfillment",
			Name:      "orders_total",
			Help:      "Total order creation attempts by result.",
		},
		[]string{"result"}, // "created" | "rejected" | "failed"
	)

	// ReservationConflicts counts reservations denied for insufficient stock.
	ReservationConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vanij",
		Subsystem: "fulfillment",
		Name:      "reservation_conflicts_total",
		Help:      "Reservations denied because stock was insufficient.",
	})

	// CompensationReleases counts stock releases performed to undo partial
	// reservations or restore stock on cancellation.
	CompensationReleases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanij",
			Subsystem: "fulfillment",
			Name:      "compensation_releases_total",
			Help:      "Stock releases by reason.",
		},
		[]string{"reason"}, // "rollback" | "cancellation"
	)

	// LowStockProducts is the number of products currently below threshold,
	// refreshed by the periodic sweep.
	LowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vanij",
		Subsystem: "inventory",
		Name:      "low_stock_products",
		Help:      "Products currently below their low-stock threshold.",
	})

	// QueueJobsProcessed counts processed background jobs by status.
	QueueJobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vanij",
			Subsystem: "queue",
			Name:      "jobs_processed_total",
			Help:      "Total queue jobs processed.",
		},
		[]string{"status"}, // "success" | "failed"
	)
)

// DefaultRegistry is the Prometheus registry used by vanij.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		OrdersTotal,
		ReservationConflicts,
		CompensationReleases,
		LowStockProducts,
		QueueJobsProcessed,
	)
}

// responseRecorder wraps http.ResponseWriter to capture status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, total and in-flight metrics for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
