package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landlord_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landlord_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landlord_cache_lookups_total",
			Help: "Cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	cacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landlord_cache_writes_total",
			Help: "Cache writes by result (ok, error)",
		},
		[]string{"result"},
	)

	aiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landlord_ai_requests_total",
			Help: "AI summarization calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landlord_ai_request_duration_seconds",
			Help:    "Latency of calls to the AI provider",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"kind"},
	)

	geocodeJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landlord_geocode_jobs_total",
			Help: "Background geocode jobs by outcome",
		},
		[]string{"outcome"},
	)

	overdueMarked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "landlord_rent_payments_marked_overdue_total",
		Help: "Rent payments moved from pending to overdue by the sweep",
	})
)

func CacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

func CacheWrite(result string) {
	cacheWrites.WithLabelValues(result).Inc()
}

// AIRequest records one provider call. Disabled adapters record outcome "disabled" with no latency.
func AIRequest(kind, outcome string, elapsed time.Duration) {
	aiRequests.WithLabelValues(kind, outcome).Inc()
	if elapsed > 0 {
		aiRequestDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

func GeocodeJob(outcome string) {
	geocodeJobs.WithLabelValues(outcome).Inc()
}

func OverdueMarked(n int64) {
	overdueMarked.Add(float64(n))
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		if path == "/metrics" || path == "/health" {
			return
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
