package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "travel_planner"

// Metrics holds the application's Prometheus collectors.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	tripsCreated    prometheus.Counter
	progressUpdates prometheus.Counter
	sharedViews     prometheus.Counter
	cacheLookups    *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		tripsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_created_total",
			Help:      "Trips saved by users.",
		}),
		progressUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trip_progress_updates_total",
			Help:      "Successful trip progress updates.",
		}),
		sharedViews: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shared_trip_views_total",
			Help:      "Trips fetched through a share token.",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_cache_lookups_total",
			Help:      "Travel plan cache lookups by result (hit or miss).",
		}, []string{"result"}),
	}
}

// Middleware records request counts and latency. Unmatched routes are grouped under
// "unmatched" to keep label cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) TripCreated() {
	if m != nil {
		m.tripsCreated.Inc()
	}
}

func (m *Metrics) ProgressUpdated() {
	if m != nil {
		m.progressUpdates.Inc()
	}
}

func (m *Metrics) SharedTripViewed() {
	if m != nil {
		m.sharedViews.Inc()
	}
}

// CacheLookup records a plan cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
