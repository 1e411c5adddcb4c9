package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsSynced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_synced_total",
			Help: "Total number of leads created by sync jobs",
		},
	)

	syncJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_jobs_total",
			Help: "Total number of sync jobs by outcome",
		},
		[]string{"status"},
	)

	enrichmentFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enrichment_fallbacks_total",
			Help: "Total number of enrichments resolved by the deterministic fallback",
		},
	)

	leadCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_cache_hits_total",
			Help: "Total number of lead lookups served from cache",
		},
	)

	leadCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_cache_misses_total",
			Help: "Total number of lead lookups that fell through to the store",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSyncJob(status string, synced int) {
	syncJobs.WithLabelValues(status).Inc()
	if synced > 0 {
		leadsSynced.Add(float64(synced))
	}
}

func RecordEnrichmentFallback() {
	enrichmentFallbacks.Inc()
}

func RecordCacheHit() {
	leadCacheHits.Inc()
}

func RecordCacheMiss() {
	leadCacheMisses.Inc()
}
