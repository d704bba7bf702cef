package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"rostersync/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncBatchCommits(result string)
	AddBatchMutations(count int)
	IncOverlayReconciles(result string)
	IncEditConflicts()
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetRosterSize(total, active int)
	SetPendingMutations(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	batchCommits        *prometheus.CounterVec
	batchMutations      prometheus.Counter
	overlayReconciles   *prometheus.CounterVec
	editConflicts       prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	rosterSize          *prometheus.GaugeVec
	pendingMutations    prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncBatchCommits(result string) {
	m.batchCommits.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) AddBatchMutations(count int) {
	m.batchMutations.Add(float64(count))
}

func (m *MetricsProvider) IncOverlayReconciles(result string) {
	m.overlayReconciles.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncEditConflicts() {
	m.editConflicts.Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetRosterSize(total, active int) {
	m.rosterSize.WithLabelValues("total").Set(float64(total))
	m.rosterSize.WithLabelValues("active").Set(float64(active))
}

func (m *MetricsProvider) SetPendingMutations(count int) {
	m.pendingMutations.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rostersync_requests_total",
			Help: "Total number of introspection HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rostersync_request_duration_seconds",
			Help:    "Introspection HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		batchCommits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rostersync_batch_commits_total",
			Help: "Total number of batched active-toggle commits by result",
		}, []string{"result"}),

		batchMutations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rostersync_batch_mutations_total",
			Help: "Total number of pending mutations flushed to the server",
		}),

		overlayReconciles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rostersync_overlay_reconciles_total",
			Help: "Total number of overlay reconciliation sessions by result",
		}, []string{"result"}),

		editConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rostersync_edit_conflicts_total",
			Help: "Total number of schedule edits blocked by the conflict guard",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rostersync_cache_hits_total",
			Help: "Total number of baseline cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rostersync_cache_misses_total",
			Help: "Total number of baseline cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "rostersync_persistence_duration_seconds",
			Help:    "Duration of roster snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		rosterSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rostersync_roster_size",
			Help: "Current roster size by partition",
		}, []string{"partition"}),

		pendingMutations: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "rostersync_pending_mutations",
			Help: "Pending mutations waiting in the debounce window",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncBatchCommits(_ string)                         {}
func (n *noopMetrics) AddBatchMutations(_ int)                          {}
func (n *noopMetrics) IncOverlayReconciles(_ string)                    {}
func (n *noopMetrics) IncEditConflicts()                                {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetRosterSize(_, _ int)                           {}
func (n *noopMetrics) SetPendingMutations(_ int)                        {}
