package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

// Latency buckets in milliseconds
var latencyBuckets = []float64{
	5, 10, 25,
	50, 100, 250,
	500, 1000, 2500,
	5000, 10000, 30000,
}

var (
	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genie_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genie_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "path"},
	)

	SyncRunsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genie_sync_runs_total",
			Help: "Total number of sync passes by outcome",
		},
		[]string{"status"},
	)

	SyncDocumentsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "genie_sync_documents_total",
			Help: "Documents seen by the sync pipeline by result",
		},
		[]string{"result"}, // synced, skipped or conflict
	)

	EmbeddingFallbacksTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "genie_embedding_fallbacks_total",
			Help: "Embedding calls that degraded to the zero vector",
		},
	)

	SearchRequestsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "genie_search_requests_total",
			Help: "Total number of similarity search requests",
		},
	)
)

func Registry() *prometheus.Registry {
	return registry
}
