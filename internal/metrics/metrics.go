package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sentiment Cache Metrics
var (
	// SentimentResolutionsTotal tracks tier resolutions by tier and result.
	// tier: cache/remote/fallback/none, result: hit/miss/error
	SentimentResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_resolutions_total",
			Help: "Sentiment document resolutions by tier and result",
		},
		[]string{"tier", "result"},
	)

	// SentimentResolveDuration tracks full resolve-chain latency in seconds
	SentimentResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_resolve_duration_seconds",
			Help:    "Full resolve chain duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SentimentRemoteErrorsTotal tracks remote-tier errors by kind
	SentimentRemoteErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_remote_errors_total",
			Help: "Remote object store errors by kind (not_found/bucket_missing/access_denied/unavailable/other)",
		},
		[]string{"kind"},
	)

	// SentimentCacheWritesTotal tracks cache population attempts by status
	SentimentCacheWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_cache_writes_total",
			Help: "Local cache population attempts by status (success/error)",
		},
		[]string{"status"},
	)

	// SentimentInvalidDocumentsTotal tracks documents rejected by schema validation
	SentimentInvalidDocumentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_invalid_documents_total",
			Help: "Documents rejected because required fields were missing",
		},
	)

	// SentimentCacheClearsTotal tracks explicit cache invalidations by scope
	SentimentCacheClearsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_cache_clears_total",
			Help: "Explicit cache invalidations by scope (single/all)",
		},
		[]string{"scope"},
	)
)

// Drug Catalog Metrics
var (
	// DrugSearchesTotal tracks catalog searches by result (found/empty/error)
	DrugSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drug_searches_total",
			Help: "Drug catalog searches by result (found/empty/error)",
		},
		[]string{"result"},
	)

	// DrugSearchDuration tracks catalog search latency in seconds
	DrugSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drug_search_duration_seconds",
			Help:    "Drug catalog search duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)
)

// HTTP Metrics
var (
	// HTTPRequestsTotal tracks API requests by route and status class
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status class",
		},
		[]string{"route", "status"},
	)
)
