package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider outcome labels.
const (
	OutcomeRoute      = "route"
	OutcomeIneligible = "ineligible"
	OutcomeError      = "error"
)

var (
	// Quote metrics
	ProviderQuotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgeswap_provider_quotes_total",
			Help: "Total number of provider quote calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridgeswap_provider_quote_duration_seconds",
			Help:    "Provider quote call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridgeswap_aggregation_duration_seconds",
		Help:    "Duration of one quote aggregation run in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	AggregationRoutes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridgeswap_aggregation_routes",
		Help:    "Number of routes returned per aggregation run",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})

	AggregationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgeswap_aggregation_failures_total",
		Help: "Total number of aggregation runs where every provider failed",
	})

	// Session metrics
	QuoteFetchesSuperseded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgeswap_quote_fetches_superseded_total",
		Help: "Total number of quote fetches discarded because the intent changed",
	})

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgeswap_submissions_total",
			Help: "Total number of swap submissions by status",
		},
		[]string{"bridge", "status"},
	)

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgeswap_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bridgeswap_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
