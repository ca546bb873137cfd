// Package metrics defines Prometheus metrics for comp-pricer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cpr"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests currently being served, excluding probes and scrapes.",
	})

	HTTPPanicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Handler panics recovered by the HTTP server.",
	})
)

// Pricing decision metrics.
var (
	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decisions_total",
		Help:      "Total pricing decisions by comps source and match confidence.",
	}, []string{"comps_source", "confidence"})

	CannotCompeteTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cannot_compete_total",
		Help:      "Total decisions whose split could not hit the target delivered price.",
	})

	DecisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "decision_duration_seconds",
		Help:      "Duration of uncached pricing decisions in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	TargetDeliveredDollars = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "target_delivered_dollars",
		Help:      "Distribution of computed target delivered prices in dollars.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 .. 512
	})

	CompVerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comp_verdicts_total",
		Help:      "Total comp candidates classified, by source kind and verdict.",
	}, []string{"kind", "verdict"})
)

// Comp source metrics.
var (
	SourceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_fetch_duration_seconds",
		Help:      "Duration of comp source fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	SourceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_failures_total",
		Help:      "Total comp source fetch failures.",
	}, []string{"source"})
)

// Cache metrics.
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total decision cache hits.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total decision cache misses.",
	})

	CacheErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total decision cache read or write errors.",
	})
)

// eBay API metrics.
var (
	EbayAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_api_calls_total",
		Help:      "Total cumulative eBay API calls.",
	})

	EbayDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ebay_daily_usage",
		Help:      "Current daily eBay API call count within the rolling 24-hour window.",
	})

	EbayDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_daily_limit_hits_total",
		Help:      "Total number of times the daily eBay API limit was reached.",
	})

	EbayTokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_token_refreshes_total",
		Help:      "Total eBay OAuth token refreshes.",
	})
)

// Repricing metrics.
var (
	RepriceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reprice_duration_seconds",
		Help:      "Duration of scheduled reprice cycles in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	RepriceProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reprice_products_total",
		Help:      "Total tracked products repriced.",
	})

	RepriceErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reprice_errors_total",
		Help:      "Total reprice errors (persisting decisions or updating products).",
	})

	LastRepriceTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_reprice_timestamp",
		Help:      "Unix timestamp of the last completed reprice cycle.",
	})
)

// Scheduler metrics.
var (
	SchedulerNextRepriceTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_reprice_timestamp",
		Help:      "Unix timestamp of the next scheduled reprice cycle.",
	})

	SchedulerNextQuotaSyncTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_quota_sync_timestamp",
		Help:      "Unix timestamp of the next scheduled eBay quota sync.",
	})

	SchedulerJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_jobs_total",
		Help:      "Total scheduled job runs by job name and status.",
	}, []string{"job", "status"})
)

// Alert metrics.
var (
	LowPriceAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_price_alerts_total",
		Help:      "Total low-price alerts sent.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Health gauges. 1 when the dependency answered its last check, 0 otherwise.
var (
	DatabaseUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "database_up",
		Help:      "Whether the last database health check succeeded.",
	})

	CacheUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_up",
		Help:      "Whether the last cache health check succeeded.",
	})

	ReadyUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ready_up",
		Help:      "Whether the last readiness probe returned 2xx.",
	})
)
