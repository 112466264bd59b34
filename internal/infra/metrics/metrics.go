package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geosites",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geosites",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	ReviewDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geosites",
		Name:      "submission_reviews_total",
		Help:      "Completed submission reviews by decision.",
	}, []string{"decision"})

	SitesMaterialized = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geosites",
		Name:      "sites_materialized_total",
		Help:      "Sites created from approved submissions.",
	})
)
