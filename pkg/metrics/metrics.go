package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Business metrics
	ViewsCounted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_views_counted_total",
			Help: "Total number of article views counted after de-duplication",
		},
		[]string{"outcome"},
	)

	ArticlesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles published, including scheduled publishes",
		},
	)

	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total number of new-article notifications handed to the dispatcher",
		},
		[]string{"status"},
	)
)
