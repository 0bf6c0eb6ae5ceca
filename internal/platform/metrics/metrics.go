// Package metrics holds the process-wide Prometheus collectors and the /metrics handler
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts finished requests by route pattern and status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildwatch_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request latency by route pattern
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wildwatch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimited counts requests rejected by the limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildwatch_http_rate_limited_total",
			Help: "Requests rejected by rate limiting",
		},
		[]string{"route"},
	)

	// DetectionsIngested counts webhook outcomes: stored, duplicate, failed
	DetectionsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildwatch_detections_ingested_total",
			Help: "Webhook detections by outcome",
		},
		[]string{"outcome"},
	)

	// NotificationsSent counts channel deliveries by channel and result
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildwatch_notifications_total",
			Help: "Notification deliveries by channel and result",
		},
		[]string{"channel", "result"},
	)

	// GateDecisions counts notification gate outcomes: claimed, throttled
	GateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wildwatch_notification_gate_total",
			Help: "Notification gate decisions",
		},
		[]string{"decision"},
	)

	// BreakerState reports the messaging circuit breaker state (0 closed, 1 half-open, 2 open)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wildwatch_messaging_breaker_state",
			Help: "Messaging provider circuit breaker state",
		},
		[]string{"provider"},
	)

	// DBQueryDuration observes SQL latency by statement label
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wildwatch_db_query_duration_seconds",
			Help:    "Postgres query latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// ObserveHTTP records one finished request
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
