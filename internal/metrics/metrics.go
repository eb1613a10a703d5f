package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// payment provider call latency in seconds
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_provider_call_duration_seconds",
			Help:    "Payment provider call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"endpoint", "status"},
	)

	// LLM call latency in seconds
	AICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_call_duration_seconds",
			Help:    "LLM provider call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"operation", "status"},
	)

	// escrow transitions applied
	EscrowTransitionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_transition_total",
			Help: "Total number of milestone escrow transitions",
		},
		[]string{"to"},
	)

	// webhook events by type and outcome
	WebhookEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_event_total",
			Help: "Total number of payment provider webhook events",
		},
		[]string{"type", "outcome"},
	)

	// broadcast emails by outcome
	EmailSendCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_send_total",
			Help: "Total number of email delivery attempts",
		},
		[]string{"outcome"},
	)
)
