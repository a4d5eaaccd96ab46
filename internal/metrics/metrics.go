package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat endpoint metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Matcher metrics
	MatchTotal *prometheus.CounterVec

	// Completion metrics
	CompletionTotal           *prometheus.CounterVec
	CompletionDurationSeconds *prometheus.HistogramVec
	FallbackTotal             *prometheus.CounterVec

	// Webhook metrics
	WebhookEventsTotal     *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Knowledge table size, set once at startup
	KnowledgeEntries prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "faqbot_chat_requests_total",
				Help: "Total number of chat endpoint calls by outcome",
			},
			[]string{"status"}, // status: ok, fallback, bad_request, method_not_allowed, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faqbot_chat_duration_seconds",
				Help:    "Chat endpoint latency in seconds by channel",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 20, 30}, // Upper bound near the 30s LLM timeout
			},
			[]string{"channel"}, // channel: http, line
		),

		MatchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "faqbot_match_total",
				Help: "Total number of context resolutions by strategy and result",
			},
			[]string{"strategy", "result"}, // result: matched, no_match, provided
		),

		CompletionTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "faqbot_completion_total",
				Help: "Total number of completion calls by provider and outcome",
			},
			[]string{"provider", "outcome"}, // outcome: success or a genai failure reason
		),

		CompletionDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faqbot_completion_duration_seconds",
				Help:    "Completion call duration in seconds by provider",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		FallbackTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "faqbot_fallback_total",
				Help: "Total number of answers served from raw context after a completion failure",
			},
			[]string{"reason"},
		),

		WebhookEventsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "faqbot_webhook_events_total",
				Help: "Total number of LINE webhook events by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error, ignored
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "faqbot_webhook_duration_seconds",
				Help:    "Webhook event processing duration in seconds by event type",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"event_type"},
		),

		KnowledgeEntries: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "faqbot_knowledge_entries",
				Help: "Number of entries in the loaded knowledge table",
			},
		),
	}

	return m
}

// RecordChat records one chat endpoint call
func (m *Metrics) RecordChat(channel, status string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(status).Inc()
	m.ChatDurationSeconds.WithLabelValues(channel).Observe(duration)
}

// RecordMatch records a context resolution
func (m *Metrics) RecordMatch(strategy, result string) {
	m.MatchTotal.WithLabelValues(strategy, result).Inc()
}

// RecordCompletion records a completion call
func (m *Metrics) RecordCompletion(provider, outcome string, duration float64) {
	m.CompletionTotal.WithLabelValues(provider, outcome).Inc()
	m.CompletionDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordFallback records an answer degraded to raw context
func (m *Metrics) RecordFallback(reason string) {
	m.FallbackTotal.WithLabelValues(reason).Inc()
}

// RecordWebhook records a processed webhook event
func (m *Metrics) RecordWebhook(eventType, status string, duration float64) {
	m.WebhookEventsTotal.WithLabelValues(eventType, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(eventType).Observe(duration)
}

// SetKnowledgeEntries records the knowledge table size
func (m *Metrics) SetKnowledgeEntries(n int) {
	m.KnowledgeEntries.Set(float64(n))
}
