package config

import "time"

// HTTP server timeouts.
//
// The write timeout must exceed the completion timeout so that a slow LLM call
// still ends in a (fallback) response instead of a dropped connection.
const (
	// HTTPRead is the server read timeout. Chat payloads are small.
	HTTPRead = 10 * time.Second

	// HTTPReadHeader bounds header reads (slowloris protection).
	HTTPReadHeader = 5 * time.Second

	// HTTPWrite covers DefaultLLMTimeout plus matching and serialization.
	HTTPWrite = 45 * time.Second

	// HTTPIdle is the keep-alive idle timeout.
	HTTPIdle = 120 * time.Second
)

// Completion defaults.
const (
	// DefaultLLMTimeout bounds one completion call.
	DefaultLLMTimeout = 30 * time.Second
)

// LINE webhook.
const (
	// WebhookProcessing bounds the async handling of one webhook event,
	// including the completion call and the reply. LINE's loading animation
	// lasts up to 60s.
	WebhookProcessing = 60 * time.Second
)

// Startup.
const (
	// KnowledgeLoad bounds fetching the knowledge table from R2.
	KnowledgeLoad = 30 * time.Second
)

// Graceful shutdown.
const (
	// GracefulShutdown is the default time allowed for in-flight requests to finish.
	GracefulShutdown = 30 * time.Second
)
