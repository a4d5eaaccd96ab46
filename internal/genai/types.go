// Package genai provides the chat-completion clients used to phrase answers.
//
// Architecture:
//   - Z.AI GLM (default): OpenAI-compatible API via github.com/openai/openai-go/v3
//   - Gemini: google.golang.org/genai (official SDK)
//
// Every client makes exactly one remote call per Complete. Failures are
// returned as *RemoteError and are never retried; the caller decides how to
// degrade.
package genai

import (
	"context"
	"net/http"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderZAI represents Z.AI's GLM API (OpenAI-compatible).
	ProviderZAI Provider = "zai"
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
)

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, bool) {
	switch p := Provider(s); p {
	case ProviderZAI, ProviderGemini:
		return p, true
	default:
		return "", false
	}
}

// Defaults for the completion request.
const (
	DefaultZAIBaseURL  = "https://api.z.ai/api/paas/v4/"
	DefaultZAIModel    = "glm-4.6"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3
	DefaultTimeout     = 30 * time.Second
)

// AcceptLanguage is sent on every OpenAI-compatible request.
const AcceptLanguage = "en-US,en"

// Completer produces a single answer for a user message, optionally grounded
// on a knowledge context string.
type Completer interface {
	// Complete sends one completion request. context may be empty or the
	// not-found sentinel, in which case no knowledge is embedded.
	Complete(ctx context.Context, userMessage, context string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Model returns the model identifier sent upstream.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// Config configures a Completer.
type Config struct {
	Provider    Provider
	APIKey      string
	BaseURL     string // OpenAI-compatible providers only
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// HTTPClient overrides the transport (tests, proxies). Optional.
	HTTPClient *http.Client
}

func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderZAI
	}
	if c.BaseURL == "" && c.Provider == ProviderZAI {
		c.BaseURL = DefaultZAIBaseURL
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderGemini:
			c.Model = DefaultGeminiModel
		default:
			c.Model = DefaultZAIModel
		}
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
