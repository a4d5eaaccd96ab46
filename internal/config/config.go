// Package config provides application configuration management.
// It loads settings from environment variables (optionally seeded from a .env
// file) into an explicitly constructed Config that callers pass around.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/garyellow/sookmyung-chatbot-go/internal/genai"
	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/matcher"
	"github.com/garyellow/sookmyung-chatbot-go/internal/r2client"
)

// Mode selects which settings Load validates.
type Mode int

const (
	// ServerMode validates everything the HTTP server needs.
	ServerMode Mode = iota
	// ToolMode validates only knowledge and R2 settings, for cmd/verify and cmd/publish.
	ToolMode
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	ServiceName     string

	// LLM Configuration
	LLMProvider    string // "zai" (default) or "gemini"
	ZAIAPIKey      string
	GeminiAPIKey   string
	LLMBaseURL     string // empty = provider default
	LLMModel       string // empty = provider default
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration

	// Knowledge Configuration
	MatchStrategy   string // "scored" (default), "simple" or "rag"
	KnowledgeSource string // empty = built-in table, r2://key, or a local path

	// R2 Configuration (required only for r2:// sources and cmd/publish)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string

	// LINE Configuration (both empty = webhook disabled)
	LineChannelSecret string
	LineChannelToken  string

	// Sentry Configuration
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack Configuration
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	return LoadForMode(ServerMode)
}

// LoadForMode is Load with mode-specific validation.
func LoadForMode(mode Mode) (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, GracefulShutdown),
		ServiceName:     getEnv(EnvServiceName, "sookmyong-chatbot"),

		LLMProvider:    strings.ToLower(getEnv(EnvLLMProvider, string(genai.ProviderZAI))),
		ZAIAPIKey:      getEnv(EnvZAIAPIKey, ""),
		GeminiAPIKey:   getEnv(EnvGeminiAPIKey, ""),
		LLMBaseURL:     getEnv(EnvLLMBaseURL, ""),
		LLMModel:       getEnv(EnvLLMModel, ""),
		LLMMaxTokens:   getIntEnv(EnvLLMMaxTokens, genai.DefaultMaxTokens),
		LLMTemperature: getFloatEnv(EnvLLMTemperature, genai.DefaultTemperature),
		LLMTimeout:     getDurationEnv(EnvLLMTimeout, DefaultLLMTimeout),

		MatchStrategy:   getEnv(EnvMatchStrategy, string(matcher.StrategyScored)),
		KnowledgeSource: getEnv(EnvKnowledgeSource, ""),

		R2AccountID:       getEnv(EnvR2AccountID, ""),
		R2AccessKeyID:     getEnv(EnvR2AccessKeyID, ""),
		R2SecretAccessKey: getEnv(EnvR2SecretAccessKey, ""),
		R2BucketName:      getEnv(EnvR2BucketName, ""),

		LineChannelSecret: getEnv(EnvLineChannelSecret, ""),
		LineChannelToken:  getEnv(EnvLineChannelAccessToken, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	// Validate configuration
	if err := cfg.ValidateForMode(mode); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	return c.ValidateForMode(ServerMode)
}

// ValidateForMode checks the settings mode depends on.
func (c *Config) ValidateForMode(mode Mode) error {
	var errs []error

	if _, err := matcher.ParseStrategy(c.MatchStrategy); err != nil {
		errs = append(errs, fmt.Errorf("MATCH_STRATEGY: %w", err))
	}
	if strings.HasPrefix(c.KnowledgeSource, knowledge.R2Prefix) && !c.HasR2() {
		errs = append(errs, errors.New("R2 credentials are required for an r2:// KNOWLEDGE_SOURCE"))
	}
	if mode == ToolMode {
		return errors.Join(errs...)
	}

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.ShutdownTimeout))
	}

	provider, ok := genai.ParseProvider(c.LLMProvider)
	switch {
	case !ok:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q",
			genai.ProviderZAI, genai.ProviderGemini, c.LLMProvider))
	case provider == genai.ProviderZAI && c.ZAIAPIKey == "":
		errs = append(errs, errors.New("ZAI_API_KEY is required when LLM_PROVIDER=zai"))
	case provider == genai.ProviderGemini && c.GeminiAPIKey == "":
		errs = append(errs, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini"))
	}
	if c.LLMMaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens))
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		errs = append(errs, fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.LLMTemperature))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLMTimeout))
	}

	if (c.LineChannelSecret == "") != (c.LineChannelToken == "") {
		errs = append(errs, errors.New("LINE_CHANNEL_SECRET and LINE_CHANNEL_ACCESS_TOKEN must be set together"))
	}

	if c.SentrySampleRate < 0 || c.SentrySampleRate > 1 {
		errs = append(errs, fmt.Errorf("SENTRY_SAMPLE_RATE must be between 0 and 1, got %v", c.SentrySampleRate))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Completion returns the completion client configuration for the selected provider.
func (c *Config) Completion() genai.Config {
	provider, _ := genai.ParseProvider(c.LLMProvider)
	apiKey := c.ZAIAPIKey
	if provider == genai.ProviderGemini {
		apiKey = c.GeminiAPIKey
	}
	return genai.Config{
		Provider:    provider,
		APIKey:      apiKey,
		BaseURL:     c.LLMBaseURL,
		Model:       c.LLMModel,
		MaxTokens:   c.LLMMaxTokens,
		Temperature: c.LLMTemperature,
		Timeout:     c.LLMTimeout,
	}
}

// Strategy returns the parsed match strategy, falling back to scored.
func (c *Config) Strategy() matcher.Strategy {
	s, err := matcher.ParseStrategy(c.MatchStrategy)
	if err != nil {
		return matcher.StrategyScored
	}
	return s
}

// HasR2 reports whether all R2 settings are present.
func (c *Config) HasR2() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// R2Endpoint returns the S3-compatible endpoint for the configured account.
func (c *Config) R2Endpoint() string {
	if c.R2AccountID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
}

// R2 returns the object storage client configuration.
func (c *Config) R2() r2client.Config {
	return r2client.Config{
		Endpoint:    c.R2Endpoint(),
		AccessKeyID: c.R2AccessKeyID,
		SecretKey:   c.R2SecretAccessKey,
		BucketName:  c.R2BucketName,
	}
}

// LineEnabled reports whether the LINE webhook should be mounted.
func (c *Config) LineEnabled() bool {
	return c.LineChannelSecret != "" && c.LineChannelToken != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
