package config

//nolint:gosec,revive // Environment variable keys are not credentials and do not need per-const comments.
const (
	// Server
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvServiceName     = "SERVICE_NAME"

	// Completion
	EnvLLMProvider    = "LLM_PROVIDER"
	EnvZAIAPIKey      = "ZAI_API_KEY"
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvLLMBaseURL     = "LLM_BASE_URL"
	EnvLLMModel       = "LLM_MODEL"
	EnvLLMMaxTokens   = "LLM_MAX_TOKENS"
	EnvLLMTemperature = "LLM_TEMPERATURE"
	EnvLLMTimeout     = "LLM_TIMEOUT"

	// Knowledge
	EnvMatchStrategy   = "MATCH_STRATEGY"
	EnvKnowledgeSource = "KNOWLEDGE_SOURCE"

	// R2
	EnvR2AccountID       = "R2_ACCOUNT_ID"
	EnvR2AccessKeyID     = "R2_ACCESS_KEY_ID"
	EnvR2SecretAccessKey = "R2_SECRET_ACCESS_KEY"
	EnvR2BucketName      = "R2_BUCKET_NAME"

	// LINE
	EnvLineChannelSecret      = "LINE_CHANNEL_SECRET"
	EnvLineChannelAccessToken = "LINE_CHANNEL_ACCESS_TOKEN"

	// Sentry
	EnvSentryDSN         = "SENTRY_DSN"
	EnvSentryEnvironment = "SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "SENTRY_SAMPLE_RATE"

	// Better Stack
	EnvBetterStackToken    = "BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "BETTERSTACK_ENDPOINT"

	// Metrics auth
	EnvMetricsUsername = "METRICS_USERNAME"
	EnvMetricsPassword = "METRICS_PASSWORD"
)
