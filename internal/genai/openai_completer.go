package genai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiCompleter talks to any OpenAI-compatible chat-completions endpoint.
// Z.AI GLM is the default target.
type openaiCompleter struct {
	client      openai.Client
	provider    Provider
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

func newOpenAICompleter(cfg Config) (*openaiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithHeader("Accept-Language", AcceptLanguage),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &openaiCompleter{
		client:      openai.NewClient(opts...),
		provider:    cfg.Provider,
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}, nil
}

// reasoningMessage captures the non-standard field some reasoning models
// (GLM included) use when content is empty.
type reasoningMessage struct {
	ReasoningContent string `json:"reasoning_content"`
}

// Complete implements Completer.
func (c *openaiCompleter) Complete(ctx context.Context, userMessage, knowledgeContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt(knowledgeContext)),
			openai.UserMessage(userMessage),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		remoteErr := &RemoteError{Provider: c.provider, Model: c.model, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			remoteErr.StatusCode = apiErr.StatusCode
		}
		slog.WarnContext(ctx, "chat completion API call failed",
			"provider", c.provider,
			"model", c.model,
			"status", remoteErr.StatusCode,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", remoteErr
	}

	if len(resp.Choices) == 0 {
		return "", &RemoteError{Provider: c.provider, Model: c.model, Err: ErrNoChoices}
	}

	msg := resp.Choices[0].Message
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		text = strings.TrimSpace(reasoningContent(msg))
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "chat completion finished",
			"provider", c.provider,
			"model", c.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds())
	}

	if text == "" {
		return EmptyResponseMessage, nil
	}
	return text, nil
}

func reasoningContent(msg openai.ChatCompletionMessage) string {
	raw := msg.RawJSON()
	if raw == "" {
		return ""
	}
	var rm reasoningMessage
	if err := json.Unmarshal([]byte(raw), &rm); err != nil {
		return ""
	}
	return rm.ReasoningContent
}

// Provider implements Completer.
func (c *openaiCompleter) Provider() Provider {
	return c.provider
}

// Model implements Completer.
func (c *openaiCompleter) Model() string {
	return c.model
}

// Close implements Completer. The openai-go client needs no cleanup.
func (c *openaiCompleter) Close() error {
	return nil
}

var _ Completer = (*openaiCompleter)(nil)
