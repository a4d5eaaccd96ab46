package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiCompleter answers through the Gemini API.
type geminiCompleter struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	timeout     time.Duration
}

func newGeminiCompleter(ctx context.Context, cfg Config) (*geminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiCompleter{
		client:      client,
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens), //nolint:gosec // bounded by config validation
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}, nil
}

// Complete implements Completer.
func (c *geminiCompleter) Complete(ctx context.Context, userMessage, knowledgeContext string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt(knowledgeContext), genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
		MaxOutputTokens:   c.maxTokens,
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userMessage), config)
	duration := time.Since(start)

	if err != nil {
		remoteErr := &RemoteError{Provider: ProviderGemini, Model: c.model, Err: err}
		remoteErr.StatusCode = geminiStatus(err)
		slog.WarnContext(ctx, "generate content API call failed",
			"provider", ProviderGemini,
			"model", c.model,
			"status", remoteErr.StatusCode,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", remoteErr
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", &RemoteError{Provider: ProviderGemini, Model: c.model, Err: ErrNoChoices}
	}

	var text strings.Builder
	if content := resp.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "generate content finished",
			"provider", ProviderGemini,
			"model", c.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds())
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return EmptyResponseMessage, nil
	}
	return result, nil
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// Provider implements Completer.
func (c *geminiCompleter) Provider() Provider {
	return ProviderGemini
}

// Model implements Completer.
func (c *geminiCompleter) Model() string {
	return c.model
}

// Close implements Completer.
// genai.Client does not require explicit cleanup in the current SDK version.
func (c *geminiCompleter) Close() error {
	return nil
}

var _ Completer = (*geminiCompleter)(nil)
