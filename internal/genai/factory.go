package genai

import (
	"context"
	"fmt"
	"log/slog"
)

// NewCompleter creates the Completer for cfg.Provider.
// A missing API key is an error; there is no built-in credential.
func NewCompleter(ctx context.Context, cfg Config) (Completer, error) {
	cfg = cfg.withDefaults()

	var (
		c   Completer
		err error
	)
	switch cfg.Provider {
	case ProviderZAI:
		c, err = newOpenAICompleter(cfg)
	case ProviderGemini:
		c, err = newGeminiCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("genai: unsupported provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("genai: create %s completer: %w", cfg.Provider, err)
	}

	slog.InfoContext(ctx, "completion client configured",
		"provider", c.Provider(),
		"model", c.Model(),
		"max_tokens", cfg.MaxTokens,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout)

	return c, nil
}
