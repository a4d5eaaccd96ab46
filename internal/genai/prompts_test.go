package genai

import (
	"strings"
	"testing"

	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
)

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	t.Run("informative context is embedded verbatim", func(t *testing.T) {
		t.Parallel()
		ctx := "줄1\n줄2 • 항목"
		got := SystemPrompt(ctx)
		if !strings.Contains(got, "\n\n"+ctx+"\n\n") {
			t.Errorf("context not embedded verbatim: %q", got)
		}
		if !strings.HasPrefix(got, contextPromptHeader) {
			t.Error("prompt should start with the knowledge header")
		}
		if !strings.HasSuffix(got, contextPromptRules) {
			t.Error("prompt should end with the answering rules")
		}
	})

	t.Run("empty and sentinel use generic prompt", func(t *testing.T) {
		t.Parallel()
		for _, ctx := range []string{"", knowledge.NotFoundContext} {
			if got := SystemPrompt(ctx); got != GenericSystemPrompt {
				t.Errorf("SystemPrompt(%q) = %q, want generic prompt", ctx, got)
			}
		}
	})
}
