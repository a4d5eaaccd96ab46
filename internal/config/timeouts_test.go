package config

import (
	"testing"
	"time"
)

// TestServerTimeouts verifies HTTP server timeout constants
func TestServerTimeouts(t *testing.T) {
	tests := []struct {
		name     string
		got      time.Duration
		expected time.Duration
	}{
		{"HTTPRead", HTTPRead, 10 * time.Second},
		{"HTTPReadHeader", HTTPReadHeader, 5 * time.Second},
		{"HTTPWrite", HTTPWrite, 45 * time.Second},
		{"HTTPIdle", HTTPIdle, 120 * time.Second},
		{"GracefulShutdown", GracefulShutdown, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

// TestTimeoutRelationships verifies that timeouts have proper relationships
func TestTimeoutRelationships(t *testing.T) {
	// A slow completion must still be answered with the fallback reply
	if HTTPWrite <= DefaultLLMTimeout {
		t.Errorf("HTTPWrite (%v) should be > DefaultLLMTimeout (%v)", HTTPWrite, DefaultLLMTimeout)
	}

	if HTTPIdle <= HTTPWrite {
		t.Errorf("HTTPIdle (%v) should be > HTTPWrite (%v)", HTTPIdle, HTTPWrite)
	}

	if WebhookProcessing <= DefaultLLMTimeout {
		t.Errorf("WebhookProcessing (%v) should be > DefaultLLMTimeout (%v)", WebhookProcessing, DefaultLLMTimeout)
	}

	if HTTPReadHeader >= HTTPRead {
		t.Errorf("HTTPReadHeader (%v) should be < HTTPRead (%v)", HTTPReadHeader, HTTPRead)
	}
}
