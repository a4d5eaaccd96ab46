package sentry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInitialize_EmptyDSN(t *testing.T) {
	// Sentry uses global state; no t.Parallel()
	if err := Initialize(Config{}); err != nil {
		t.Errorf("expected nil error for empty DSN, got %v", err)
	}
}

func TestInitialize_InvalidDSN(t *testing.T) {
	if err := Initialize(Config{DSN: "not a dsn"}); err == nil {
		t.Error("expected error for malformed DSN")
	}
}

func TestInitialize_ValidConfig(t *testing.T) {
	err := Initialize(Config{
		DSN:         "https://public@sentry.example.com/1",
		Environment: "test",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !IsEnabled() {
		t.Error("expected IsEnabled() after initialization")
	}

	// Capturing must not panic with or without a request hub.
	CaptureException(context.Background(), errors.New("completion failed"), map[string]string{"provider": "zai"})

	Flush(100 * time.Millisecond)
}

func TestFlush(t *testing.T) {
	// Flush should complete quickly when there are no events
	Flush(100 * time.Millisecond)
}
