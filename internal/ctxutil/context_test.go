package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	if _, ok := GetRequestID(context.Background()); ok {
		t.Error("expected no request ID on empty context")
	}
	if _, ok := GetRequestID(WithRequestID(context.Background(), "")); ok {
		t.Error("empty request ID should be reported as absent")
	}

	ctx := WithRequestID(context.Background(), "req-123")
	if got, ok := GetRequestID(ctx); !ok || got != "req-123" {
		t.Errorf("GetRequestID() = %q, %v; want req-123, true", got, ok)
	}
}

func TestUserIDContext(t *testing.T) {
	t.Parallel()

	if got := GetUserID(context.Background()); got != "" {
		t.Errorf("expected empty user ID, got %q", got)
	}
	ctx := WithUserID(context.Background(), "U1234567890")
	if got := GetUserID(ctx); got != "U1234567890" {
		t.Errorf("GetUserID() = %q", got)
	}
}

func TestChannelContext(t *testing.T) {
	t.Parallel()

	if got := GetChannel(context.Background()); got != ChannelHTTP {
		t.Errorf("default channel = %q, want %q", got, ChannelHTTP)
	}
	if got := GetChannel(WithChannel(context.Background(), ChannelLINE)); got != ChannelLINE {
		t.Errorf("GetChannel() = %q, want %q", got, ChannelLINE)
	}
}

func TestPreserveTracing(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	parent = WithRequestID(parent, "req-1")
	parent = WithUserID(parent, "U1")
	parent = WithChannel(parent, ChannelLINE)
	cancel()

	ctx := PreserveTracing(parent)

	if ctx.Err() != nil {
		t.Errorf("preserved context should not inherit cancellation, got %v", ctx.Err())
	}
	if _, ok := ctx.Deadline(); ok {
		t.Error("preserved context should not inherit deadline")
	}
	if got, _ := GetRequestID(ctx); got != "req-1" {
		t.Errorf("request ID = %q", got)
	}
	if got := GetUserID(ctx); got != "U1" {
		t.Errorf("user ID = %q", got)
	}
	if got := GetChannel(ctx); got != ChannelLINE {
		t.Errorf("channel = %q", got)
	}
}

func TestPreserveTracing_Empty(t *testing.T) {
	t.Parallel()

	ctx := PreserveTracing(context.Background())
	if _, ok := GetRequestID(ctx); ok {
		t.Error("unexpected request ID")
	}
	if got := GetChannel(ctx); got != ChannelHTTP {
		t.Errorf("channel = %q, want default", got)
	}
}
