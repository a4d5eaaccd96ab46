// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	userIDKey    contextKey = "ctxutil.userID"
	channelKey   contextKey = "ctxutil.channel"
)

// Channels a question can arrive through.
const (
	ChannelHTTP = "http"
	ChannelLINE = "line"
)

// WithRequestID adds a request ID to the context for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}

// WithUserID adds the LINE user ID of the asker to the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID retrieves the user ID, or "" if absent.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// WithChannel records which front-end received the question.
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, channelKey, channel)
}

// GetChannel returns the channel, defaulting to ChannelHTTP.
func GetChannel(ctx context.Context) string {
	if channel, ok := ctx.Value(channelKey).(string); ok && channel != "" {
		return channel
	}
	return ChannelHTTP
}

// PreserveTracing creates a detached context that keeps only tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// Use for async work that must outlive the request, such as LINE webhook
// processing that continues after the HTTP response is sent.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if requestID, ok := GetRequestID(ctx); ok {
		newCtx = WithRequestID(newCtx, requestID)
	}
	if userID := GetUserID(ctx); userID != "" {
		newCtx = WithUserID(newCtx, userID)
	}
	if channel, ok := ctx.Value(channelKey).(string); ok && channel != "" {
		newCtx = WithChannel(newCtx, channel)
	}

	return newCtx
}
