// Package chat answers one question: it resolves a knowledge context, asks the
// completion provider and degrades to the raw context when the provider fails.
//
// The HTTP API and the LINE webhook both call Service.Answer, so the fallback
// behavior is identical on every channel.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/garyellow/sookmyung-chatbot-go/internal/ctxutil"
	"github.com/garyellow/sookmyung-chatbot-go/internal/genai"
	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/matcher"
	"github.com/garyellow/sookmyung-chatbot-go/internal/metrics"
	"github.com/garyellow/sookmyung-chatbot-go/internal/sentry"
)

// Reply is the answer to one question.
type Reply struct {
	Response    string `json:"response"`
	ContextUsed bool   `json:"context_used"`
}

// Match results, used as metric labels.
const (
	matchProvided = "provided"
	matchFound    = "matched"
	matchNone     = "no_match"
)

// Completion outcomes, used as metric labels.
const (
	outcomeSuccess  = "success"
	outcomeFallback = "fallback"
	outcomeError    = "error"
)

// ServiceConfig holds the dependencies of a Service.
type ServiceConfig struct {
	Matcher   *matcher.Matcher
	Completer genai.Completer
	Strategy  matcher.Strategy
	Metrics   *metrics.Metrics // optional
	Logger    *logger.Logger
}

// Service answers questions. It is safe for concurrent use: the matcher is
// read-only and completers are safe for concurrent calls.
type Service struct {
	matcher   *matcher.Matcher
	completer genai.Completer
	strategy  matcher.Strategy
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewService creates a Service. Matcher, Completer and Logger are required.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Matcher == nil {
		return nil, errors.New("chat: matcher is required")
	}
	if cfg.Completer == nil {
		return nil, errors.New("chat: completer is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("chat: logger is required")
	}
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = matcher.StrategyScored
	}
	return &Service{
		matcher:   cfg.Matcher,
		completer: cfg.Completer,
		strategy:  strategy,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.WithModule("chat"),
	}, nil
}

// Strategy returns the configured context resolution strategy.
func (s *Service) Strategy() matcher.Strategy {
	return s.strategy
}

// ResolveContext returns provided unchanged when it is non-empty, otherwise
// the matcher's context for message.
func (s *Service) ResolveContext(message, provided string) string {
	if provided != "" {
		s.recordMatch(matchProvided)
		return provided
	}

	ctxText := s.matcher.Resolve(s.strategy, message)
	if knowledge.IsInformative(ctxText) {
		s.recordMatch(matchFound)
	} else {
		s.recordMatch(matchNone)
	}
	return ctxText
}

// Answer resolves the context for message and asks the completer.
//
// A *genai.RemoteError never fails the call: the reply falls back to the
// context text with ContextUsed set. Any other error is returned as is.
// message must already be validated as non-empty.
func (s *Service) Answer(ctx context.Context, message, provided string) (Reply, error) {
	ctxText := s.ResolveContext(message, provided)
	log := s.logger.WithField("channel", ctxutil.GetChannel(ctx))
	if id, ok := ctxutil.GetRequestID(ctx); ok {
		log = log.WithRequestID(id)
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, message, ctxText)
	elapsed := time.Since(start).Seconds()
	provider := s.completer.Provider().String()

	if err == nil {
		s.recordCompletion(provider, outcomeSuccess, elapsed)
		return Reply{
			Response:    text,
			ContextUsed: knowledge.IsInformative(ctxText),
		}, nil
	}

	var remoteErr *genai.RemoteError
	if !errors.As(err, &remoteErr) {
		s.recordCompletion(provider, outcomeError, elapsed)
		return Reply{}, fmt.Errorf("chat: complete: %w", err)
	}

	s.recordCompletion(provider, outcomeFallback, elapsed)
	if s.metrics != nil {
		s.metrics.RecordFallback(remoteErr.Reason())
	}
	log.WithError(err).
		WithField("reason", remoteErr.Reason()).
		WithField("model", remoteErr.Model).
		Warn("Completion failed, answering with knowledge context")
	sentry.CaptureException(ctx, err, map[string]string{
		"provider": provider,
		"reason":   remoteErr.Reason(),
	})

	// context_used stays true on fallback, even for the not-found sentinel.
	return Reply{Response: ctxText, ContextUsed: true}, nil
}

func (s *Service) recordMatch(result string) {
	if s.metrics != nil {
		s.metrics.RecordMatch(string(s.strategy), result)
	}
}

func (s *Service) recordCompletion(provider, outcome string, seconds float64) {
	if s.metrics != nil {
		s.metrics.RecordCompletion(provider, outcome, seconds)
	}
}
