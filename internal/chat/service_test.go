package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyellow/sookmyung-chatbot-go/internal/genai"
	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
	"github.com/garyellow/sookmyung-chatbot-go/internal/logger"
	"github.com/garyellow/sookmyung-chatbot-go/internal/matcher"
	"github.com/garyellow/sookmyung-chatbot-go/internal/metrics"
)

// fakeCompleter records calls and returns a canned answer or error.
type fakeCompleter struct {
	mu       sync.Mutex
	answer   string
	err      error
	calls    int
	contexts []string
}

func (f *fakeCompleter) Complete(_ context.Context, _, knowledgeContext string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.contexts = append(f.contexts, knowledgeContext)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeCompleter) Provider() genai.Provider { return genai.ProviderZAI }
func (f *fakeCompleter) Model() string            { return "glm-test" }
func (f *fakeCompleter) Close() error             { return nil }

func newTestService(t *testing.T, c genai.Completer, strategy matcher.Strategy) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	svc, err := NewService(ServiceConfig{
		Matcher:   matcher.New(knowledge.Default()),
		Completer: c,
		Strategy:  strategy,
		Metrics:   m,
		Logger:    logger.NewWithWriter("error", io.Discard),
	})
	require.NoError(t, err)
	return svc, m
}

func tuitionContent(t *testing.T) string {
	t.Helper()
	e, ok := knowledge.Default().Get("enrollment_period")
	require.True(t, ok)
	return e.Content
}

func TestNewService_RequiresDependencies(t *testing.T) {
	t.Parallel()

	log := logger.NewWithWriter("error", io.Discard)
	m := matcher.New(knowledge.Default())
	c := &fakeCompleter{}

	_, err := NewService(ServiceConfig{Completer: c, Logger: log})
	assert.Error(t, err)
	_, err = NewService(ServiceConfig{Matcher: m, Logger: log})
	assert.Error(t, err)
	_, err = NewService(ServiceConfig{Matcher: m, Completer: c})
	assert.Error(t, err)

	svc, err := NewService(ServiceConfig{Matcher: m, Completer: c, Logger: log})
	require.NoError(t, err)
	assert.Equal(t, matcher.StrategyScored, svc.Strategy())
}

func TestAnswer_InjectsMatchedContext(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{answer: "2월 6일부터 10일까지입니다."}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "등록금 언제 내나요", "")
	require.NoError(t, err)

	assert.Equal(t, "2월 6일부터 10일까지입니다.", reply.Response)
	assert.True(t, reply.ContextUsed)
	require.Len(t, c.contexts, 1)
	assert.Equal(t, tuitionContent(t), c.contexts[0])

	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("scored", "matched")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CompletionTotal.WithLabelValues("zai", "success")), 0)
}

func TestAnswer_NoMatchSendsSentinel(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{answer: "일반 답변"}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "장학금 신청 방법", "")
	require.NoError(t, err)

	assert.Equal(t, "일반 답변", reply.Response)
	assert.False(t, reply.ContextUsed)
	assert.Equal(t, []string{knowledge.NotFoundContext}, c.contexts)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("scored", "no_match")), 0)
}

func TestAnswer_ProvidedContextUsedAsIs(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{answer: "ok"}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "등록금 언제 내나요", "호출자가 준 문맥")
	require.NoError(t, err)

	assert.True(t, reply.ContextUsed)
	assert.Equal(t, []string{"호출자가 준 문맥"}, c.contexts)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("scored", "provided")), 0)
}

func TestAnswer_WhitespaceProvidedContextIsKept(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{answer: "ok"}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "hello", "   ")
	require.NoError(t, err)
	assert.Equal(t, []string{"   "}, c.contexts)
	assert.True(t, reply.ContextUsed)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("scored", "provided")), 0)
}

func TestAnswer_RAGStrategy(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{answer: "ok"}
	svc, m := newTestService(t, c, matcher.StrategyRAG)

	reply, err := svc.Answer(context.Background(), "등록금 납부 기간은?", "")
	require.NoError(t, err)
	require.Len(t, c.contexts, 1)
	assert.True(t, strings.HasPrefix(c.contexts[0], "[등록금 납부] "+tuitionContent(t)), c.contexts[0])
	assert.True(t, reply.ContextUsed)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("rag", "matched")), 0)

	reply, err = svc.Answer(context.Background(), "xyz", "")
	require.NoError(t, err)
	assert.Equal(t, knowledge.NoRelevantContext, c.contexts[1])
	assert.False(t, reply.ContextUsed)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MatchTotal.WithLabelValues("rag", "no_match")), 0)
}

func TestAnswer_RemoteErrorFallsBackToContext(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{err: &genai.RemoteError{
		Provider:   genai.ProviderZAI,
		Model:      "glm-test",
		StatusCode: 500,
		Err:        errors.New("internal server error"),
	}}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "등록금 언제 내나요", "")
	require.NoError(t, err)

	assert.Equal(t, tuitionContent(t), reply.Response)
	assert.True(t, reply.ContextUsed)
	assert.Equal(t, 1, c.calls, "remote failures are not retried")
	assert.InDelta(t, 1, testutil.ToFloat64(m.FallbackTotal.WithLabelValues(genai.ReasonServerError)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CompletionTotal.WithLabelValues("zai", "fallback")), 0)
}

func TestAnswer_RemoteErrorWithoutMatchReturnsSentinel(t *testing.T) {
	t.Parallel()

	c := &fakeCompleter{err: &genai.RemoteError{
		Provider: genai.ProviderZAI,
		Err:      context.DeadlineExceeded,
	}}
	svc, m := newTestService(t, c, matcher.StrategyScored)

	reply, err := svc.Answer(context.Background(), "장학금 신청 방법", "")
	require.NoError(t, err)

	assert.Equal(t, knowledge.NotFoundContext, reply.Response)
	assert.True(t, reply.ContextUsed)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FallbackTotal.WithLabelValues(genai.ReasonTimeout)), 0)
}

func TestAnswer_UnexpectedErrorIsReturned(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := &fakeCompleter{err: boom}
	svc, _ := newTestService(t, c, matcher.StrategyScored)

	_, err := svc.Answer(context.Background(), "등록금 언제 내나요", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestResolveContext_Strategies(t *testing.T) {
	t.Parallel()

	entrance, ok := knowledge.Default().Get("entrance_ceremony")
	require.True(t, ok)
	orientation, ok := knowledge.Default().Get("orientation")
	require.True(t, ok)

	scored, _ := newTestService(t, &fakeCompleter{}, matcher.StrategyScored)
	simple, _ := newTestService(t, &fakeCompleter{}, matcher.StrategySimple)

	const query = "신입생오리엔테이션 입학"
	assert.Equal(t, orientation.Content, scored.ResolveContext(query, ""))
	assert.Equal(t, entrance.Content, simple.ResolveContext(query, ""))
}
