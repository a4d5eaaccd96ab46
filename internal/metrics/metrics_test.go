package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m == nil {
		t.Fatal("New() returned nil")
	}

	if m.ChatRequestsTotal == nil {
		t.Error("ChatRequestsTotal is nil")
	}
	if m.MatchTotal == nil {
		t.Error("MatchTotal is nil")
	}
	if m.CompletionTotal == nil {
		t.Error("CompletionTotal is nil")
	}
	if m.FallbackTotal == nil {
		t.Error("FallbackTotal is nil")
	}
	if m.WebhookEventsTotal == nil {
		t.Error("WebhookEventsTotal is nil")
	}
	if m.KnowledgeEntries == nil {
		t.Error("KnowledgeEntries is nil")
	}
}

func TestNew_SeparateRegistries(t *testing.T) {
	// Registering twice on distinct registries must not panic
	_ = New(prometheus.NewRegistry())
	_ = New(prometheus.NewRegistry())
}

func TestRecordChat(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordChat("http", "ok", 0.8)
	m.RecordChat("http", "ok", 1.2)
	m.RecordChat("line", "fallback", 30)

	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ChatRequestsTotal.WithLabelValues("fallback")); got != 1 {
		t.Errorf("fallback count = %v, want 1", got)
	}
}

func TestRecordMatch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordMatch("scored", "matched")
	m.RecordMatch("scored", "no_match")
	m.RecordMatch("simple", "matched")

	if got := testutil.ToFloat64(m.MatchTotal.WithLabelValues("scored", "matched")); got != 1 {
		t.Errorf("scored/matched = %v, want 1", got)
	}
}

func TestRecordCompletionAndFallback(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCompletion("zai", "success", 1.1)
	m.RecordCompletion("zai", "timeout", 30)
	m.RecordFallback("timeout")

	if got := testutil.ToFloat64(m.CompletionTotal.WithLabelValues("zai", "timeout")); got != 1 {
		t.Errorf("zai/timeout = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FallbackTotal.WithLabelValues("timeout")); got != 1 {
		t.Errorf("fallback/timeout = %v, want 1", got)
	}
}

func TestRecordWebhook(t *testing.T) {
	m := New(prometheus.NewRegistry())

	// Should not panic
	m.RecordWebhook("message", "success", 0.5)
	m.RecordWebhook("follow", "ignored", 0.01)
}

func TestSetKnowledgeEntries(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetKnowledgeEntries(7)
	if got := testutil.ToFloat64(m.KnowledgeEntries); got != 7 {
		t.Errorf("KnowledgeEntries = %v, want 7", got)
	}
}
