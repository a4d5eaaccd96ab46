package lineutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxRunes int
		want     string
	}{
		{"short", "안녕하세요", 10, "안녕하세요"},
		{"exact", "안녕하세요", 5, "안녕하세요"},
		{"truncated", "등록금 납부 기간", 6, "등록금..."},
		{"tiny limit", "등록금 납부", 2, "등록"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.text, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.text, tt.maxRunes, got, tt.want)
			}
		})
	}
}

func TestNewTextMessage(t *testing.T) {
	msg := NewTextMessage("안녕하세요")
	if msg.Text != "안녕하세요" {
		t.Errorf("Text = %q", msg.Text)
	}
	if msg.QuickReply != nil {
		t.Error("QuickReply should be nil")
	}

	long := NewTextMessage(strings.Repeat("가", MaxTextMessageLength+1))
	if n := utf8.RuneCountInString(long.Text); n != MaxTextMessageLength {
		t.Errorf("rune count = %d, want %d", n, MaxTextMessageLength)
	}
	if !strings.HasSuffix(long.Text, "...") {
		t.Error("truncated text should end with ...")
	}
}

func TestNewQuickReply_Limit(t *testing.T) {
	items := make([]QuickReplyItem, MaxQuickReplyItemCount+3)
	for i := range items {
		items[i] = QuickReplyItem{Action: NewMessageAction("label", "text")}
	}

	qr := NewQuickReply(items)
	if len(qr.Items) != MaxQuickReplyItemCount {
		t.Errorf("items = %d, want %d", len(qr.Items), MaxQuickReplyItemCount)
	}
}

func TestNewMessageAction_TruncatesLabel(t *testing.T) {
	action, ok := NewMessageAction(strings.Repeat("가", 30), "질문").(*messaging_api.MessageAction)
	if !ok {
		t.Fatal("expected *messaging_api.MessageAction")
	}
	if n := utf8.RuneCountInString(action.Label); n != MaxQuickReplyLabel {
		t.Errorf("label runes = %d, want %d", n, MaxQuickReplyLabel)
	}
	if action.Text != "질문" {
		t.Errorf("Text = %q", action.Text)
	}
}

func TestTopicQuickReplies(t *testing.T) {
	msg := NewTextMessageWithQuickReply("무엇이든 물어보세요", TopicQuickReplies(DefaultTopics)...)
	if msg.QuickReply == nil {
		t.Fatal("QuickReply should be set")
	}
	if len(msg.QuickReply.Items) != len(DefaultTopics) {
		t.Fatalf("items = %d, want %d", len(msg.QuickReply.Items), len(DefaultTopics))
	}

	for i, item := range msg.QuickReply.Items {
		action, ok := item.Action.(*messaging_api.MessageAction)
		if !ok {
			t.Fatalf("item %d: unexpected action %T", i, item.Action)
		}
		if action.Text != DefaultTopics[i].Question {
			t.Errorf("item %d text = %q, want %q", i, action.Text, DefaultTopics[i].Question)
		}
		if utf8.RuneCountInString(action.Label) > MaxQuickReplyLabel {
			t.Errorf("item %d label too long: %q", i, action.Label)
		}
	}
}
