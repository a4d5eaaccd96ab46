// Package lineutil provides utility functions for building LINE messages and actions.
package lineutil

import (
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// QuickReplyItem represents an item in a quick reply.
type QuickReplyItem struct {
	ImageURL string
	Action   messaging_api.ActionInterface
}

// Action is an alias for the LINE SDK action interface for convenience.
type Action = messaging_api.ActionInterface

// TruncateRunes shortens text to at most maxRunes runes, ending with "..."
// when it was cut.
func TruncateRunes(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// NewTextMessage creates a text message within LINE's length limit.
func NewTextMessage(text string) *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text: TruncateRunes(text, MaxTextMessageLength),
	}
}

// NewMessageAction creates a message action that sends a message when clicked.
// Labels longer than LINE allows are truncated.
func NewMessageAction(label, text string) Action {
	return &messaging_api.MessageAction{
		Label: TruncateRunes(label, MaxQuickReplyLabel),
		Text:  text,
	}
}

// NewQuickReply creates a quick reply message component.
// LINE API limits: max 13 items
func NewQuickReply(items []QuickReplyItem) *messaging_api.QuickReply {
	if len(items) > MaxQuickReplyItemCount {
		items = items[:MaxQuickReplyItemCount]
	}

	quickReplyItems := make([]messaging_api.QuickReplyItem, len(items))
	for i, item := range items {
		quickReplyItems[i] = messaging_api.QuickReplyItem{
			Action:   item.Action,
			ImageUrl: item.ImageURL,
		}
	}

	return &messaging_api.QuickReply{
		Items: quickReplyItems,
	}
}

// NewTextMessageWithQuickReply creates a text message with quick reply items.
func NewTextMessageWithQuickReply(text string, items ...QuickReplyItem) *messaging_api.TextMessage {
	msg := NewTextMessage(text)
	if len(items) > 0 {
		msg.QuickReply = NewQuickReply(items)
	}
	return msg
}

// ================================================
// FAQ topic quick replies
// ================================================

// Topic is a suggested question shown as a quick reply button.
type Topic struct {
	Label    string
	Question string
}

// DefaultTopics are the admission FAQ topics offered to new users.
var DefaultTopics = []Topic{
	{Label: "💰 등록금", Question: "등록금 납부 기간은?"},
	{Label: "📝 영어배치고사", Question: "영어배치고사는 언제?"},
	{Label: "🩺 신체검사", Question: "신체검사 일정"},
	{Label: "🎓 입학식", Question: "입학식 일정"},
	{Label: "🧭 오리엔테이션", Question: "신입생 오리엔테이션 일정"},
	{Label: "🏠 기숙사", Question: "기숙사 입사 신청"},
	{Label: "🇬🇧 영어 이수면제", Question: "영어교양필수 이수면제 기준"},
}

// TopicQuickReplies converts topics into quick reply items.
func TopicQuickReplies(topics []Topic) []QuickReplyItem {
	items := make([]QuickReplyItem, 0, len(topics))
	for _, t := range topics {
		items = append(items, QuickReplyItem{Action: NewMessageAction(t.Label, t.Question)})
	}
	return items
}
