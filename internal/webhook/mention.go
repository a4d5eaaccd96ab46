package webhook

import (
	"slices"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// questionFromMessage extracts the question from a message event.
//
// Only text messages are answered. In a group or room the bot must be
// @mentioned; the mention itself is stripped from the question.
func questionFromMessage(e webhook.MessageEvent) (string, bool) {
	textMsg, ok := e.Message.(webhook.TextMessageContent)
	if !ok {
		return "", false
	}

	text := textMsg.Text
	if !isPersonalChat(e.Source) {
		if !isBotMentioned(textMsg) {
			return "", false
		}
		text = removeBotMentions(text, textMsg.Mention)
	}

	text = strings.TrimSpace(text)
	return text, text != ""
}

func isPersonalChat(source webhook.SourceInterface) bool {
	_, ok := source.(webhook.UserSource)
	return ok
}

// isBotMentioned reports whether any mentionee is the bot itself.
func isBotMentioned(textMsg webhook.TextMessageContent) bool {
	if textMsg.Mention == nil {
		return false
	}
	for _, mentionee := range textMsg.Mention.Mentionees {
		if um, ok := mentionee.(webhook.UserMentionee); ok && um.IsSelf {
			return true
		}
	}
	return false
}

type mentionSpan struct {
	index  int
	length int
}

// removeBotMentions cuts every self mention out of text and collapses the
// remaining whitespace. LINE reports mention positions in runes.
func removeBotMentions(text string, mention *webhook.Mention) string {
	if mention == nil {
		return text
	}

	var spans []mentionSpan
	for _, mentionee := range mention.Mentionees {
		if um, ok := mentionee.(webhook.UserMentionee); ok && um.IsSelf {
			spans = append(spans, mentionSpan{index: int(um.Index), length: int(um.Length)})
		}
	}
	if len(spans) == 0 {
		return text
	}

	// Back to front so earlier indexes stay valid.
	slices.SortFunc(spans, func(a, b mentionSpan) int { return b.index - a.index })

	runes := []rune(text)
	for _, s := range spans {
		start := max(s.index, 0)
		end := min(s.index+s.length, len(runes))
		if start >= end {
			continue
		}
		runes = append(runes[:start], runes[end:]...)
	}

	return strings.Join(strings.Fields(string(runes)), " ")
}
