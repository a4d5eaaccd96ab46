package genai

import (
	"strings"

	"github.com/garyellow/sookmyung-chatbot-go/internal/knowledge"
)

// GenericSystemPrompt is used when no knowledge context is available.
// It never contains table text.
const GenericSystemPrompt = "당신은 숙명여자대학교 신입생 안내 챗봇입니다. 친절하고 정확하게 답변해주세요."

// EmptyResponseMessage is returned as a successful answer when the provider
// replies with no text at all.
const EmptyResponseMessage = "죄송합니다. 응답을 받지 못했습니다. 잠시 후 다시 시도해주세요."

const contextPromptHeader = "당신은 숙명여자대학교 학생 도우미 챗봇입니다. 신입생 합격자 안내사항과 재학생 수강가이드 정보를 모두 제공합니다. 다음 지식 베이스를 기반으로 답변해주세요."

const contextPromptRules = `**중요 지침:**
1. 위 지식 베이스에 있는 정보만 정확하게 바탕으로 답변하세요
2. 지식 베이스에 없는 내용(특정 인물, 개인 정보 등)에 대해서는 솔직하게 "그 정보는 제가 가진 자료에 없습니다"라고 답변하세요
3. 숙명여대 신입생 및 재학생 관련 일반적인 질문에 대해서는 지식 베이스의 내용을 활용하여 친절하게 답변하세요
4. 한국어로, 친절하고 전문적인 어조로 답변하세요
5. 질문의 의도를 정확히 파악하여 관련 있는 정보만 제공하세요`

// SystemPrompt builds the system instruction for a completion.
// An informative context is embedded verbatim between the header and the
// answering rules; otherwise GenericSystemPrompt is returned.
func SystemPrompt(context string) string {
	if !knowledge.IsInformative(context) {
		return GenericSystemPrompt
	}

	var b strings.Builder
	b.Grow(len(contextPromptHeader) + len(context) + len(contextPromptRules) + 4)
	b.WriteString(contextPromptHeader)
	b.WriteString("\n\n")
	b.WriteString(context)
	b.WriteString("\n\n")
	b.WriteString(contextPromptRules)
	return b.String()
}
