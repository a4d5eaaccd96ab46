package guide

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdditionalEnglishExemptionInfo(t *testing.T) {
	t.Parallel()

	info := AdditionalEnglishExemptionInfo
	assert.True(t, strings.HasPrefix(info, "# 영어 교양필수 이수면제 구체 기준\n"))
	for _, want := range []string{
		"- **TOEIC**: 850점 이상",
		"- **TOEFL iBT**: 89점 이상",
		"- **IELTS (A)**: 6.5점 이상",
		"- **TEPS**: 700점 이상",
		"- **기간**: 입학 후 1년 이내만 신청 가능",
		"- **전화번호**: 02-2077-7511",
		"- GELT 성적표도 이수면제 신청 가능",
	} {
		assert.Contains(t, info, want)
	}
	assert.NotContains(t, info, "자주 묻는 질문")
}

func TestDetailedGuide(t *testing.T) {
	t.Parallel()

	g := DetailedGuide()
	assert.True(t, strings.HasPrefix(g, "# 2026학년도 신입생 영어 교양필수 이수면제 상세 안내\n"))
	assert.Contains(t, g, AdditionalEnglishExemptionInfo)
	assert.Contains(t, g, "Q: TOEIC 845점은 가능한가요?\nA: 850점 이상이 필요하므로 845점은 불가능합니다.\n")
	assert.Contains(t, g, "Q: IELTS General은 가능한가요?\nA: IELTS Academic(A) 기준만 인정됩니다.\n")

	// Criteria come before the FAQ.
	assert.Less(t, strings.Index(g, "## 상세 기준"), strings.Index(g, "## 자주 묻는 질문"))
}

func TestRenderDetailed_CustomData(t *testing.T) {
	t.Parallel()

	e := Default
	e.AcademicYear = 2027
	e.FAQ = []QA{{Question: "질문?", Answer: "답변."}}

	var buf bytes.Buffer
	require.NoError(t, RenderDetailed(&buf, e))
	out := buf.String()
	assert.Contains(t, out, "# 2027학년도")
	assert.Contains(t, out, "Q: 질문?\nA: 답변.\n")
	assert.NotContains(t, out, "TOEIC 845점")
}
