// Package guide renders the English liberal-arts exemption guides handed out
// alongside the chatbot. It is content only and plays no part in answering
// questions.
package guide

import (
	"bytes"
	"fmt"
	"io"
	"text/template"
)

// Score is a minimum score on an accepted certified English test.
type Score struct {
	Test    string
	Minimum string
}

// QA is one FAQ item.
type QA struct {
	Question string
	Answer   string
}

// Contact is the office handling exemption requests.
type Contact struct {
	Department string
	Phone      string
	Location   string
	Homepage   string
}

// Exemption holds the exemption criteria and application details.
type Exemption struct {
	Scores        []Score
	GELT          string
	Period        string
	Method        string
	Documents     string
	Notes         []string
	Contact       Contact
	FAQ           []QA
	AcademicYear  int
	SourceComment string
}

// Default is the 2026 exemption data.
var Default = Exemption{
	Scores: []Score{
		{Test: "TOEIC", Minimum: "850점"},
		{Test: "TOEFL iBT", Minimum: "89점"},
		{Test: "IELTS (A)", Minimum: "6.5점"},
		{Test: "TEPS", Minimum: "700점"},
	},
	GELT:      "GELT R, 1, 2, 3 레벨 중 한 개 이상 취득 시 이수 면제",
	Period:    "입학 후 1년 이내만 신청 가능 (2026년 3월, 9월만 가능)",
	Method:    "숙명여자대학교 홈페이지 > 공지 > 장학에서 신청 공지 확인",
	Documents: "해당 시험 성적표 (2년 이내 발급)",
	Notes: []string{
		"공인영어시험 성적표는 영문 성명과 일치해야 함",
		"성적표 제출 시 이수면제 신청서 함께 제출",
		"GELT 성적표도 이수면제 신청 가능",
	},
	Contact: Contact{
		Department: "순헌칼리지 교학팀",
		Phone:      "02-2077-7511",
		Location:   "행정관 201호",
		Homepage:   "sunheon.sookmyung.ac.kr",
	},
	FAQ: []QA{
		{Question: "TOEIC 845점은 가능한가요?", Answer: "850점 이상이 필요하므로 845점은 불가능합니다."},
		{Question: "2년 전 성적표는 가능한가요?", Answer: "2년 이내 발급된 성적표만 인정됩니다."},
		{Question: "IELTS General은 가능한가요?", Answer: "IELTS Academic(A) 기준만 인정됩니다."},
	},
	AcademicYear:  2026,
	SourceComment: "PDF에 포함된 기준 외에 추가적인 기준 정보가 필요하신 경우 아래 내용을 참고해주세요.",
}

const infoTemplate = `# 영어 교양필수 이수면제 구체 기준

## 공인영어시험 성적 기준
{{- range .Scores}}
- **{{.Test}}**: {{.Minimum}} 이상
{{- end}}

## 숙명여대 GELT 대체 기준
- {{.GELT}}

## 신청 방법
- **기간**: {{.Period}}
- **방법**: {{.Method}}
- **제출서류**: {{.Documents}}

## 참고사항
{{- range .Notes}}
- {{.}}
{{- end}}

## 문의처
- **담당부서**: {{.Contact.Department}}
- **전화번호**: {{.Contact.Phone}}
- **위치**: {{.Contact.Location}}
- **홈페이지**: {{.Contact.Homepage}}
`

const detailedTemplate = `# {{.AcademicYear}}학년도 신입생 영어 교양필수 이수면제 상세 안내

## 기본 정보
{{.SourceComment}}

## 상세 기준
{{template "info" .}}
## 자주 묻는 질문
{{- range .FAQ}}
Q: {{.Question}}
A: {{.Answer}}
{{end -}}
`

var templates = template.Must(
	template.Must(template.New("info").Parse(infoTemplate)).
		New("detailed").Parse(detailedTemplate))

// RenderInfo writes the exemption criteria for e.
func RenderInfo(w io.Writer, e Exemption) error {
	if err := templates.ExecuteTemplate(w, "info", e); err != nil {
		return fmt.Errorf("guide: render info: %w", err)
	}
	return nil
}

// RenderDetailed writes the full guide for e: criteria followed by the FAQ.
func RenderDetailed(w io.Writer, e Exemption) error {
	if err := templates.ExecuteTemplate(w, "detailed", e); err != nil {
		return fmt.Errorf("guide: render detailed guide: %w", err)
	}
	return nil
}

// AdditionalEnglishExemptionInfo is the criteria section rendered from Default.
var AdditionalEnglishExemptionInfo = mustRender(RenderInfo)

// DetailedGuide returns the full guide rendered from Default.
func DetailedGuide() string {
	return mustRender(RenderDetailed)
}

func mustRender(render func(io.Writer, Exemption) error) string {
	var buf bytes.Buffer
	if err := render(&buf, Default); err != nil {
		panic(err)
	}
	return buf.String()
}
