package service

import (
	"fmt"
	"strings"

	"jurisnote/models"
)

var keyDescriptions = map[string]string{
	models.KeyCategories: "1단계>2단계>3단계 | 1단계>2단계>3단계",
	models.KeyTitle:      "사건명",
	models.KeyDate:       "YYYY-MM-DD",
	models.KeyCaseNo:     "사건번호 (예: 2023다12345)",
	models.KeyFacts:      "사실관계 요약",
	models.KeyIssues:     "법적 쟁점 (다수일 경우 번호 부여)",
	models.KeyLaws:       "직접 관련된 관련 법률 조문",
	models.KeyHoldings:   "판결 요지",
	models.KeySummary:    "판례 요지 요약",
	models.KeyInsight:    "실무적 의의 및 주의사항",
}

// BuildPrompt composes the extraction instruction for one case. The case text
// is appended verbatim.
func BuildPrompt(layout models.Layout, taxonomy models.Taxonomy, caseText string) string {
	var b strings.Builder

	b.WriteString("당신은 대한민국 대법원 판례 분석 전문가입니다. 판례를 분석하여 반드시 아래 JSON 형식으로만 답하세요.\n")
	b.WriteString("모든 값은 문자열이어야 하며, 쟁점이 여러 개인 경우 각 항목 내에서 '1. ..., 2. ...' 형태로 번호를 매겨 서술하세요.\n\n")

	b.WriteString("[JSON 구조]\n{\n")
	for i, key := range layout.ExtractionKeys {
		fmt.Fprintf(&b, "    %q: %q", key, keyDescriptions[key])
		if i < len(layout.ExtractionKeys)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("[분류 규칙]\n")
	if layout.IncludeTaxonomy {
		b.WriteString("- 1단계와 2단계는 아래 분류표에서 선택하세요.\n")
		b.WriteString("- 3단계는 판례의 핵심 쟁점을 나타내는 짧은 명칭으로 직접 정하세요.\n")
	} else {
		b.WriteString("- 분류는 1단계>2단계>3단계 형식으로 작성하세요.\n")
	}
	b.WriteString("- 여러 분야에 걸치는 경우 분류 경로를 '|'로 연결하세요.\n")
	fmt.Fprintf(&b, "- 적합한 분류가 없으면 '%s>%s'로 분류하세요.\n", models.FallbackCategory, models.FallbackCategory)

	if layout.IncludeTaxonomy {
		b.WriteString("\n[분류표]\n")
		b.WriteString(SerializeTaxonomy(taxonomy))
	}

	b.WriteString("\n판례 내용: ")
	b.WriteString(caseText)
	b.WriteString("\n")
	return b.String()
}

// SerializeTaxonomy renders the taxonomy as one "- 대분류: 소분류, ..." line per category.
func SerializeTaxonomy(taxonomy models.Taxonomy) string {
	var b strings.Builder
	for _, e := range taxonomy.Entries() {
		fmt.Fprintf(&b, "- %s: %s\n", e.Category, strings.Join(e.Subcategories, ", "))
	}
	return b.String()
}
