package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daehyun/grant-agent/internal/types"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name  string
		field types.FieldSpec
		want  FieldKey
	}{
		{"exact id", types.FieldSpec{ID: "company_name", Label: "아무거나"}, KeyCompanyName},
		{"id suffix", types.FieldSpec{ID: "form1_company_name", Label: "아무거나"}, KeyCompanyName},
		{"ceo suffix", types.FieldSpec{ID: "company_ceo_name", Label: "아무거나"}, KeyCEOName},
		{"korean label", types.FieldSpec{ID: "field_17", Label: "핵심기술"}, KeyCoreTech},
		{"label with spaces", types.FieldSpec{ID: "field_18", Label: " 주요제품 "}, KeyMainProducts},
		{"unknown", types.FieldSpec{ID: "field_99", Label: "첨부서류"}, KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveKey(tt.field))
		})
	}
}

func TestFallbackContent_UsesCompanyInfo(t *testing.T) {
	g := NewGenerator(nil)
	company := &types.CompanyInfo{
		CompanyName:      "테스트기업",
		CEOName:          "홍길동",
		Industry:         "소프트웨어",
		MainProducts:     "자동화 솔루션",
		CoreTechnologies: "자연어 처리",
	}

	content := g.fallbackContent(types.FieldSpec{ID: "company_name", Label: "회사명"}, company)
	assert.Equal(t, "테스트기업", content.Content)
	assert.Equal(t, 0.3, content.Confidence)

	content = g.fallbackContent(types.FieldSpec{ID: "x_ceo_name", Label: "대표자명"}, company)
	assert.Equal(t, "홍길동", content.Content)

	content = g.fallbackContent(types.FieldSpec{ID: "project_goal", Label: "사업목적"}, company)
	assert.Contains(t, content.Content, "테스트기업")
	assert.Contains(t, content.Content, "소프트웨어")

	content = g.fallbackContent(types.FieldSpec{ID: "q_core_tech", Label: "핵심기술"}, company)
	assert.Equal(t, "자연어 처리", content.Content)
}

func TestFallbackContent_PlaceholdersWhenInfoMissing(t *testing.T) {
	g := NewGenerator(nil)
	company := &types.CompanyInfo{CompanyName: "테스트기업"}

	content := g.fallbackContent(types.FieldSpec{ID: "a_ceo_name", Label: "대표자명"}, company)
	assert.Equal(t, "[대표자명을 입력하세요]", content.Content)

	content = g.fallbackContent(types.FieldSpec{ID: "unknown_field", Label: "추진체계"}, company)
	assert.Equal(t, "[추진체계에 대한 내용을 입력하세요]", content.Content)
}

func TestFallbackContent_ProjectNameComposesLabel(t *testing.T) {
	g := NewGenerator(nil)
	company := &types.CompanyInfo{CompanyName: "테스트기업"}

	content := g.fallbackContent(types.FieldSpec{ID: "project_name", Label: "사업명"}, company)

	assert.Equal(t, "테스트기업 사업명", content.Content)
}
