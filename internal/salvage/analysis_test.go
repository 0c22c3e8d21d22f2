package salvage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_KoreanDocument(t *testing.T) {
	text := "사업 개요\n본 사업은 중소기업 기술개발을 지원합니다.\n\n" +
		"지원 내용\n최대 오천만원까지 지원됩니다.\n\n" +
		"신청 방법\n온라인으로 접수하시기 바랍니다."

	analysis := Analyze(text)
	require.NotNil(t, analysis)

	assert.Equal(t, 6, analysis.TotalLines)
	assert.Equal(t, 3, analysis.Paragraphs)
	assert.Equal(t, 1, analysis.EstimatedSections)
	assert.True(t, analysis.HasValidContent)
	assert.Greater(t, analysis.HangulRatio, 50.0)
}

func TestAnalyze_GarbageText(t *testing.T) {
	text := strings.Repeat("x1 y2 z3 ", 30)

	analysis := Analyze(text)

	assert.False(t, analysis.HasValidContent)
	assert.Equal(t, 0.0, analysis.HangulRatio)
}

func TestAnalyze_Empty(t *testing.T) {
	analysis := Analyze("")

	assert.Equal(t, 0, analysis.TotalLines)
	assert.Equal(t, 0, analysis.Paragraphs)
	assert.Equal(t, 0, analysis.WordCount)
	assert.Equal(t, 0.0, analysis.HangulRatio)
	assert.False(t, analysis.HasValidContent)
}

func TestHangulRatio_Rounding(t *testing.T) {
	// 1 Hangul rune out of 3 total runes is 33.33 percent.
	assert.Equal(t, 33.33, hangulRatio("가ab"))
}

func TestHangulRatio_MixedContent(t *testing.T) {
	// Exactly half the runes are Hangul.
	assert.Equal(t, 50.0, hangulRatio("가나ab"))
}
