package assembly

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daehyun/grant-agent/internal/types"
)

func TestBuildPlainText(t *testing.T) {
	req := &Request{
		ProgramName: "창업성장기술개발사업",
		Contents: []types.FieldContent{
			{FieldID: "company_name", Content: "테스트기업"},
			{FieldID: "plan_strategy", Content: "단계별 추진"},
		},
	}
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	text := string(buildPlainText(req, now))

	assert.True(t, strings.HasPrefix(text, "창업성장기술개발사업\n"))
	assert.Contains(t, text, "1. 기업 정보")
	assert.Contains(t, text, "7. 추진 계획")
	assert.Contains(t, text, "▪ 테스트기업")
	assert.Contains(t, text, "▪ 단계별 추진")
	assert.Contains(t, text, "작성일: 2026. 8. 28.")
}

func TestBuildPlainText_UnderlineMatchesTitleRunes(t *testing.T) {
	req := &Request{
		ProgramName: "지원사업",
		Contents:    []types.FieldContent{{FieldID: "company_name", Content: "내용"}},
	}

	lines := strings.Split(string(buildPlainText(req, time.Now())), "\n")

	assert.Equal(t, "지원사업", lines[0])
	assert.Equal(t, "====", lines[1], "underline counts runes, not bytes")
}

func TestHeaderWidth(t *testing.T) {
	assert.Equal(t, 4, headerWidth("지원사업"))
	assert.Equal(t, 3, headerWidth("abc"))
	assert.Equal(t, 1, headerWidth(""))
}
