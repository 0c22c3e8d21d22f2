package assembly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun/grant-agent/internal/types"
)

func TestBuildHTML(t *testing.T) {
	a := NewAssembler()
	req := &Request{
		ProgramName: "창업성장기술개발사업",
		Contents: []types.FieldContent{
			{FieldID: "company_name", Content: "테스트기업"},
			{FieldID: "technology_core_tech", Content: "자연어 처리"},
		},
	}

	out, err := a.buildHTML(req)
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>창업성장기술개발사업</title>")
	assert.Contains(t, html, "1. 기업 정보")
	assert.Contains(t, html, "4. 기술 내용")
	assert.Contains(t, html, "테스트기업")
	assert.Contains(t, html, "작성일:")
}

func TestBuildHTML_EscapesContent(t *testing.T) {
	a := NewAssembler()
	req := &Request{
		ProgramName: "지원사업",
		Contents: []types.FieldContent{
			{FieldID: "company_name", Content: `<script>alert("x")</script>`},
		},
	}

	out, err := a.buildHTML(req)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>alert")
}

func TestBuildFlatODF(t *testing.T) {
	req := &Request{
		ProgramName: "지원사업",
		Contents: []types.FieldContent{
			{FieldID: "company_name", Content: "A&B <기업>"},
		},
	}

	out := string(buildFlatODF(req))

	assert.Contains(t, out, `office:mimetype="application/vnd.oasis.opendocument.text"`)
	assert.Contains(t, out, `<text:h text:outline-level="1">지원사업</text:h>`)
	assert.Contains(t, out, "A&amp;B &lt;기업&gt;")
	assert.NotContains(t, out, "<기업>")
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a&amp;b", escapeXML("a&b"))
	assert.Equal(t, "&lt;p&gt;", escapeXML("<p>"))
	assert.Equal(t, "한글", escapeXML("한글"))
}
