package assembly

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun/grant-agent/internal/types"
)

// brokenOffice returns an assembler whose office step can never run, forcing
// the chain past it.
func brokenOffice() *Assembler {
	a := NewAssembler()
	a.OfficeBinary = "no-such-office-binary"
	a.TemplateDir = "no-such-template-dir"
	return a
}

func assembleContents() []types.FieldContent {
	return []types.FieldContent{
		{FieldID: "company_name", Content: "테스트기업"},
		{FieldID: "project_goal", Content: "기술 고도화"},
	}
}

func TestAssemble_TXTTerminalStep(t *testing.T) {
	doc, err := brokenOffice().Assemble(context.Background(), &Request{
		ProgramName: "지원사업",
		Contents:    assembleContents(),
		Format:      FormatTXT,
	})

	require.NoError(t, err)
	assert.Equal(t, MethodPlainText, doc.Method)
	assert.Equal(t, "text/plain", doc.MIMEType)
	assert.True(t, strings.HasSuffix(doc.FileName, ".txt"))
	assert.NotEmpty(t, doc.Data, "some artifact must always be produced")
	assert.Contains(t, string(doc.Data), "테스트기업")
}

func TestAssemble_HTMLFallback(t *testing.T) {
	doc, err := brokenOffice().Assemble(context.Background(), &Request{
		ProgramName: "지원사업",
		Contents:    assembleContents(),
		Format:      FormatDOCX,
	})

	require.NoError(t, err)
	// DOCX needs the office suite; without it the chain degrades to HTML.
	assert.Equal(t, MethodHTMLRender, doc.Method)
	assert.Equal(t, "text/html", doc.MIMEType)
	assert.True(t, strings.HasSuffix(doc.FileName, ".html"))
}

func TestAssemble_HWPTemplateFill(t *testing.T) {
	dir := writeTestTemplate(t, "government", `<doc>{{.ProgramName}} {{index .Fields "company_name"}}</doc>`)

	a := brokenOffice()
	a.TemplateDir = dir

	doc, err := a.Assemble(context.Background(), &Request{
		OriginalFileName: "신청서.hwp",
		ProgramName:      "지원사업",
		Contents:         assembleContents(),
		Format:           FormatHWP,
	})

	require.NoError(t, err)
	assert.Equal(t, MethodHWPTemplate, doc.Method)
	assert.Equal(t, "application/haansofthwp", doc.MIMEType)
	assert.Contains(t, doc.FileName, "신청서_완성본_")
	assert.Contains(t, string(doc.Data), "테스트기업")
}

func TestAssemble_DefaultsTemplateAndFormat(t *testing.T) {
	req := &Request{ProgramName: "지원사업", Contents: assembleContents()}

	_, err := brokenOffice().Assemble(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, TemplateGovernment, req.Template)
	assert.Equal(t, FormatHWP, req.Format)
}

func TestAssemble_NoContents(t *testing.T) {
	_, err := NewAssembler().Assemble(context.Background(), &Request{ProgramName: "지원사업"})
	assert.Error(t, err)

	_, err = NewAssembler().Assemble(context.Background(), nil)
	assert.Error(t, err)
}

func TestOfficeOutputFormat(t *testing.T) {
	assert.Equal(t, Format("odt"), officeOutputFormat(FormatHWP))
	assert.Equal(t, FormatDOCX, officeOutputFormat(FormatDOCX))
	assert.Equal(t, FormatPDF, officeOutputFormat(FormatPDF))
}
