package extraction

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/scratch"
	"github.com/daehyun/grant-agent/internal/types"
)

const htmlRenderConfidence = 0.7

var htmlWhitespace = regexp.MustCompile(`[ \t]+`)

// HTMLStrategy converts the document to HTML with headless LibreOffice and
// scrapes the visible text back out. HTML conversion sometimes survives
// documents whose direct txt export comes out mangled, at the cost of layout
// noise, hence the lower confidence.
type HTMLStrategy struct {
	Binary  string
	Timeout time.Duration
}

// NewHTMLStrategy returns an HTMLStrategy with defaults.
func NewHTMLStrategy() *HTMLStrategy {
	return &HTMLStrategy{Binary: "libreoffice"}
}

// Name implements Strategy.
func (s *HTMLStrategy) Name() string { return "libreoffice-html" }

// Available reports whether LibreOffice is on PATH.
func (s *HTMLStrategy) Available() bool {
	_, err := exec.LookPath(s.binary())
	return err == nil
}

// Expensive implements Strategy.
func (s *HTMLStrategy) Expensive() bool { return false }

// Extract converts to HTML and extracts body text. No salvage sub-fallback
// here: earlier strategies already tried it and the orchestrator ends the
// chain with a dedicated salvage pass.
func (s *HTMLStrategy) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	dir, err := scratch.New("lo-html")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()

	inputPath, err := dir.WriteFile(src.Name, src.Data)
	if err != nil {
		return nil, err
	}

	_, stderr, err := runTool(ctx, s.Timeout, s.binary(),
		"--headless", "--convert-to", "html", "--outdir", dir.Path, inputPath)
	if err != nil {
		return nil, &ToolError{Tool: "libreoffice", Message: strings.TrimSpace(stderr), Cause: err}
	}

	outputPath := convertedPath(dir.Path, inputPath, "html")
	f, err := os.Open(outputPath)
	if err != nil {
		return nil, &ToolError{Tool: "libreoffice", Message: "converted HTML missing", Cause: err}
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, &ToolError{Tool: "libreoffice", Message: "converted HTML unparsable", Cause: err}
	}

	text := flattenHTMLText(doc)
	if text == "" {
		return nil, &ToolError{Tool: "libreoffice", Message: "converted HTML has no text"}
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodHTMLRender,
		Text:       text,
		Confidence: htmlRenderConfidence,
		Analysis:   salvage.Analyze(text),
	}, nil
}

func (s *HTMLStrategy) binary() string {
	if s.Binary != "" {
		return s.Binary
	}
	return "libreoffice"
}

// flattenHTMLText extracts block-level text, one block per line, with
// horizontal whitespace collapsed.
func flattenHTMLText(doc *goquery.Document) string {
	var blocks []string
	doc.Find("body p, body h1, body h2, body h3, body li, body td").Each(func(_ int, sel *goquery.Selection) {
		t := strings.TrimSpace(htmlWhitespace.ReplaceAllString(sel.Text(), " "))
		if t != "" {
			blocks = append(blocks, t)
		}
	})
	if len(blocks) == 0 {
		// Fall back to the whole body when the document has no block markup.
		t := strings.TrimSpace(htmlWhitespace.ReplaceAllString(doc.Find("body").Text(), " "))
		return t
	}
	return strings.Join(blocks, "\n")
}
