// Package assembly renders generated field content into a downloadable
// application document through an ordered fallback chain: HWP template fill,
// LibreOffice conversion, HTML (optionally printed to PDF), and finally a
// deterministic plain-text build that cannot fail.
package assembly

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/daehyun/grant-agent/internal/scratch"
	"github.com/daehyun/grant-agent/internal/types"
)

// Format is the requested output document format.
type Format string

// Supported output formats.
const (
	FormatHWP  Format = "hwp"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatTXT  Format = "txt"
)

// TemplateKind selects which pre-built application form to fill.
type TemplateKind string

// Supported template kinds.
const (
	TemplateGovernment TemplateKind = "government"
	TemplateBusiness   TemplateKind = "business"
	TemplateResearch   TemplateKind = "research"
)

// Assembly methods, for diagnostics.
const (
	MethodHWPTemplate = "hwp-template"
	MethodOfficeSuite = "libreoffice"
	MethodHTMLRender  = "html-conversion"
	MethodPlainText   = "basic-text"
)

// Request describes one document assembly call.
type Request struct {
	OriginalFileName string
	ProgramName      string
	Contents         []types.FieldContent
	Template         TemplateKind
	Format           Format
}

// Document is the assembled output. Data is never empty: the plain-text
// terminal step guarantees some artifact exists.
type Document struct {
	Data     []byte
	FileName string
	MIMEType string
	Method   string
}

// Assembler runs the generation-side fallback chain.
type Assembler struct {
	// TemplateDir holds the pre-built HWP form templates; defaults to
	// "templates/hwp".
	TemplateDir string
	// OfficeBinary is the office suite launcher; defaults to "libreoffice".
	OfficeBinary string
	// RenderTimeout bounds subprocess and browser renders.
	RenderTimeout time.Duration
}

// NewAssembler returns an Assembler with defaults.
func NewAssembler() *Assembler {
	return &Assembler{
		TemplateDir:   "templates/hwp",
		OfficeBinary:  "libreoffice",
		RenderTimeout: 60 * time.Second,
	}
}

// Assemble produces a document for the request, falling through the chain
// until a step succeeds. Only an invalid request errors; chain exhaustion is
// impossible because the plain-text step is pure string building.
func (a *Assembler) Assemble(ctx context.Context, req *Request) (*Document, error) {
	if req == nil || len(req.Contents) == 0 {
		return nil, fmt.Errorf("no field contents provided")
	}
	if req.Template == "" {
		req.Template = TemplateGovernment
	}
	if req.Format == "" {
		req.Format = FormatHWP
	}

	log.Printf("[ASSEMBLE] starting: program=%s fields=%d format=%s",
		req.ProgramName, len(req.Contents), req.Format)

	dir, err := scratch.New("assembly")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()

	type step struct {
		method   string
		produced Format
		run      func() ([]byte, error)
	}

	steps := []step{}
	if req.Format == FormatHWP {
		steps = append(steps, step{MethodHWPTemplate, FormatHWP, func() ([]byte, error) {
			return a.fillTemplate(req)
		}})
	}
	steps = append(steps, step{MethodOfficeSuite, officeOutputFormat(req.Format), func() ([]byte, error) {
		return a.convertWithOffice(ctx, req, dir)
	}})
	if req.Format == FormatPDF {
		steps = append(steps, step{MethodHTMLRender, FormatPDF, func() ([]byte, error) {
			return a.renderPDF(ctx, req, dir)
		}})
	}
	if req.Format != FormatTXT {
		steps = append(steps, step{MethodHTMLRender, FormatHTML, func() ([]byte, error) {
			return a.buildHTML(req)
		}})
	}

	for _, s := range steps {
		data, err := s.run()
		if err != nil {
			log.Printf("[ASSEMBLE] %s failed: %v", s.method, err)
			continue
		}
		if len(data) == 0 {
			log.Printf("[ASSEMBLE] %s produced empty output", s.method)
			continue
		}
		log.Printf("[ASSEMBLE] done via %s", s.method)
		return a.document(req, data, s.produced, s.method), nil
	}

	// Terminal step: deterministic plain text, pure string building.
	data := buildPlainText(req, time.Now())
	log.Printf("[ASSEMBLE] done via %s", MethodPlainText)
	return a.document(req, data, FormatTXT, MethodPlainText), nil
}

func (a *Assembler) document(req *Request, data []byte, produced Format, method string) *Document {
	return &Document{
		Data:     data,
		FileName: outputFileName(req.OriginalFileName, req.ProgramName, produced, time.Now()),
		MIMEType: mimeType(produced),
		Method:   method,
	}
}

// officeOutputFormat maps the requested format to what LibreOffice actually
// emits. Direct HWP authoring is not supported by any available tool, so HWP
// requests degrade to ODT at this step.
func officeOutputFormat(requested Format) Format {
	if requested == FormatHWP {
		return Format("odt")
	}
	return requested
}
