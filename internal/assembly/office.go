package assembly

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/daehyun/grant-agent/internal/scratch"
)

// ToolError represents an office-suite subprocess failure
type ToolError struct {
	Tool    string
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Tool, e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// convertWithOffice builds a flat-ODF intermediate document and converts it
// to the target format with a headless LibreOffice run. Success requires the
// converted artifact on disk, not just exit code 0.
func (a *Assembler) convertWithOffice(ctx context.Context, req *Request, dir *scratch.Dir) ([]byte, error) {
	binary := a.OfficeBinary
	if binary == "" {
		binary = "libreoffice"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, &ToolError{Tool: binary, Message: "not installed", Cause: err}
	}

	sourcePath, err := dir.WriteFile("document.fodt", buildFlatODF(req))
	if err != nil {
		return nil, err
	}

	target := string(officeOutputFormat(req.Format))
	runCtx, cancel := context.WithTimeout(ctx, a.RenderTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary,
		"--headless", "--convert-to", target, "--outdir", dir.Path, sourcePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ToolError{Tool: binary, Message: strings.TrimSpace(stderr.String()), Cause: err}
	}

	outputPath := filepath.Join(dir.Path, "document."+target)
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, &ToolError{Tool: binary, Message: "converted file missing", Cause: err}
	}
	return data, nil
}

// buildFlatODF renders the application as a single-file ODF text document,
// the closest intermediate LibreOffice can author from scratch.
func buildFlatODF(req *Request) []byte {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<office:document xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"` +
		` xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"` +
		` office:mimetype="application/vnd.oasis.opendocument.text" office:version="1.2">` + "\n")
	sb.WriteString("  <office:body>\n    <office:text>\n")

	fmt.Fprintf(&sb, "      <text:h text:outline-level=\"1\">%s</text:h>\n", escapeXML(req.ProgramName))
	for _, sec := range groupSections(req.Contents) {
		fmt.Fprintf(&sb, "      <text:h text:outline-level=\"2\">%s</text:h>\n", escapeXML(sec.Title))
		for _, item := range sec.Items {
			fmt.Fprintf(&sb, "      <text:p>%s</text:p>\n", escapeXML(item.Content))
		}
	}

	sb.WriteString("    </office:text>\n  </office:body>\n</office:document>\n")
	return []byte(sb.String())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
