package extraction

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/scratch"
	"github.com/daehyun/grant-agent/internal/types"
)

const officeConfidence = 0.8

// OfficeStrategy converts the document to plain text with a headless
// LibreOffice run. Exit code 0 alone is not trusted; the converted artifact
// must exist on disk.
type OfficeStrategy struct {
	// Binary is the office suite launcher; defaults to "libreoffice".
	Binary string
	// Timeout bounds the subprocess; zero means the package default.
	Timeout time.Duration
}

// NewOfficeStrategy returns an OfficeStrategy with defaults.
func NewOfficeStrategy() *OfficeStrategy {
	return &OfficeStrategy{Binary: "libreoffice"}
}

// Name implements Strategy.
func (s *OfficeStrategy) Name() string { return "libreoffice" }

// Available reports whether LibreOffice is on PATH.
func (s *OfficeStrategy) Available() bool {
	_, err := exec.LookPath(s.binary())
	return err == nil
}

// Expensive implements Strategy.
func (s *OfficeStrategy) Expensive() bool { return false }

// Extract converts the source to txt in a scratch directory. Conversion
// failure or a missing artifact degrades to binary salvage.
func (s *OfficeStrategy) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	dir, err := scratch.New("libreoffice")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()

	inputPath, err := dir.WriteFile(src.Name, src.Data)
	if err != nil {
		return nil, err
	}

	_, stderr, err := runTool(ctx, s.Timeout, s.binary(),
		"--headless", "--convert-to", "txt", "--outdir", dir.Path, inputPath)
	if err != nil {
		log.Printf("[EXTRACT] libreoffice conversion failed (%v), trying binary salvage", err)
		return salvageSubFallback(src, &ToolError{Tool: "libreoffice", Message: strings.TrimSpace(stderr), Cause: err})
	}

	outputPath := convertedPath(dir.Path, inputPath, "txt")
	data, err := os.ReadFile(outputPath)
	if err != nil {
		// Exit 0 without the artifact still counts as a tool failure.
		return salvageSubFallback(src, &ToolError{Tool: "libreoffice", Message: "converted file missing", Cause: err})
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return salvageSubFallback(src, &ToolError{Tool: "libreoffice", Message: "converted file is empty"})
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodOfficeSuite,
		Text:       text,
		Confidence: officeConfidence,
		Analysis:   salvage.Analyze(text),
	}, nil
}

func (s *OfficeStrategy) binary() string {
	if s.Binary != "" {
		return s.Binary
	}
	return "libreoffice"
}

// convertedPath returns where LibreOffice places a converted artifact: the
// input base name with the target extension, inside the outdir.
func convertedPath(outDir, inputPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outDir, base+"."+ext)
}
