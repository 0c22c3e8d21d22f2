package extraction

import (
	"context"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/scratch"
	"github.com/daehyun/grant-agent/internal/types"
)

// hwp5Confidence reflects a structured parse of the document's record
// streams, the most faithful extraction available.
const hwp5Confidence = 0.9

// HWP5Strategy extracts text with the hwp5txt command-line tool from the
// pyhwp toolchain. It is the cheapest and most reliable converter, so it
// runs first in the chain.
type HWP5Strategy struct {
	// Binary is the tool name or path; defaults to "hwp5txt".
	Binary string
	// Timeout bounds the subprocess; zero means the package default.
	Timeout time.Duration
}

// NewHWP5Strategy returns an HWP5Strategy with defaults.
func NewHWP5Strategy() *HWP5Strategy {
	return &HWP5Strategy{Binary: "hwp5txt"}
}

// Name implements Strategy.
func (s *HWP5Strategy) Name() string { return "hwp5txt" }

// Available reports whether the tool is on PATH.
func (s *HWP5Strategy) Available() bool {
	_, err := exec.LookPath(s.binary())
	return err == nil
}

// Expensive implements Strategy; local subprocesses are cheap.
func (s *HWP5Strategy) Expensive() bool { return false }

// Extract writes the source to a scratch file and runs the tool against it.
// Tool crashes and empty output degrade to binary salvage instead of failing
// the strategy outright.
func (s *HWP5Strategy) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	dir, err := scratch.New("hwp5")
	if err != nil {
		return nil, err
	}
	defer dir.Cleanup()

	inputPath, err := dir.WriteFile(src.Name, src.Data)
	if err != nil {
		return nil, err
	}

	stdout, stderr, err := runTool(ctx, s.Timeout, s.binary(), inputPath)
	if err != nil {
		log.Printf("[EXTRACT] hwp5txt failed (%v), trying binary salvage", err)
		return salvageSubFallback(src, &ToolError{Tool: "hwp5txt", Message: strings.TrimSpace(stderr), Cause: err})
	}

	text := strings.TrimSpace(stdout)
	if text == "" {
		return salvageSubFallback(src, &ToolError{Tool: "hwp5txt", Message: "produced empty output"})
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodTemplate,
		Text:       text,
		Confidence: hwp5Confidence,
		Analysis:   salvage.Analyze(text),
	}, nil
}

func (s *HWP5Strategy) binary() string {
	if s.Binary != "" {
		return s.Binary
	}
	return "hwp5txt"
}
