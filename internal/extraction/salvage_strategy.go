package extraction

import (
	"context"

	"github.com/daehyun/grant-agent/internal/salvage"
	"github.com/daehyun/grant-agent/internal/types"
)

const salvageConfidence = 0.5

// salvageWarning discloses to callers that a degraded path produced the text.
const salvageWarning = "기본 추출 방법을 사용했습니다. 정확도가 낮을 수 있습니다."

// SalvageStrategy is the terminal strategy in the chain: a heuristic scrape
// of printable runs out of the raw bytes. Always available, never expensive.
type SalvageStrategy struct{}

// NewSalvageStrategy returns a SalvageStrategy.
func NewSalvageStrategy() *SalvageStrategy { return &SalvageStrategy{} }

// Name implements Strategy.
func (s *SalvageStrategy) Name() string { return "binary-salvage" }

// Available implements Strategy; salvage has no external dependencies.
func (s *SalvageStrategy) Available() bool { return true }

// Expensive implements Strategy.
func (s *SalvageStrategy) Expensive() bool { return false }

// Extract implements Strategy.
func (s *SalvageStrategy) Extract(_ context.Context, src *Source) (*types.ExtractionResult, error) {
	return salvageSubFallback(src, nil)
}

// salvageSubFallback runs binary salvage on behalf of a failed strategy.
// cause, when set, is surfaced if salvage itself comes up short so the
// orchestrator reports the more informative error.
func salvageSubFallback(src *Source, cause error) (*types.ExtractionResult, error) {
	res := salvage.Salvage(src.Data)
	if !res.Success {
		if cause != nil {
			return nil, cause
		}
		return nil, &ToolError{Tool: "binary-salvage", Message: "no readable text found in document bytes"}
	}

	return &types.ExtractionResult{
		Success:    true,
		Method:     types.MethodBinarySalvage,
		Text:       res.Text,
		Confidence: salvageConfidence,
		Analysis:   salvage.Analyze(res.Text),
		Warning:    salvageWarning,
	}, nil
}
