package extraction

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/daehyun/grant-agent/internal/types"
)

// LargeFileThreshold is the input size above which expensive (online)
// strategies are skipped. A cost/latency guard, not a correctness rule.
const LargeFileThreshold = 5 * 1024 * 1024

// Orchestrator runs extraction strategies in a fixed priority order and
// returns the first success. Cheapest and most reliable strategies run
// first; the order determines which method "wins" for a given document,
// so it must stay stable across calls.
type Orchestrator struct {
	strategies []Strategy
}

// ChainConfig overrides tool locations and service credentials for the
// default chain. Zero values keep the package defaults (PATH lookup and
// environment variables).
type ChainConfig struct {
	HWP5Binary      string
	OfficeBinary    string
	CloudConvertKey string
	ConvertioKey    string
}

// NewOrchestrator builds the default chain: local tools first (structured
// parse, office txt, office html), then the online services, then salvage.
func NewOrchestrator() *Orchestrator {
	return NewConfiguredOrchestrator(ChainConfig{})
}

// NewConfiguredOrchestrator builds the default chain with the given
// overrides applied to each strategy.
func NewConfiguredOrchestrator(cfg ChainConfig) *Orchestrator {
	hwp5 := NewHWP5Strategy()
	if cfg.HWP5Binary != "" {
		hwp5.Binary = cfg.HWP5Binary
	}

	office := NewOfficeStrategy()
	html := NewHTMLStrategy()
	if cfg.OfficeBinary != "" {
		office.Binary = cfg.OfficeBinary
		html.Binary = cfg.OfficeBinary
	}

	cloudConvert := NewCloudConvertStrategy()
	if cfg.CloudConvertKey != "" {
		cloudConvert.APIKey = cfg.CloudConvertKey
	}

	convertio := NewConvertioStrategy()
	if cfg.ConvertioKey != "" {
		convertio.APIKey = cfg.ConvertioKey
	}

	return NewOrchestratorWith(hwp5, office, html, cloudConvert, convertio, NewSalvageStrategy())
}

// NewOrchestratorWith builds an orchestrator over an explicit chain, in the
// given priority order.
func NewOrchestratorWith(strategies ...Strategy) *Orchestrator {
	return &Orchestrator{strategies: strategies}
}

// Extract produces exactly one ExtractionResult for the source. Exhausting
// every strategy is a normal, representable outcome (Success=false), never
// an error; the error return is reserved for invalid input.
func (o *Orchestrator) Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error) {
	if src == nil || len(src.Data) == 0 {
		return nil, fmt.Errorf("no document content provided")
	}

	large := len(src.Data) > LargeFileThreshold
	var failures []string

	for _, strategy := range o.strategies {
		if !strategy.Available() {
			// Unavailable is a skip, not an error.
			continue
		}
		if large && strategy.Expensive() {
			log.Printf("[EXTRACT] %s skipped: file exceeds %d bytes", strategy.Name(), LargeFileThreshold)
			continue
		}

		result, err := strategy.Extract(ctx, src)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name(), err))
			continue
		}
		if result == nil || !result.Success {
			failures = append(failures, fmt.Sprintf("%s: no usable text", strategy.Name()))
			continue
		}

		result.FileName = src.Name
		log.Printf("[EXTRACT] %s succeeded for %s (method=%s confidence=%.2f)",
			strategy.Name(), src.Name, result.Method, result.Confidence)
		return result, nil
	}

	errMsg := "HWP 파일에서 텍스트를 추출할 수 없습니다"
	if len(failures) > 0 {
		errMsg = fmt.Sprintf("%s: %s", errMsg, strings.Join(failures, "; "))
	}

	return &types.ExtractionResult{
		Success:  false,
		FileName: src.Name,
		Error:    errMsg,
	}, nil
}
