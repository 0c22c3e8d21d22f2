// Package extraction implements the multi-strategy HWP text extraction chain:
// structured parsing, headless office conversion, online conversion services,
// and binary salvage, orchestrated in fixed priority order.
package extraction

import (
	"context"

	"github.com/daehyun/grant-agent/internal/types"
)

// Source is one uploaded HWP document to extract text from.
type Source struct {
	Name string
	Data []byte
}

// Strategy is one interchangeable extraction method. Implementations report
// partial degradation through the result's Method/Warning fields rather than
// through errors; an error return means the strategy produced nothing usable
// and the orchestrator should move on.
type Strategy interface {
	// Name identifies the strategy in logs and diagnostics.
	Name() string
	// Available reports whether the strategy can run at all (tool installed,
	// API key configured). Unavailable strategies are skipped, not failed.
	Available() bool
	// Expensive marks strategies the orchestrator skips for oversized inputs.
	Expensive() bool
	// Extract attempts to pull text out of the source document.
	Extract(ctx context.Context, src *Source) (*types.ExtractionResult, error)
}
