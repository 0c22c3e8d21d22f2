package salvage

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/daehyun/grant-agent/internal/types"
)

// validContentRatio is the minimum Hangul percentage for text to be
// considered real document content rather than conversion garbage.
const validContentRatio = 10.0

// paragraphsPerSection is a rough heuristic for how many paragraphs a
// typical application form section spans.
const paragraphsPerSection = 3

// Analyze computes quality metrics over extracted text. Every extraction
// strategy attaches the result to its successful ExtractionResult.
func Analyze(text string) *types.TextAnalysis {
	var lines int
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}

	var paragraphs int
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	ratio := hangulRatio(text)

	return &types.TextAnalysis{
		TotalLines:        lines,
		Paragraphs:        paragraphs,
		WordCount:         len(strings.Fields(text)),
		HangulRatio:       ratio,
		HasValidContent:   ratio > validContentRatio,
		EstimatedSections: paragraphs / paragraphsPerSection,
	}
}

// hangulRatio returns the percentage of Hangul syllables among all
// characters, rounded to two decimals.
func hangulRatio(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}

	var hangul int
	for _, r := range text {
		if r >= '가' && r <= '힣' {
			hangul++
		}
	}

	ratio := float64(hangul) / float64(total) * 100
	return math.Round(ratio*100) / 100
}
