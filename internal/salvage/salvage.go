// Package salvage provides last-resort heuristic text recovery from raw byte
// buffers, used when no structured HWP parser is available or all of them failed.
package salvage

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultByteCap bounds how much of the input buffer is scanned.
	DefaultByteCap = 50000
	// DefaultMinTextLength is the minimum salvaged length to count as success.
	// Shorter results are more likely binary noise than document text.
	DefaultMinTextLength = 50

	// minRunLength drops runs too short to be meaningful words.
	minRunLength = 3
)

// readableRun matches maximal runs of Hangul syllables plus common
// punctuation, digits, and ASCII letters.
var readableRun = regexp.MustCompile(`[가-힣\s.,!?()0-9a-zA-Z]+`)

var collapseSpace = regexp.MustCompile(`\s+`)

// Result is the outcome of a salvage attempt.
type Result struct {
	Text    string
	Success bool
}

// Options configure a salvage scan.
type Options struct {
	ByteCap       int
	MinTextLength int
}

// Option mutates salvage Options.
type Option func(*Options)

// WithByteCap overrides the scanned byte cap.
func WithByteCap(n int) Option {
	return func(o *Options) { o.ByteCap = n }
}

// WithMinTextLength overrides the minimum success length.
func WithMinTextLength(n int) Option {
	return func(o *Options) { o.MinTextLength = n }
}

// Salvage scans a byte buffer of unknown structure for plausible
// human-readable text. Pure function of its inputs; no side effects.
func Salvage(data []byte, opts ...Option) Result {
	o := Options{ByteCap: DefaultByteCap, MinTextLength: DefaultMinTextLength}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) > o.ByteCap {
		data = data[:o.ByteCap]
	}

	// Best-effort UTF-8 decode: invalid sequences are dropped rather than
	// replaced so they cannot glue unrelated runs together.
	text := strings.ToValidUTF8(string(data), "")

	matches := readableRun.FindAllString(text, -1)
	if len(matches) == 0 {
		return Result{}
	}

	var runs []string
	for _, m := range matches {
		if utf8.RuneCountInString(strings.TrimSpace(m)) >= minRunLength {
			runs = append(runs, m)
		}
	}

	joined := strings.TrimSpace(collapseSpace.ReplaceAllString(strings.Join(runs, " "), " "))
	if utf8.RuneCountInString(joined) < o.MinTextLength {
		return Result{}
	}

	return Result{Text: joined, Success: true}
}
