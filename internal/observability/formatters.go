// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/daehyun/grant-agent/internal/generation"
	"github.com/daehyun/grant-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtraction outputs a human-readable summary of a text extraction run.
func (p *Printer) PrintExtraction(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	status := "FAILED"
	if result.Success {
		status = "OK"
	}
	sb.WriteString(fmt.Sprintf("Status:     %s\n", status))
	sb.WriteString(fmt.Sprintf("Method:     %s\n", result.Method))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
	sb.WriteString(fmt.Sprintf("Characters: %d\n", len([]rune(result.Text))))

	if result.Analysis != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Lines:      %d\n", result.Analysis.TotalLines))
		sb.WriteString(fmt.Sprintf("Paragraphs: %d\n", result.Analysis.Paragraphs))
		sb.WriteString(fmt.Sprintf("Words:      %d\n", result.Analysis.WordCount))
		sb.WriteString(fmt.Sprintf("Hangul:     %.1f%%\n", result.Analysis.HangulRatio))
		sb.WriteString(fmt.Sprintf("Sections:   ~%d\n", result.Analysis.EstimatedSections))
	}

	if result.Warning != "" {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", result.Warning))
	}
	if result.Error != "" {
		sb.WriteString(fmt.Sprintf("\n✗ %s\n", result.Error))
	}

	p.printBox("TEXT EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs the field contents produced by a generation run.
func (p *Printer) PrintGeneration(result *generation.Result) {
	if result == nil || len(result.Contents) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d/%d fields (%d failed)\n\n",
		result.GeneratedFields, result.TotalFields, result.FailedFields))

	count := min(len(result.Contents), maxItemsToShow)
	for i := 0; i < count; i++ {
		content := result.Contents[i]
		text := strings.ReplaceAll(content.Content, "\n", " ")
		if len([]rune(text)) > 40 {
			text = string([]rune(text)[:37]) + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s (%.2f)\n", content.FieldID, content.Confidence))
		sb.WriteString(fmt.Sprintf("  %s\n", text))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(result.Contents) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more fields", len(result.Contents)-maxItemsToShow))
	}

	p.printBox("GENERATED CONTENT", sb.String())
}

// PrintSummary outputs the aggregate quality summary of a generation run.
func (p *Printer) PrintSummary(summary *generation.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total words:    %d\n", summary.TotalWords))
	sb.WriteString(fmt.Sprintf("Avg confidence: %.2f\n", summary.AverageConfidence))
	sb.WriteString(fmt.Sprintf("Quality:        %s\n", summary.QualityScore))

	if len(summary.CategoryDistribution) > 0 {
		sb.WriteString("\nCategories:\n")
		categories := make([]string, 0, len(summary.CategoryDistribution))
		for category := range summary.CategoryDistribution {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			sb.WriteString(fmt.Sprintf("  • %s: %d\n", category, summary.CategoryDistribution[category]))
		}
	}

	p.printBox("GENERATION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
