// Package types provides type definitions for structured data used throughout the grant-agent system.
package types

// ExtractionMethod identifies which converter strategy produced an extraction result.
type ExtractionMethod string

// Known extraction methods, in descending order of expected fidelity.
const (
	// MethodTemplate is a structured parse via the hwp5 toolchain.
	MethodTemplate ExtractionMethod = "template"
	// MethodCloudConvert is the CloudConvert online conversion API.
	MethodCloudConvert ExtractionMethod = "cloudconvert"
	// MethodOfficeSuite is a headless LibreOffice text conversion.
	MethodOfficeSuite ExtractionMethod = "office-suite"
	// MethodConvertio is the Convertio online conversion API.
	MethodConvertio ExtractionMethod = "convertio"
	// MethodHTMLRender is a headless LibreOffice HTML conversion scraped back to text.
	MethodHTMLRender ExtractionMethod = "html-render"
	// MethodBinarySalvage is the last-resort heuristic scrape of raw bytes.
	MethodBinarySalvage ExtractionMethod = "binary-salvage"
)

// ExtractionResult is the outcome of one extraction attempt. Exactly one is
// produced per orchestrator call; all-strategies-failed is represented as
// Success=false, never as an error.
type ExtractionResult struct {
	Success    bool             `json:"success"`
	Method     ExtractionMethod `json:"method,omitempty"`
	FileName   string           `json:"file_name,omitempty"`
	Text       string           `json:"extracted_text,omitempty"`
	Confidence float64          `json:"confidence,omitempty"`
	Analysis   *TextAnalysis    `json:"analysis,omitempty"`
	Warning    string           `json:"warning,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// TextAnalysis holds derived quality metrics over extracted text. It is always
// attached to a successful ExtractionResult and never persisted on its own.
type TextAnalysis struct {
	TotalLines        int     `json:"total_lines"`
	Paragraphs        int     `json:"paragraphs"`
	WordCount         int     `json:"word_count"`
	HangulRatio       float64 `json:"hangul_ratio"`
	HasValidContent   bool    `json:"has_valid_content"`
	EstimatedSections int     `json:"estimated_sections"`
}
