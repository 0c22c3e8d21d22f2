package generation

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"

	"github.com/daehyun/grant-agent/internal/llm"
	"github.com/daehyun/grant-agent/internal/types"
)

// labeledLine matches "label: value"-shaped lines in free-form responses.
var labeledLine = regexp.MustCompile(`^(.+?)\s*[:：]\s*(.+)$`)

// newFieldContent builds a FieldContent with its word count filled in.
func newFieldContent(fieldID, content string, confidence float64) types.FieldContent {
	content = strings.TrimSpace(content)
	return types.FieldContent{
		FieldID:    fieldID,
		Content:    content,
		Confidence: confidence,
		WordCount:  len(strings.Fields(content)),
	}
}

// parseCategoryResponse interprets a batched completion response. The prompt
// asks for a JSON object keyed by field id; when the model answers in prose
// anyway, a line-oriented splitter recovers what it can at lower confidence.
func (g *Generator) parseCategoryResponse(resultText string, fields []types.FieldSpec) map[string]types.FieldContent {
	cleaned := llm.CleanJSONBlock(resultText)

	var parsed map[string]string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		contents := make(map[string]types.FieldContent, len(fields))
		for _, field := range fields {
			text := parsed[field.ID]
			if text == "" {
				text = parsed[field.Label]
			}
			if text == "" {
				continue
			}
			contents[field.ID] = newFieldContent(field.ID, text, g.confidence.Batched)
		}
		return contents
	}

	log.Printf("[GENERATE] JSON parse failed, splitting response text")
	return g.splitTextResponse(resultText, fields)
}

// splitTextResponse segments a prose response on "label: value" lines,
// attributing continuation lines to the most recent matched field.
func (g *Generator) splitTextResponse(text string, fields []types.FieldSpec) map[string]types.FieldContent {
	fieldByName := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		fieldByName[strings.ToLower(f.ID)] = f.ID
		fieldByName[strings.ToLower(f.Label)] = f.ID
	}

	parts := make(map[string][]string)
	current := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "-*# "))
		if trimmed == "" {
			continue
		}
		if m := labeledLine.FindStringSubmatch(trimmed); m != nil {
			name := strings.ToLower(strings.Trim(m[1], `"' `))
			if id, ok := fieldByName[name]; ok {
				current = id
				parts[id] = append(parts[id], strings.TrimSpace(m[2]))
				continue
			}
		}
		if current != "" {
			parts[current] = append(parts[current], trimmed)
		}
	}

	contents := make(map[string]types.FieldContent, len(parts))
	for id, lines := range parts {
		contents[id] = newFieldContent(id, strings.Join(lines, " "), g.confidence.TextSplit)
	}
	return contents
}
