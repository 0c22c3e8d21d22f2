package assembly

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// TemplateError represents a failure parsing or executing a form template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// fillTemplate fills a pre-built HWP form template with field values keyed
// by field id. A missing template file means the step is unavailable for
// this kind, which falls through to the next step in the chain.
func (a *Assembler) fillTemplate(req *Request) ([]byte, error) {
	dir := a.TemplateDir
	if dir == "" {
		dir = filepath.Join("templates", "hwp")
	}
	path := filepath.Join(dir, string(req.Template)+".hwp.tmpl")

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{Message: fmt.Sprintf("template not found: %s", path)}
		}
		return nil, &TemplateError{Message: "failed to read template", Cause: err}
	}

	tmpl, err := template.New(string(req.Template)).Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse template", Cause: err}
	}

	fields := make(map[string]string, len(req.Contents))
	for _, c := range req.Contents {
		fields[c.FieldID] = c.Content
	}

	data := struct {
		ProgramName string
		Fields      map[string]string
	}{
		ProgramName: req.ProgramName,
		Fields:      fields,
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, &TemplateError{Message: "failed to execute template", Cause: err}
	}

	if strings.TrimSpace(out.String()) == "" {
		return nil, &TemplateError{Message: "template produced empty document"}
	}

	return []byte(out.String()), nil
}
