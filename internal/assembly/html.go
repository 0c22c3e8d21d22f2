package assembly

import (
	"bytes"
	"html/template"
	"time"
)

// htmlDocument is the styled HTML rendition of an assembled application,
// used both as a deliverable and as the input to the PDF print step.
const htmlDocument = `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.ProgramName}}</title>
    <style>
        body {
            font-family: 'Malgun Gothic', Arial, sans-serif;
            line-height: 1.6;
            margin: 40px;
            color: #333;
        }
        h1 {
            color: #2c3e50;
            border-bottom: 3px solid #3498db;
            padding-bottom: 10px;
        }
        h2 {
            color: #34495e;
            margin-top: 30px;
            margin-bottom: 15px;
        }
        .field-item {
            margin-bottom: 20px;
            padding: 15px;
            background-color: #f8f9fa;
            border-left: 4px solid #3498db;
        }
        .content {
            margin-top: 10px;
            line-height: 1.8;
        }
        .footer {
            margin-top: 50px;
            text-align: center;
            color: #7f8c8d;
            border-top: 1px solid #ecf0f1;
            padding-top: 20px;
        }
    </style>
</head>
<body>
    <h1>{{.ProgramName}}</h1>
{{- range .Sections}}
    <h2>{{.Title}}</h2>
{{- range .Items}}
    <div class="field-item">
        <div class="content">{{.Content}}</div>
    </div>
{{- end}}
{{- end}}
    <div class="footer">
        <p>작성일: {{.Date}}</p>
    </div>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("application").Parse(htmlDocument))

// buildHTML renders the styled HTML document. html/template escapes field
// content, so generated text cannot inject markup.
func (a *Assembler) buildHTML(req *Request) ([]byte, error) {
	data := struct {
		ProgramName string
		Sections    []section
		Date        string
	}{
		ProgramName: req.ProgramName,
		Sections:    groupSections(req.Contents),
		Date:        time.Now().Format("2006. 1. 2."),
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, &TemplateError{Message: "failed to render HTML document", Cause: err}
	}
	return buf.Bytes(), nil
}
