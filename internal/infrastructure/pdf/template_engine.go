package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReportView is the data the report template renders
type ReportView struct {
	Company        string
	Title          string
	Subtitle       string
	GeneratedAt    time.Time
	Columns        []string
	NumericColumns []bool
	Rows           [][]string
	Summary        []SummaryLine
}

// SummaryLine is one label/value pair under the table
type SummaryLine struct {
	Label string
	Value string
}

// TemplateEngine renders report views to HTML with html/template
type TemplateEngine struct {
	report *template.Template
}

var titleCaser = cases.Title(language.English)

// NewTemplateEngine parses the embedded report template
func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := template.FuncMap{
		"formatDateTime": func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
		"title":          func(s string) string { return titleCaser.String(strings.ReplaceAll(s, "_", " ")) },
		"isNumeric": func(cols []bool, i int) bool {
			return i < len(cols) && cols[i]
		},
	}
	tmpl, err := template.New("report.html").Funcs(funcs).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &TemplateEngine{report: tmpl}, nil
}

// RenderReport executes the report template
func (e *TemplateEngine) RenderReport(view *ReportView) (string, error) {
	var buf bytes.Buffer
	if err := e.report.Execute(&buf, view); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute report template", err)
	}
	return buf.String(), nil
}
