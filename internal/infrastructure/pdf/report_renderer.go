package pdf

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
)

// landscapeColumns is the column count above which tables print landscape
const landscapeColumns = 6

// ReportRenderer prints report tables through the HTML template and a headless browser
type ReportRenderer struct {
	engine   *TemplateEngine
	renderer HTMLRenderer
	paper    PaperSize
}

// NewReportRenderer creates a ReportRenderer. Paper defaults to Letter.
func NewReportRenderer(engine *TemplateEngine, renderer HTMLRenderer, paper PaperSize) *ReportRenderer {
	if paper.Width == 0 {
		paper = PaperLetter
	}
	return &ReportRenderer{engine: engine, renderer: renderer, paper: paper}
}

// RenderTable renders one report table to PDF bytes
func (r *ReportRenderer) RenderTable(ctx context.Context, t *report.Table) ([]byte, error) {
	html, err := r.engine.RenderReport(ViewFromTable(t))
	if err != nil {
		return nil, err
	}
	result, err := r.renderer.Render(ctx, &RenderRequest{
		HTML:      html,
		Title:     t.Title,
		Paper:     r.paper,
		Landscape: len(t.Columns) > landscapeColumns,
		Margins:   DefaultMargins(),
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// ViewFromTable maps a report table onto the template's view model
func ViewFromTable(t *report.Table) *ReportView {
	company := t.Company
	if company == "" {
		company = "Fresh Choice"
	}
	view := &ReportView{
		Company:        company,
		Title:          t.Title,
		Subtitle:       t.Subtitle,
		GeneratedAt:    t.GeneratedAt,
		Columns:        t.Columns,
		NumericColumns: t.Numeric,
		Rows:           t.Rows,
		Summary:        make([]SummaryLine, len(t.Summary)),
	}
	for i, s := range t.Summary {
		view.Summary[i] = SummaryLine{Label: s.Label, Value: s.Value}
	}
	return view
}
