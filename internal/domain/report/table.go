package report

import "time"

// Table is a report flattened to rows of display strings, ready for CSV or PDF
type Table struct {
	Type        Type
	Company     string
	Title       string
	Subtitle    string
	Columns     []string
	Numeric     []bool
	Rows        [][]string
	Summary     []SummaryLine
	GeneratedAt time.Time
}

// SummaryLine is a label/value pair printed under the table
type SummaryLine struct {
	Label string
	Value string
}

// AddRow appends a row; it must have one value per column
func (t *Table) AddRow(values ...string) {
	t.Rows = append(t.Rows, values)
}

// AddSummary appends a summary line
func (t *Table) AddSummary(label, value string) {
	t.Summary = append(t.Summary, SummaryLine{Label: label, Value: value})
}

// Filename returns the download name, e.g. margins-2026-03-10.csv
func (t *Table) Filename(f Format) string {
	return string(t.Type) + "-" + t.GeneratedAt.UTC().Format("2006-01-02") + "." + string(f)
}
