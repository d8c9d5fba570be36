package csvimport

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayouts are the date formats accepted in import files, tried in order
var DateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	time.RFC3339,
}

// FieldReader parses typed values out of one row and records failures.
// A field that fails to parse leaves OK() false; parsing continues so every
// bad field in the row is reported.
type FieldReader struct {
	row    *Row
	errs   *ErrorCollection
	failed bool
}

// NewFieldReader creates a reader over row that reports into errs
func NewFieldReader(row *Row, errs *ErrorCollection) *FieldReader {
	return &FieldReader{row: row, errs: errs}
}

// OK reports whether every field read so far was valid
func (f *FieldReader) OK() bool {
	return !f.failed
}

// Line returns the row's line number
func (f *FieldReader) Line() int {
	return f.row.LineNumber
}

// Required returns a non-empty string or records a required-field error
func (f *FieldReader) Required(field string) string {
	v := f.row.Get(field)
	if v == "" {
		f.errs.AddRequired(f.row.LineNumber, field)
		f.failed = true
	}
	return v
}

// String returns the raw value, "" when absent
func (f *FieldReader) String(field string) string {
	return f.row.Get(field)
}

// Int parses an optional integer, def when blank
func (f *FieldReader) Int(field string, def int) int {
	v := f.row.Get(field)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// spreadsheets often write whole numbers as 12.0
		d, derr := decimal.NewFromString(v)
		if derr != nil || !d.Equal(d.Truncate(0)) {
			f.errs.AddType(f.row.LineNumber, field, "integer", v)
			f.failed = true
			return def
		}
		n = int(d.IntPart())
	}
	return n
}

// Decimal parses an optional number, def when blank. A leading $ and thousands separators are ignored.
func (f *FieldReader) Decimal(field string, def decimal.Decimal) decimal.Decimal {
	v := f.row.Get(field)
	if v == "" {
		return def
	}
	cleaned := strings.ReplaceAll(strings.TrimPrefix(v, "$"), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		f.errs.AddType(f.row.LineNumber, field, "number", v)
		f.failed = true
		return def
	}
	return d
}

// Date parses an optional date, nil when blank
func (f *FieldReader) Date(field string) *time.Time {
	v := f.row.Get(field)
	if v == "" {
		return nil
	}
	t, ok := ParseDate(v)
	if !ok {
		f.errs.Add(RowError{Row: f.row.LineNumber, Field: field, Code: CodeInvalidFormat,
			Message: "invalid date, expected YYYY-MM-DD", Value: v})
		f.failed = true
		return nil
	}
	return &t
}

// Bool parses an optional boolean (true/false, yes/no, 1/0), def when blank
func (f *FieldReader) Bool(field string, def bool) bool {
	v := strings.ToLower(f.row.Get(field))
	switch v {
	case "":
		return def
	case "true", "yes", "y", "1":
		return true
	case "false", "no", "n", "0":
		return false
	}
	f.errs.AddType(f.row.LineNumber, field, "boolean", v)
	f.failed = true
	return def
}

// NonNegative records a range error when n is below zero
func (f *FieldReader) NonNegative(field string, n decimal.Decimal) {
	if n.IsNegative() {
		f.errs.Add(RowError{Row: f.row.LineNumber, Field: field, Code: CodeInvalidRange,
			Message: "value cannot be negative", Value: n.String()})
		f.failed = true
	}
}

// ParseDate parses a date in any of DateLayouts, returning it at UTC midnight
func ParseDate(v string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
