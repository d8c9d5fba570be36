package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Writer writes an export with a fixed header
type Writer struct {
	w       *csv.Writer
	columns int
}

// NewWriter writes the header row and returns a Writer for the data rows
func NewWriter(out io.Writer, header ...string) (*Writer, error) {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	return &Writer{w: w, columns: len(header)}, nil
}

// Write writes one row; it must have as many fields as the header
func (w *Writer) Write(fields ...string) error {
	if len(fields) != w.columns {
		return fmt.Errorf("CSV row has %d fields, header has %d", len(fields), w.columns)
	}
	return w.w.Write(fields)
}

// Flush flushes buffered rows and returns any write error
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// FormatDate renders an optional date as YYYY-MM-DD, "" when nil
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatMoney renders a decimal with two places
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatID renders an optional id, "" when nil
func FormatID(id *int64) string {
	if id == nil {
		return ""
	}
	return fmt.Sprintf("%d", *id)
}
