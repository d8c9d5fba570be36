package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// ParseExport validates a report type and format from the request path and query.
// An empty format means CSV.
func ParseExport(reportType, format string) (report.Type, report.Format, error) {
	t := report.Type(reportType)
	if !t.IsValid() {
		return "", "", shared.NotFound(fmt.Sprintf("Report '%s'", reportType))
	}
	f := report.Format(format)
	if f == "" {
		f = report.FormatCSV
	}
	if !f.IsValid() {
		return "", "", shared.InvalidInput(fmt.Sprintf("Unsupported format '%s', use csv or pdf", format))
	}
	return t, f, nil
}

// BuildTable runs a report and flattens it into a table
func (s *ReportService) BuildTable(ctx context.Context, t report.Type, p Params) (*report.Table, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	table := &report.Table{Type: t, Company: v.StoreName, GeneratedAt: s.now()}
	switch t {
	case report.TypeInventoryValue:
		resp, err := s.InventoryValue(ctx)
		if err != nil {
			return nil, err
		}
		table.Title = "Inventory Value"
		table.Columns = []string{"category", "item_count", "units", "cost_value", "retail_value", "potential_profit"}
		table.Numeric = []bool{false, true, true, true, true, true}
		for _, c := range resp.Categories {
			table.AddRow(categoryLabel(c.Category), itoa64(c.ItemCount), itoa64(c.Units),
				csvimport.FormatMoney(c.CostValue), csvimport.FormatMoney(c.RetailValue), csvimport.FormatMoney(c.PotentialProfit))
		}
		table.AddSummary("Total items", itoa64(resp.TotalItems))
		table.AddSummary("Total units", itoa64(resp.TotalUnits))
		table.AddSummary("Cost value", csvimport.FormatMoney(resp.CostValue))
		table.AddSummary("Retail value", csvimport.FormatMoney(resp.RetailValue))
		table.AddSummary("Potential profit", csvimport.FormatMoney(resp.PotentialProfit))

	case report.TypeMargins:
		resp, err := s.Margins(ctx, p)
		if err != nil {
			return nil, err
		}
		table.Title = "Profit Margins"
		table.Subtitle = rangeSubtitle("Margin", p.MinMargin, p.MaxMargin, "%")
		table.Columns = []string{"upc", "name", "category", "cost_price", "sell_price", "margin", "margin_percent"}
		table.Numeric = []bool{false, false, false, true, true, true, true}
		for _, m := range resp.Items {
			table.AddRow(m.UPC, m.Name, m.Category, csvimport.FormatMoney(m.CostPrice), csvimport.FormatMoney(m.SellPrice),
				csvimport.FormatMoney(m.Margin), m.MarginPercent.StringFixed(2))
		}
		for _, c := range resp.Categories {
			table.AddSummary(c.Category+" average", c.AverageMarginPercent.StringFixed(2)+"%")
		}
		table.AddSummary("Overall average", resp.AverageMarginPercent.StringFixed(2)+"%")

	case report.TypeVendorSpend:
		resp, err := s.VendorSpend(ctx, p)
		if err != nil {
			return nil, err
		}
		table.Title = "Vendor Spend"
		table.Subtitle = rangeSubtitle("Invoice date", p.From, p.To, "")
		table.Columns = []string{"vendor", "invoice_count", "total", "paid", "outstanding"}
		table.Numeric = []bool{false, true, true, true, true}
		for _, v := range resp.Vendors {
			table.AddRow(v.VendorName, itoa64(v.InvoiceCount), csvimport.FormatMoney(v.Total),
				csvimport.FormatMoney(v.Paid), csvimport.FormatMoney(v.Outstanding))
		}
		table.AddSummary("Total", csvimport.FormatMoney(resp.Total))
		table.AddSummary("Paid", csvimport.FormatMoney(resp.Paid))
		table.AddSummary("Outstanding", csvimport.FormatMoney(resp.Outstanding))

	case report.TypeLowStock:
		resp, err := s.LowStock(ctx, p)
		if err != nil {
			return nil, err
		}
		table.Title = "Low Stock"
		table.Subtitle = fmt.Sprintf("Store threshold %d", resp.Threshold)
		table.Columns = []string{"upc", "name", "category", "quantity", "min_stock", "reorder_point", "suggested_order", "priority"}
		table.Numeric = []bool{false, false, false, true, true, true, true, false}
		for _, r := range resp.Items {
			table.AddRow(r.UPC, r.Name, r.Category, strconv.Itoa(r.Quantity), strconv.Itoa(r.MinStock),
				r.ReorderPoint.String(), strconv.Itoa(r.SuggestedOrder), r.Priority)
		}
		for _, pr := range []string{"critical", "high", "medium", "low"} {
			if n, ok := resp.Summary[pr]; ok {
				table.AddSummary(pr, strconv.Itoa(n))
			}
		}

	case report.TypeExpiring:
		resp, err := s.Expiring(ctx, p)
		if err != nil {
			return nil, err
		}
		table.Title = "Expiring Items"
		table.Subtitle = fmt.Sprintf("Within %d days", resp.Days)
		table.Columns = []string{"upc", "name", "category", "quantity", "expiration_date", "days_left", "cost_value"}
		table.Numeric = []bool{false, false, false, true, false, true, true}
		for _, e := range resp.Items {
			table.AddRow(e.UPC, e.Name, e.Category, strconv.Itoa(e.Quantity), e.ExpirationDate,
				strconv.Itoa(e.DaysLeft), csvimport.FormatMoney(e.CostValue))
		}
		table.AddSummary("Already expired", strconv.Itoa(resp.ExpiredCount))
		table.AddSummary("Value at risk", csvimport.FormatMoney(resp.ValueAtRisk))

	default:
		return nil, shared.NotFound(fmt.Sprintf("Report '%s'", t))
	}
	return table, nil
}

// Export renders a report as CSV or PDF
func (s *ReportService) Export(ctx context.Context, t report.Type, f report.Format, p Params) (*ExportFile, error) {
	if f == report.FormatPDF && s.pdf == nil {
		return nil, shared.Unavailable("PDF export is not configured")
	}
	table, err := s.BuildTable(ctx, t, p)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch f {
	case report.FormatPDF:
		data, err = s.pdf.RenderTable(ctx, table)
		if err != nil {
			s.logger.Error("PDF render failed", zap.String("report", string(t)), zap.Error(err))
			return nil, err
		}
	default:
		data, err = writeCSV(table)
		if err != nil {
			return nil, err
		}
	}

	return &ExportFile{Filename: table.Filename(f), ContentType: f.ContentType(), Data: data}, nil
}

// Archive renders a report and stores it, returning a presigned download link
func (s *ReportService) Archive(ctx context.Context, t report.Type, f report.Format, p Params) (*ArchiveResponse, error) {
	if s.store == nil {
		return nil, shared.Unavailable("Report storage is not configured")
	}
	file, err := s.Export(ctx, t, f, p)
	if err != nil {
		return nil, err
	}

	key := storage.ReportKey(string(t), string(f), s.now())
	if err := s.store.Put(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	url, expiresAt, err := s.store.PresignGet(ctx, key, s.presignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report: %w", err)
	}

	s.logger.Info("Report archived", zap.String("report", string(t)), zap.String("key", key), zap.Int("bytes", len(file.Data)))
	return &ArchiveResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

func writeCSV(table *report.Table) ([]byte, error) {
	var buf bytes.Buffer
	w, err := csvimport.NewWriter(&buf, table.Columns...)
	if err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row...); err != nil {
			return nil, err
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rangeSubtitle(label, from, to, unit string) string {
	switch {
	case from != "" && to != "":
		return fmt.Sprintf("%s %s%s to %s%s", label, from, unit, to, unit)
	case from != "":
		return fmt.Sprintf("%s from %s%s", label, from, unit)
	case to != "":
		return fmt.Sprintf("%s up to %s%s", label, to, unit)
	}
	return ""
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}
