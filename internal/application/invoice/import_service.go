package invoice

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CSVColumns are the headers of an invoice line import
var CSVColumns = []string{
	"invoice_number", "vendor", "invoice_date", "due_date", "upc", "description", "quantity", "unit_cost", "tax", "notes",
}

var exportColumns = []string{
	"id", "invoice_number", "vendor", "invoice_date", "due_date", "status", "subtotal", "tax", "total", "received_at", "notes",
}

// invoiceGroup is the run of CSV rows sharing one invoice_number
type invoiceGroup struct {
	firstLine int
	req       CreateInvoiceRequest
	failed    bool
}

// ImportCSV creates one invoice per invoice_number from a CSV of line rows.
// Header fields come from the first row of each group. Counts in the result are per invoice.
func (s *InvoiceService) ImportCSV(ctx context.Context, r io.Reader) (*csvimport.Result, error) {
	parser, err := csvimport.NewParser(r, csvimport.WithMaxRows(s.importCfg.MaxRows))
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}
	if missing := parser.MissingHeaders("invoice_number", "invoice_date"); len(missing) > 0 {
		return nil, shared.InvalidInput("Missing required columns: " + strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAll()
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}

	errs := csvimport.NewErrorCollection(s.importCfg.MaxErrors)
	groups, order := s.groupRows(ctx, rows, errs)
	result := &csvimport.Result{TotalRows: len(order)}

	for _, number := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g := groups[number]
		if g.failed {
			result.Failed++
			continue
		}
		s.importGroup(ctx, g, errs, result)
	}

	s.logger.Info("Invoice CSV import finished",
		zap.Int("invoices", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result.Finish(errs), nil
}

func (s *InvoiceService) groupRows(ctx context.Context, rows []*csvimport.Row, errs *csvimport.ErrorCollection) (map[string]*invoiceGroup, []string) {
	groups := make(map[string]*invoiceGroup)
	order := make([]string, 0)
	vendorIDs := make(map[string]*int64)

	for _, row := range rows {
		f := csvimport.NewFieldReader(row, errs)
		number := strings.TrimSpace(f.Required("invoice_number"))
		if number == "" {
			continue
		}

		g, ok := groups[number]
		if !ok {
			g = &invoiceGroup{firstLine: row.LineNumber}
			g.req.InvoiceNumber = number
			g.req.InvoiceDate = f.Required("invoice_date")
			if exp := f.Date("invoice_date"); exp != nil {
				g.req.InvoiceDate = exp.Format(dateLayout)
			}
			if due := f.Date("due_date"); due != nil {
				d := due.Format(dateLayout)
				g.req.DueDate = &d
			}
			if f.String("tax") != "" {
				tax := f.Decimal("tax", decimal.Zero)
				g.req.Tax = &tax
			}
			g.req.Notes = f.String("notes")
			if name := f.String("vendor"); name != "" {
				g.req.VendorID = s.resolveVendor(ctx, name, vendorIDs)
			}
			groups[number] = g
			order = append(order, number)
		}

		upc, desc := f.String("upc"), f.String("description")
		if upc != "" || desc != "" || f.String("quantity") != "" {
			line := LineItemRequest{
				UPC:         upc,
				Description: desc,
				Quantity:    f.Int("quantity", 0),
				UnitCost:    f.Decimal("unit_cost", decimal.Zero),
			}
			if f.OK() {
				if _, err := newLine(line); err != nil {
					addDomainError(errs, row.LineNumber, err)
					g.failed = true
					continue
				}
			}
			g.req.Items = append(g.req.Items, line)
		}
		if !f.OK() {
			g.failed = true
		}
	}
	return groups, order
}

func (s *InvoiceService) resolveVendor(ctx context.Context, name string, cache map[string]*int64) *int64 {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id
	}
	var id *int64
	if s.vendorRepo != nil {
		if v, err := s.vendorRepo.FindByName(ctx, name); err == nil {
			id = &v.ID
		}
	}
	cache[key] = id
	return id
}

func (s *InvoiceService) importGroup(ctx context.Context, g *invoiceGroup, errs *csvimport.ErrorCollection, result *csvimport.Result) {
	taken, err := s.invoiceRepo.ExistsByNumber(ctx, g.req.InvoiceNumber, 0)
	if err != nil {
		addDomainError(errs, g.firstLine, err)
		result.Failed++
		return
	}
	if taken {
		errs.AddDuplicate(g.firstLine, "invoice_number", g.req.InvoiceNumber, true)
		result.Skipped++
		return
	}

	inv, err := s.buildInvoice(ctx, g.req)
	if err == nil {
		err = s.invoiceRepo.Save(ctx, inv)
	}
	if err != nil {
		addDomainError(errs, g.firstLine, err)
		result.Failed++
		return
	}
	result.Imported++
}

func addDomainError(errs *csvimport.ErrorCollection, line int, err error) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		errs.AddMessage(line, "", csvimport.CodeValidation, err.Error())
		return
	}
	if field, ok := strings.CutPrefix(de.Code, "INVALID_"); ok && de.Code != "INVALID_INPUT" && de.Code != "INVALID_STATE" {
		errs.AddMessage(line, strings.ToLower(field), csvimport.CodeValidation, de.Message)
		return
	}
	errs.AddMessage(line, "", de.Code, de.Message)
}

// ExportCSV writes every invoice matching the filter with its totals
func (s *InvoiceService) ExportCSV(ctx context.Context, f ListFilter, w io.Writer) error {
	filter, err := BuildFilter(f)
	if err != nil {
		return err
	}
	invoices, err := s.invoiceRepo.FindAll(ctx, filter.Unpaged())
	if err != nil {
		return err
	}
	names := s.vendorNames(ctx, invoices)

	out, err := csvimport.NewWriter(w, exportColumns...)
	if err != nil {
		return err
	}
	for i := range invoices {
		inv := &invoices[i]
		receivedAt := ""
		if inv.ReceivedAt != nil {
			receivedAt = inv.ReceivedAt.UTC().Format(time.RFC3339)
		}
		if err := out.Write(
			strconv.FormatInt(inv.ID, 10),
			inv.InvoiceNumber,
			names[vendorKey(inv.VendorID)],
			inv.InvoiceDate.Format(dateLayout),
			csvimport.FormatDate(inv.DueDate),
			inv.Status.String(),
			csvimport.FormatMoney(inv.Subtotal),
			csvimport.FormatMoney(inv.Tax),
			csvimport.FormatMoney(inv.Total),
			receivedAt,
			inv.Notes,
		); err != nil {
			return err
		}
	}
	return out.Flush()
}
