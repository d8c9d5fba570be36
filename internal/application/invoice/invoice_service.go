package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceService handles vendor invoices and receiving them into stock
type InvoiceService struct {
	invoiceRepo invoice.Repository
	vendorRepo  partner.VendorRepository
	txScope     TransactionScope
	settings    inventoryapp.SettingsProvider
	importCfg   inventoryapp.ImportConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewInvoiceService creates a new InvoiceService.
// Receiving runs inside txScope so stock and status change together.
func NewInvoiceService(
	invoiceRepo invoice.Repository,
	vendorRepo partner.VendorRepository,
	txScope TransactionScope,
	settingsProvider inventoryapp.SettingsProvider,
	importCfg inventoryapp.ImportConfig,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		vendorRepo:  vendorRepo,
		txScope:     txScope,
		settings:    settingsProvider,
		importCfg:   importCfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *InvoiceService) values(ctx context.Context) (settings.Values, error) {
	if s.settings == nil {
		return settings.DefaultValues(), nil
	}
	return s.settings.Values(ctx)
}

// BuildFilter converts list query parameters to a repository filter
func BuildFilter(f ListFilter) (shared.Filter, error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "invoice_date"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = strings.TrimSpace(f.Search)

	if f.VendorID != nil {
		filter.Filters[invoice.FilterVendorID] = *f.VendorID
	}
	if f.Status != "" {
		status := invoice.Status(strings.ToLower(f.Status))
		if !status.IsValid() {
			return filter, shared.InvalidInput(fmt.Sprintf("Unknown status '%s'", f.Status))
		}
		filter.Filters[invoice.FilterStatus] = string(status)
	}
	for key, raw := range map[string]string{invoice.FilterFrom: f.From, invoice.FilterTo: f.To} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		t, err := parseDate(key, raw)
		if err != nil {
			return filter, err
		}
		filter.Filters[key] = t
	}
	return filter, nil
}

// List returns a page of invoices without their lines
func (s *InvoiceService) List(ctx context.Context, f ListFilter) (*shared.Paginated[InvoiceResponse], error) {
	filter, err := BuildFilter(f)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	names := s.vendorNames(ctx, invoices)
	now := s.now()
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i], names[vendorKey(invoices[i].VendorID)], now)
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// vendorNames looks up the vendor name of each distinct vendor on the page
func (s *InvoiceService) vendorNames(ctx context.Context, invoices []invoice.Invoice) map[int64]string {
	names := make(map[int64]string)
	if s.vendorRepo == nil {
		return names
	}
	for _, inv := range invoices {
		if inv.VendorID == nil {
			continue
		}
		if _, ok := names[*inv.VendorID]; ok {
			continue
		}
		name := ""
		if v, err := s.vendorRepo.FindByID(ctx, *inv.VendorID); err == nil {
			name = v.Name
		}
		names[*inv.VendorID] = name
	}
	return names
}

func vendorKey(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

// GetByID returns an invoice with its lines and vendor name
func (s *InvoiceService) GetByID(ctx context.Context, id int64) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, s.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, inv), nil
}

func (s *InvoiceService) findInvoice(ctx context.Context, repo invoice.Repository, id int64) (*invoice.Invoice, error) {
	inv, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Invoice")
		}
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) respond(ctx context.Context, inv *invoice.Invoice) *InvoiceResponse {
	names := s.vendorNames(ctx, []invoice.Invoice{*inv})
	resp := ToInvoiceResponse(inv, names[vendorKey(inv.VendorID)], s.now())
	return &resp
}

// Create creates a pending invoice. Without an explicit tax, the tax_rate setting applies.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("Invoice created",
		zap.Int64("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.Total.StringFixed(2)))
	return s.respond(ctx, inv), nil
}

func (s *InvoiceService) buildInvoice(ctx context.Context, req CreateInvoiceRequest) (*invoice.Invoice, error) {
	invoiceDate, err := parseDate("invoice_date", req.InvoiceDate)
	if err != nil {
		return nil, err
	}
	inv, err := invoice.NewInvoice(req.InvoiceNumber, invoiceDate)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	if err := inv.SetDates(invoiceDate, dueDate); err != nil {
		return nil, err
	}
	if err := s.checkVendor(ctx, req.VendorID); err != nil {
		return nil, err
	}
	if err := inv.AssignVendor(req.VendorID); err != nil {
		return nil, err
	}
	inv.SetNotes(req.Notes)

	for _, r := range req.Items {
		line, err := newLine(r)
		if err != nil {
			return nil, err
		}
		if err := inv.AddItem(line); err != nil {
			return nil, err
		}
	}

	if req.Tax != nil {
		err = inv.SetTax(*req.Tax)
	} else {
		var v settings.Values
		if v, err = s.values(ctx); err == nil {
			err = inv.ApplyTaxRate(v.TaxRate)
		}
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func newLine(r LineItemRequest) (*invoice.LineItem, error) {
	return invoice.NewLineItem(r.InventoryID, r.UPC, r.Description, r.Quantity, r.UnitCost)
}

// Update changes header fields and, when items is present, replaces the lines.
// The stored tax is kept unless a new one is given.
func (s *InvoiceService) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, s.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanModify() {
		return nil, shared.InvalidState("Invoice cannot be modified once " + inv.Status.String())
	}

	if req.InvoiceNumber != nil {
		if err := inv.ChangeNumber(*req.InvoiceNumber); err != nil {
			return nil, err
		}
	}
	if req.InvoiceDate != nil || req.DueDate != nil {
		invoiceDate, dueDate := inv.InvoiceDate, inv.DueDate
		if req.InvoiceDate != nil {
			if invoiceDate, err = parseDate("invoice_date", *req.InvoiceDate); err != nil {
				return nil, err
			}
		}
		if req.DueDate != nil {
			if dueDate, err = parseOptionalDate("due_date", req.DueDate); err != nil {
				return nil, err
			}
		}
		if err := inv.SetDates(invoiceDate, dueDate); err != nil {
			return nil, err
		}
	}
	if req.VendorID != nil {
		vendorID := req.VendorID
		if *vendorID == 0 {
			vendorID = nil
		}
		if err := s.checkVendor(ctx, vendorID); err != nil {
			return nil, err
		}
		if err := inv.AssignVendor(vendorID); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		inv.SetNotes(*req.Notes)
	}
	if req.Items != nil {
		lines := make([]invoice.LineItem, 0, len(*req.Items))
		for _, r := range *req.Items {
			line, err := newLine(r)
			if err != nil {
				return nil, err
			}
			lines = append(lines, *line)
		}
		if err := inv.ReplaceItems(lines); err != nil {
			return nil, err
		}
	}
	if req.Tax != nil {
		if err := inv.SetTax(*req.Tax); err != nil {
			return nil, err
		}
	}

	if err := s.checkUnique(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return s.respond(ctx, inv), nil
}

// Delete removes an invoice and its lines
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Invoice")
		}
		return err
	}
	s.logger.Info("Invoice deleted", zap.Int64("invoice_id", id))
	return nil
}

// AddItem appends one line and recomputes totals
func (s *InvoiceService) AddItem(ctx context.Context, id int64, req LineItemRequest) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, s.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	line, err := newLine(req)
	if err != nil {
		return nil, err
	}
	if err := inv.AddItem(line); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return s.respond(ctx, inv), nil
}

// RemoveItem removes one line; a line that is not on the invoice is not found
func (s *InvoiceService) RemoveItem(ctx context.Context, id, itemID int64) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, s.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	if err := inv.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return s.respond(ctx, inv), nil
}

// Receive marks a pending invoice received and adds every line to stock in one transaction.
// Lines match inventory by inventory_id, then UPC; an unknown UPC creates the item.
// Lines with neither are recorded on the invoice but not stocked.
func (s *InvoiceService) Receive(ctx context.Context, id int64) (*ReceiveResponse, error) {
	var (
		received []ReceivedLine
		inv      *invoice.Invoice
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		inv, err = s.findInvoice(ctx, repos.InvoiceRepo(), id)
		if err != nil {
			return err
		}
		if err := inv.MarkReceived(); err != nil {
			return err
		}

		received = make([]ReceivedLine, 0, len(inv.Items))
		for i := range inv.Items {
			line := &inv.Items[i]
			result, err := receiveLine(ctx, repos.InventoryRepo(), inv, line)
			if err != nil {
				return fmt.Errorf("receive line %d: %w", i+1, err)
			}
			if result != nil {
				received = append(received, *result)
			}
		}
		return repos.InvoiceRepo().Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice received",
		zap.Int64("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int("lines", len(received)))
	return &ReceiveResponse{Invoice: *s.respond(ctx, inv), Received: received}, nil
}

func receiveLine(ctx context.Context, repo inventory.Repository, inv *invoice.Invoice, line *invoice.LineItem) (*ReceivedLine, error) {
	item, err := matchInventory(ctx, repo, line)
	if err != nil {
		return nil, err
	}

	created := false
	if item == nil {
		if strings.TrimSpace(line.UPC) == "" {
			return nil, nil
		}
		name := line.Description
		if name == "" {
			name = line.UPC
		}
		if item, err = inventory.NewItem(line.UPC, name); err != nil {
			return nil, err
		}
		item.AssignVendor(inv.VendorID)
		created = true
	}

	if err := item.Receive(line.Quantity, line.UnitCost); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, item); err != nil {
		return nil, err
	}
	itemID := item.ID
	line.InventoryID = &itemID

	return &ReceivedLine{
		InventoryID: item.ID,
		UPC:         item.UPC,
		Added:       line.Quantity,
		NewQuantity: item.Quantity,
		Created:     created,
	}, nil
}

func matchInventory(ctx context.Context, repo inventory.Repository, line *invoice.LineItem) (*inventory.Item, error) {
	if line.InventoryID != nil {
		item, err := repo.FindByID(ctx, *line.InventoryID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if upc := inventory.NormalizeUPC(line.UPC); upc != "" {
		item, err := repo.FindByUPC(ctx, upc)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// Pay marks a pending or received invoice paid
func (s *InvoiceService) Pay(ctx context.Context, id int64) (*InvoiceResponse, error) {
	return s.transition(ctx, id, (*invoice.Invoice).MarkPaid, "Invoice paid")
}

// Cancel cancels a pending invoice
func (s *InvoiceService) Cancel(ctx context.Context, id int64) (*InvoiceResponse, error) {
	return s.transition(ctx, id, (*invoice.Invoice).Cancel, "Invoice cancelled")
}

func (s *InvoiceService) transition(ctx context.Context, id int64, apply func(*invoice.Invoice) error, msg string) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, s.invoiceRepo, id)
	if err != nil {
		return nil, err
	}
	if err := apply(inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.logger.Info(msg, zap.Int64("invoice_id", inv.ID), zap.String("status", inv.Status.String()))
	return s.respond(ctx, inv), nil
}

func (s *InvoiceService) checkUnique(ctx context.Context, inv *invoice.Invoice) error {
	taken, err := s.invoiceRepo.ExistsByNumber(ctx, inv.InvoiceNumber, inv.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.AlreadyExists("Invoice", "invoice_number", inv.InvoiceNumber)
	}
	return nil
}

func (s *InvoiceService) checkVendor(ctx context.Context, vendorID *int64) error {
	if vendorID == nil || s.vendorRepo == nil {
		return nil
	}
	if _, err := s.vendorRepo.FindByID(ctx, *vendorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.InvalidInput(fmt.Sprintf("Vendor %d does not exist", *vendorID))
		}
		return err
	}
	return nil
}

// parseDate accepts only ISO dates; CSV imports normalise their looser formats before calling in
func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, shared.InvalidInput(fmt.Sprintf("Invalid %s '%s', expected YYYY-MM-DD", field, raw))
	}
	return t, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
