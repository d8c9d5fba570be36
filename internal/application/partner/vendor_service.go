package partner

import (
	"context"
	"errors"
	"strings"
	"time"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorService handles vendor operations
type VendorService struct {
	vendorRepo  partner.VendorRepository
	itemRepo    inventory.Repository
	invoiceRepo invoice.Repository
	settings    inventoryapp.SettingsProvider
	importCfg   inventoryapp.ImportConfig
	logger      *zap.Logger
	now         func() time.Time
}

// NewVendorService creates a new VendorService
func NewVendorService(
	vendorRepo partner.VendorRepository,
	itemRepo inventory.Repository,
	invoiceRepo invoice.Repository,
	settingsProvider inventoryapp.SettingsProvider,
	importCfg inventoryapp.ImportConfig,
	logger *zap.Logger,
) *VendorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorService{
		vendorRepo:  vendorRepo,
		itemRepo:    itemRepo,
		invoiceRepo: invoiceRepo,
		settings:    settingsProvider,
		importCfg:   importCfg,
		logger:      logger,
		now:         time.Now,
	}
}

func buildFilter(f ListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
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
	return filter
}

// List returns a page of vendors
func (s *VendorService) List(ctx context.Context, f ListFilter) (*shared.Paginated[VendorResponse], error) {
	filter := buildFilter(f)
	vendors, err := s.vendorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.vendorRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	page := shared.NewPaginated(out, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns one vendor with the number of items it supplies
func (s *VendorService) GetByID(ctx context.Context, id int64) (*VendorResponse, error) {
	v, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.vendorRepo.CountItems(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVendorResponse(v)
	resp.ItemCount = &count
	return &resp, nil
}

func (s *VendorService) findVendor(ctx context.Context, id int64) (*partner.Vendor, error) {
	v, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Vendor")
		}
		return nil, err
	}
	return v, nil
}

// Create creates a vendor; names are unique case-insensitively
func (s *VendorService) Create(ctx context.Context, req CreateVendorRequest) (*VendorResponse, error) {
	v, err := buildVendor(req)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, v); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor created", zap.Int64("vendor_id", v.ID), zap.String("name", v.Name))
	resp := ToVendorResponse(v)
	return &resp, nil
}

func buildVendor(req CreateVendorRequest) (*partner.Vendor, error) {
	v, err := partner.NewVendor(req.Name)
	if err != nil {
		return nil, err
	}
	if err := applyCreate(v, req); err != nil {
		return nil, err
	}
	return v, nil
}

// applyCreate copies the optional fields of a create request onto v
func applyCreate(v *partner.Vendor, req CreateVendorRequest) error {
	if err := v.Rename(req.Name); err != nil {
		return err
	}
	if err := v.SetContact(req.ContactName, req.Email, req.Phone); err != nil {
		return err
	}
	v.Address = strings.TrimSpace(req.Address)
	v.Website = strings.TrimSpace(req.Website)
	v.PaymentTerms = strings.TrimSpace(req.PaymentTerms)
	v.Notes = strings.TrimSpace(req.Notes)
	if req.LeadTimeDays != nil {
		if err := v.SetLeadTime(*req.LeadTimeDays); err != nil {
			return err
		}
	}
	return nil
}

// Update applies a partial update
func (s *VendorService) Update(ctx context.Context, id int64, req UpdateVendorRequest) (*VendorResponse, error) {
	v, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := v.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.ContactName != nil || req.Email != nil || req.Phone != nil {
		contact, email, phone := v.ContactName, v.Email, v.Phone
		if req.ContactName != nil {
			contact = *req.ContactName
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := v.SetContact(contact, email, phone); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		v.Address = strings.TrimSpace(*req.Address)
	}
	if req.Website != nil {
		v.Website = strings.TrimSpace(*req.Website)
	}
	if req.PaymentTerms != nil {
		v.PaymentTerms = strings.TrimSpace(*req.PaymentTerms)
	}
	if req.Notes != nil {
		v.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.LeadTimeDays != nil {
		if err := v.SetLeadTime(*req.LeadTimeDays); err != nil {
			return nil, err
		}
	}
	v.Touch()

	if err := s.checkUnique(ctx, v); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVendorResponse(v)
	return &resp, nil
}

// Delete removes a vendor. Items and invoices that referenced it keep existing without a vendor.
func (s *VendorService) Delete(ctx context.Context, id int64) error {
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Vendor")
		}
		return err
	}
	s.logger.Info("Vendor deleted", zap.Int64("vendor_id", id))
	return nil
}

// Items lists the inventory supplied by a vendor
func (s *VendorService) Items(ctx context.Context, id int64) ([]inventoryapp.ItemResponse, error) {
	if _, err := s.findVendor(ctx, id); err != nil {
		return nil, err
	}
	filter := shared.DefaultFilter().Unpaged()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	items, err := s.itemRepo.FindByVendor(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	v := settings.DefaultValues()
	if s.settings != nil {
		if v, err = s.settings.Values(ctx); err != nil {
			return nil, err
		}
	}
	now := s.now()
	out := make([]inventoryapp.ItemResponse, len(items))
	for i := range items {
		out[i] = inventoryapp.ToItemResponse(&items[i], v.LowStockThreshold, now)
	}
	return out, nil
}

// Invoices lists the invoices from a vendor, newest first
func (s *VendorService) Invoices(ctx context.Context, id int64) ([]invoiceapp.InvoiceResponse, error) {
	v, err := s.findVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	filter := shared.DefaultFilter().Unpaged().With(invoice.FilterVendorID, id)
	filter.OrderBy = "invoice_date"
	filter.OrderDir = "desc"
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]invoiceapp.InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = invoiceapp.ToInvoiceResponse(&invoices[i], v.Name, now)
	}
	return out, nil
}

func (s *VendorService) checkUnique(ctx context.Context, v *partner.Vendor) error {
	taken, err := s.vendorRepo.ExistsByName(ctx, v.Name, v.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.AlreadyExists("Vendor", "name", v.Name)
	}
	return nil
}
