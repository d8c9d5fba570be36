package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

// SettingsProvider supplies the current store settings
type SettingsProvider interface {
	Values(ctx context.Context) (settings.Values, error)
}

// InventoryService handles inventory item operations
type InventoryService struct {
	itemRepo   inventory.Repository
	vendorRepo partner.VendorRepository
	settings   SettingsProvider
	importCfg  ImportConfig
	logger     *zap.Logger
	now        func() time.Time
}

// ImportConfig bounds bulk and CSV imports
type ImportConfig struct {
	MaxErrors int
	MaxRows   int
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	itemRepo inventory.Repository,
	vendorRepo partner.VendorRepository,
	settingsProvider SettingsProvider,
	importCfg ImportConfig,
	logger *zap.Logger,
) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		itemRepo:   itemRepo,
		vendorRepo: vendorRepo,
		settings:   settingsProvider,
		importCfg:  importCfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *InventoryService) values(ctx context.Context) (settings.Values, error) {
	if s.settings == nil {
		return settings.DefaultValues(), nil
	}
	return s.settings.Values(ctx)
}

func (s *InventoryService) toResponses(items []inventory.Item, lowThreshold int) []ItemResponse {
	now := s.now()
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i], lowThreshold, now)
	}
	return out
}

// BuildFilter converts list query parameters to a repository filter
func (s *InventoryService) BuildFilter(ctx context.Context, f ListFilter) (shared.Filter, error) {
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

	if f.Category != "" {
		filter.Filters[inventory.FilterCategory] = inventory.NormalizeCategory(f.Category)
	}
	if f.VendorID != nil {
		filter.Filters[inventory.FilterVendorID] = *f.VendorID
	}
	if f.LowStock {
		v, err := s.values(ctx)
		if err != nil {
			return filter, err
		}
		filter.Filters[inventory.FilterLowStock] = v.LowStockThreshold
	}
	if f.ExpiringWithin != nil {
		filter.Filters[inventory.FilterExpiringWithin] = *f.ExpiringWithin
	}
	return filter, nil
}

// List returns a page of items
func (s *InventoryService) List(ctx context.Context, f ListFilter) (*shared.Paginated[ItemResponse], error) {
	filter, err := s.BuildFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(s.toResponses(items, v.LowStockThreshold), total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByID returns one item
func (s *InventoryService) GetByID(ctx context.Context, id int64) (*ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, item)
}

// GetByUPC looks an item up by its barcode
func (s *InventoryService) GetByUPC(ctx context.Context, upc string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByUPC(ctx, inventory.NormalizeUPC(upc))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Inventory item")
		}
		return nil, err
	}
	return s.respond(ctx, item)
}

func (s *InventoryService) findItem(ctx context.Context, id int64) (*inventory.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Inventory item")
		}
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) respond(ctx context.Context, item *inventory.Item) (*ItemResponse, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item, v.LowStockThreshold, s.now())
	return &resp, nil
}

// Create creates a new item. A UPC or SKU already in use is rejected.
func (s *InventoryService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := s.buildItem(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Inventory item created", zap.Int64("item_id", item.ID), zap.String("upc", item.UPC))
	return s.respond(ctx, item)
}

// buildItem validates a create request into a new, unsaved item
func (s *InventoryService) buildItem(ctx context.Context, req CreateItemRequest) (*inventory.Item, error) {
	item, err := inventory.NewItem(req.UPC, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.applyCreate(ctx, item, req); err != nil {
		return nil, err
	}
	return item, nil
}

// applyCreate copies every field of a create request onto item, UPC excepted
func (s *InventoryService) applyCreate(ctx context.Context, item *inventory.Item, req CreateItemRequest) error {
	if err := item.Rename(req.Name); err != nil {
		return err
	}
	if err := item.SetSKU(req.SKU); err != nil {
		return err
	}
	item.Description = strings.TrimSpace(req.Description)
	item.SetCategory(req.Category)
	item.Brand = strings.TrimSpace(req.Brand)
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		item.Unit = unit
	}
	item.Location = strings.TrimSpace(req.Location)
	if err := item.SetPricing(req.CostPrice, req.SellPrice); err != nil {
		return err
	}
	if err := item.SetQuantity(req.Quantity); err != nil {
		return err
	}
	if err := item.SetMinStock(req.MinStock); err != nil {
		return err
	}
	if err := item.SetWeeklySales(req.WeeklySales); err != nil {
		return err
	}
	exp, err := parseOptionalDate(req.ExpirationDate)
	if err != nil {
		return err
	}
	item.SetExpiration(exp)
	if err := s.checkVendor(ctx, req.VendorID); err != nil {
		return err
	}
	item.AssignVendor(req.VendorID)
	return nil
}

// Update applies a partial update
func (s *InventoryService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UPC != nil {
		if err := item.ChangeUPC(*req.UPC); err != nil {
			return nil, err
		}
	}
	if req.SKU != nil {
		if err := item.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := item.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		item.SetCategory(*req.Category)
	}
	if req.Brand != nil {
		item.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Location != nil {
		item.Location = strings.TrimSpace(*req.Location)
	}
	if req.CostPrice != nil || req.SellPrice != nil {
		cost, sell := item.CostPrice, item.SellPrice
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.SellPrice != nil {
			sell = *req.SellPrice
		}
		if err := item.SetPricing(cost, sell); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		if err := item.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := item.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	if req.WeeklySales != nil {
		if err := item.SetWeeklySales(*req.WeeklySales); err != nil {
			return nil, err
		}
	}
	if req.ExpirationDate != nil {
		exp, err := parseOptionalDate(req.ExpirationDate)
		if err != nil {
			return nil, err
		}
		item.SetExpiration(exp)
	}
	if req.VendorID != nil {
		vendorID := req.VendorID
		if *vendorID == 0 {
			vendorID = nil
		}
		if err := s.checkVendor(ctx, vendorID); err != nil {
			return nil, err
		}
		item.AssignVendor(vendorID)
	}

	if err := s.checkUnique(ctx, item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return s.respond(ctx, item)
}

// AdjustQuantity moves stock by delta or sets it to quantity. Stock never goes negative.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id int64, req AdjustQuantityRequest) (*ItemResponse, error) {
	if (req.Delta == nil) == (req.Quantity == nil) {
		return nil, shared.InvalidInput("Provide exactly one of delta or quantity")
	}

	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	before := item.Quantity

	if req.Delta != nil {
		err = item.AdjustQuantity(*req.Delta)
	} else {
		err = item.SetQuantity(*req.Quantity)
	}
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Inventory quantity adjusted",
		zap.Int64("item_id", item.ID),
		zap.Int("before", before),
		zap.Int("after", item.Quantity),
		zap.String("reason", req.Reason))
	return s.respond(ctx, item)
}

// Delete removes an item
func (s *InventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Inventory item")
		}
		return err
	}
	s.logger.Info("Inventory item deleted", zap.Int64("item_id", id))
	return nil
}

// Categories lists the distinct categories with item counts
func (s *InventoryService) Categories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.itemRepo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{Category: c.Category, Count: c.Count}
	}
	return out, nil
}

// LowStock lists items at or below their minimum, or the store threshold when they have none
func (s *InventoryService) LowStock(ctx context.Context) (*LowStockResponse, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	filter := shared.DefaultFilter().Unpaged().With(inventory.FilterLowStock, v.LowStockThreshold)
	filter.OrderBy = "quantity"
	filter.OrderDir = "asc"

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &LowStockResponse{Threshold: v.LowStockThreshold, Items: s.toResponses(items, v.LowStockThreshold)}, nil
}

// Expiring lists items expiring within days, already-expired ones included.
// A nil days uses the expiration_warning_days setting.
func (s *InventoryService) Expiring(ctx context.Context, days *int) (*ExpiringResponse, error) {
	v, err := s.values(ctx)
	if err != nil {
		return nil, err
	}
	window := v.ExpirationWarningDays
	if days != nil {
		if *days < 0 {
			return nil, shared.InvalidInput("days cannot be negative")
		}
		window = *days
	}

	filter := shared.DefaultFilter().Unpaged().With(inventory.FilterExpiringWithin, window)
	filter.OrderBy = "expiration_date"
	filter.OrderDir = "asc"

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ExpiringResponse{Days: window, Items: s.toResponses(items, v.LowStockThreshold)}, nil
}

func (s *InventoryService) checkUnique(ctx context.Context, item *inventory.Item) error {
	taken, err := s.itemRepo.ExistsByUPC(ctx, item.UPC, item.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.AlreadyExists("Inventory item", "upc", item.UPC)
	}
	if item.SKU != nil {
		taken, err := s.itemRepo.ExistsBySKU(ctx, *item.SKU, item.ID)
		if err != nil {
			return err
		}
		if taken {
			return shared.AlreadyExists("Inventory item", "sku", *item.SKU)
		}
	}
	return nil
}

func (s *InventoryService) checkVendor(ctx context.Context, vendorID *int64) error {
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

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, ok := csvimport.ParseDate(*raw)
	if !ok {
		return nil, shared.InvalidInput(fmt.Sprintf("Invalid date '%s', expected YYYY-MM-DD", *raw))
	}
	return &t, nil
}

