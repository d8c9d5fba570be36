package shopping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"go.uber.org/zap"
)

// ShoppingService manages the shopping list and fills it from reorder points
type ShoppingService struct {
	repo     shopping.Repository
	itemRepo inventory.Repository
	settings inventoryapp.SettingsProvider
	logger   *zap.Logger
}

// NewShoppingService creates a new ShoppingService
func NewShoppingService(
	repo shopping.Repository,
	itemRepo inventory.Repository,
	settingsProvider inventoryapp.SettingsProvider,
	logger *zap.Logger,
) *ShoppingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShoppingService{repo: repo, itemRepo: itemRepo, settings: settingsProvider, logger: logger}
}

func buildFilter(f ListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "priority"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Purchased != nil {
		filter.Filters[shopping.FilterPurchased] = *f.Purchased
	}
	if f.Priority != "" {
		filter.Filters[shopping.FilterPriority] = strings.ToLower(f.Priority)
	}
	if f.VendorID != nil {
		filter.Filters[shopping.FilterVendorID] = *f.VendorID
	}
	return filter
}

// List returns a page of entries, most urgent first
func (s *ShoppingService) List(ctx context.Context, f ListFilter) (*shared.Paginated[ItemResponse], error) {
	filter := buildFilter(f)
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(toResponses(items), total, filter.Page, filter.PageSize)
	return &page, nil
}

func toResponses(items []shopping.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

// GetByID returns one entry
func (s *ShoppingService) GetByID(ctx context.Context, id int64) (*ItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

func (s *ShoppingService) find(ctx context.Context, id int64) (*shopping.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Shopping list item")
		}
		return nil, err
	}
	return item, nil
}

// Create adds an entry. Fields left blank are taken from the linked inventory row.
func (s *ShoppingService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	name, upc, vendorID := req.ItemName, req.UPC, req.VendorID
	var stock *inventory.Item
	if req.InventoryID != nil {
		var err error
		stock, err = s.itemRepo.FindByID(ctx, *req.InventoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.InvalidInput(fmt.Sprintf("Inventory item %d does not exist", *req.InventoryID))
			}
			return nil, err
		}
		if strings.TrimSpace(name) == "" {
			name = stock.Name
		}
		if strings.TrimSpace(upc) == "" {
			upc = stock.UPC
		}
		if vendorID == nil {
			vendorID = stock.VendorID
		}
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item, err := shopping.NewItem(name, quantity, shopping.Priority(strings.ToLower(req.Priority)))
	if err != nil {
		return nil, err
	}
	if stock != nil {
		item.LinkInventory(stock.ID, upc, vendorID)
	} else {
		item.UPC = strings.TrimSpace(upc)
		item.VendorID = vendorID
	}
	item.SetNotes(req.Notes)

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Shopping list item added", zap.Int64("id", item.ID), zap.String("item_name", item.ItemName))
	resp := ToItemResponse(item)
	return &resp, nil
}

// Update applies a partial update
func (s *ShoppingService) Update(ctx context.Context, id int64, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ItemName != nil {
		if err := item.Rename(*req.ItemName); err != nil {
			return nil, err
		}
	}
	if req.UPC != nil {
		item.UPC = strings.TrimSpace(*req.UPC)
	}
	if req.VendorID != nil {
		if *req.VendorID == 0 {
			item.VendorID = nil
		} else {
			vendorID := *req.VendorID
			item.VendorID = &vendorID
		}
	}
	if req.Quantity != nil {
		if err := item.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if err := item.SetPriority(shopping.Priority(strings.ToLower(*req.Priority))); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		item.SetNotes(*req.Notes)
	}
	item.Touch()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete removes an entry
func (s *ShoppingService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Shopping list item")
		}
		return err
	}
	return nil
}

// MarkPurchased sets or clears the purchased flag
func (s *ShoppingService) MarkPurchased(ctx context.Context, id int64, purchased bool) (*ItemResponse, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	item.MarkPurchased(purchased)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ClearPurchased deletes every purchased entry
func (s *ShoppingService) ClearPurchased(ctx context.Context) (*ClearPurchasedResponse, error) {
	n, err := s.repo.DeletePurchased(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Purchased shopping list items cleared", zap.Int64("deleted", n))
	return &ClearPurchasedResponse{Deleted: n}, nil
}

// Generate adds an entry for every item whose reorder priority is above low
// and that is not already waiting on the list. Quantity is the suggested order.
func (s *ShoppingService) Generate(ctx context.Context) (*GenerateResponse, error) {
	v := settings.DefaultValues()
	if s.settings != nil {
		var err error
		if v, err = s.settings.Values(ctx); err != nil {
			return nil, err
		}
	}
	points, err := settingsapp.CalculateAll(ctx, s.itemRepo, v)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.PendingInventoryIDs(ctx)
	if err != nil {
		return nil, err
	}

	resp := &GenerateResponse{Items: make([]ItemResponse, 0)}
	for _, p := range points {
		if p.Priority == shopping.PriorityLow {
			continue
		}
		if pending[p.Item.ID] {
			resp.Skipped++
			continue
		}

		entry, err := shopping.NewItem(p.Item.Name, p.SuggestedOrder, p.Priority)
		if err != nil {
			return nil, err
		}
		entry.LinkInventory(p.Item.ID, p.Item.UPC, p.Item.VendorID)
		entry.SetNotes(fmt.Sprintf("Auto-generated: %d on hand, reorder point %s", p.Item.Quantity, p.ReorderPoint.String()))
		if err := s.repo.Save(ctx, entry); err != nil {
			return nil, err
		}
		pending[p.Item.ID] = true
		resp.Added++
		resp.Items = append(resp.Items, ToItemResponse(entry))
	}

	s.logger.Info("Shopping list generated", zap.Int("added", resp.Added), zap.Int("skipped", resp.Skipped))
	return resp, nil
}

// ExportCSV writes every entry matching the filter
func (s *ShoppingService) ExportCSV(ctx context.Context, f ListFilter, w io.Writer) error {
	items, err := s.repo.FindAll(ctx, buildFilter(f).Unpaged())
	if err != nil {
		return err
	}
	out, err := csvimport.NewWriter(w,
		"id", "item_name", "upc", "quantity", "priority", "vendor_id", "inventory_id", "purchased", "purchased_at", "notes")
	if err != nil {
		return err
	}
	for i := range items {
		item := &items[i]
		purchasedAt := ""
		if item.PurchasedAt != nil {
			purchasedAt = item.PurchasedAt.UTC().Format(time.RFC3339)
		}
		if err := out.Write(
			strconv.FormatInt(item.ID, 10),
			item.ItemName,
			item.UPC,
			strconv.Itoa(item.Quantity),
			item.Priority.String(),
			csvimport.FormatID(item.VendorID),
			csvimport.FormatID(item.InventoryID),
			strconv.FormatBool(item.Purchased),
			purchasedAt,
			item.Notes,
		); err != nil {
			return err
		}
	}
	return out.Flush()
}
