package inventory

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// Filter keys understood by Repository.FindAll and Repository.Count
const (
	FilterCategory       = "category"
	FilterVendorID       = "vendor_id"
	FilterLowStock       = "low_stock"       // int fallback threshold
	FilterExpiringWithin = "expiring_within" // int days
)

// CategoryCount is one distinct category with the number of items in it
type CategoryCount struct {
	Category string
	Count    int64
}

// Repository defines the interface for inventory persistence
type Repository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByUPC finds an item by its UPC
	FindByUPC(ctx context.Context, upc string) (*Item, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindByVendor finds the items supplied by a vendor
	FindByVendor(ctx context.Context, vendorID int64, filter shared.Filter) ([]Item, error)

	// ExistsByUPC checks if a UPC is taken, ignoring excludeID
	ExistsByUPC(ctx context.Context, upc string, excludeID int64) (bool, error)

	// ExistsBySKU checks if a SKU is taken, ignoring excludeID
	ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error)

	// Categories lists distinct non-empty categories with item counts
	Categories(ctx context.Context) ([]CategoryCount, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id int64) error
}
