package shopping

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// Filter keys understood by Repository.FindAll and Repository.Count
const (
	FilterPurchased = "purchased" // bool
	FilterPriority  = "priority"
	FilterVendorID  = "vendor_id"
)

// Repository defines the interface for shopping list persistence
type Repository interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindAll finds entries matching the filter, most urgent first
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// Count counts entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// PendingInventoryIDs returns the inventory ids already on the unpurchased list
	PendingInventoryIDs(ctx context.Context) (map[int64]bool, error)

	// Save creates or updates an entry
	Save(ctx context.Context, item *Item) error

	// Delete deletes an entry
	Delete(ctx context.Context, id int64) error

	// DeletePurchased deletes every purchased entry and returns how many were removed
	DeletePurchased(ctx context.Context) (int64, error)
}
