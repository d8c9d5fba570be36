package partner

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by its ID
	FindByID(ctx context.Context, id int64) (*Vendor, error)

	// FindByName finds a vendor by name, case-insensitively
	FindByName(ctx context.Context, name string) (*Vendor, error)

	// FindAll finds all vendors matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// Count counts vendors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a vendor name is taken, ignoring excludeID
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// CountItems counts the inventory rows supplied by the vendor
	CountItems(ctx context.Context, id int64) (int64, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, v *Vendor) error

	// Delete deletes a vendor
	Delete(ctx context.Context, id int64) error
}
