package invoice

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
)

// Filter keys understood by Repository.FindAll and Repository.Count
const (
	FilterVendorID = "vendor_id"
	FilterStatus   = "status"
	FilterFrom     = "from" // time.Time, inclusive invoice_date
	FilterTo       = "to"   // time.Time, inclusive invoice_date
)

// Repository defines the interface for invoice persistence.
// Lines are loaded and saved together with their invoice.
type Repository interface {
	// FindByID finds an invoice with its lines
	FindByID(ctx context.Context, id int64) (*Invoice, error)

	// FindByNumber finds an invoice by its number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices matching the filter, without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if an invoice number is taken, ignoring excludeID
	ExistsByNumber(ctx context.Context, invoiceNumber string, excludeID int64) (bool, error)

	// Save creates or updates an invoice and synchronises its lines
	Save(ctx context.Context, inv *Invoice) error

	// Delete deletes an invoice and its lines
	Delete(ctx context.Context, id int64) error
}
