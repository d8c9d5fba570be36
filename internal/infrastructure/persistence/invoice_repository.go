package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements invoice.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&inv).Error; err != nil {
		return nil, translateError(err, "Invoice")
	}
	return &inv, nil
}

// FindByNumber finds an invoice by its number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("invoice_number = ?", strings.TrimSpace(invoiceNumber)).
		First(&inv).Error; err != nil {
		return nil, translateError(err, "Invoice")
	}
	return &inv, nil
}

// FindAll finds invoices matching the filter, without lines
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoice.Invoice, error) {
	var invoices []invoice.Invoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&invoice.Invoice{}), filter)
	query = orderBy(query, filter, InvoiceSortFields, "invoice_date", "DESC")
	if err := paginate(query, filter).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&invoice.Invoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an invoice number is taken, ignoring excludeID
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&invoice.Invoice{}).
		Where("invoice_number = ?", strings.TrimSpace(invoiceNumber))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an invoice and synchronises its lines.
// Lines no longer on the invoice are deleted.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(inv).Error; err != nil {
			return err
		}

		keep := make([]int64, 0, len(inv.Items))
		for _, item := range inv.Items {
			if item.ID > 0 {
				keep = append(keep, item.ID)
			}
		}
		stale := tx.Where("invoice_id = ?", inv.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&invoice.LineItem{}).Error; err != nil {
			return err
		}

		for i := range inv.Items {
			inv.Items[i].InvoiceID = inv.ID
			if err := tx.Save(&inv.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return translateError(err, "Invoice")
}

// Delete deletes an invoice and its lines
func (r *GormInvoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&invoice.LineItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&invoice.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if strings.TrimSpace(filter.Search) != "" {
		cond, args := searchClause(r.db, filter.Search, "invoice_number")
		query = query.Where(cond, args...)
	}

	if vendorID, ok := filter.Filters[invoice.FilterVendorID].(int64); ok && vendorID > 0 {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status, ok := filter.Filters[invoice.FilterStatus].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if from, ok := filter.Filters[invoice.FilterFrom].(time.Time); ok && !from.IsZero() {
		query = query.Where("invoice_date >= ?", from)
	}
	if to, ok := filter.Filters[invoice.FilterTo].(time.Time); ok && !to.IsZero() {
		query = query.Where("invoice_date <= ?", to)
	}
	return query
}

// Ensure GormInvoiceRepository implements invoice.Repository
var _ invoice.Repository = (*GormInvoiceRepository)(nil)
