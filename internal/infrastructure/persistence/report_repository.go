package persistence

import (
	"context"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with aggregate SQL
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// InventoryTotals aggregates stock counts and values
func (r *GormReportRepository) InventoryTotals(ctx context.Context, lowStockThreshold int, expiringBefore time.Time) (*report.InventoryTotals, error) {
	var totals report.InventoryTotals
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(`COUNT(*) AS total_items,
			COALESCE(SUM(quantity), 0) AS total_units,
			COALESCE(SUM(quantity * cost_price), 0) AS cost_value,
			COALESCE(SUM(quantity * sell_price), 0) AS retail_value,
			COALESCE(SUM(CASE WHEN (min_stock > 0 AND quantity <= min_stock) OR (min_stock = 0 AND quantity <= ?) THEN 1 ELSE 0 END), 0) AS low_stock_count,
			COALESCE(SUM(CASE WHEN expiration_date IS NOT NULL AND expiration_date <= ? THEN 1 ELSE 0 END), 0) AS expiring_count`,
			lowStockThreshold, expiringBefore).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// InvoiceTotalsByStatus sums invoice totals in one status
func (r *GormReportRepository) InvoiceTotalsByStatus(ctx context.Context, status string) (*report.InvoiceTotals, error) {
	var totals report.InvoiceTotals
	err := r.db.WithContext(ctx).Model(&invoice.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS amount").
		Where("status = ?", status).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// CountVendors counts vendors
func (r *GormReportRepository) CountVendors(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Vendor{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingShopping counts unpurchased shopping-list rows
func (r *GormReportRepository) CountPendingShopping(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&shopping.Item{}).
		Where("purchased = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ValueByCategory groups inventory value by category, uncategorised items last
func (r *GormReportRepository) ValueByCategory(ctx context.Context) ([]report.CategoryValue, error) {
	var rows []report.CategoryValue
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select(`COALESCE(NULLIF(category, ''), 'Uncategorized') AS category,
			COUNT(*) AS item_count,
			COALESCE(SUM(quantity), 0) AS units,
			COALESCE(SUM(quantity * cost_price), 0) AS cost_value,
			COALESCE(SUM(quantity * sell_price), 0) AS retail_value,
			COALESCE(SUM(quantity * (sell_price - cost_price)), 0) AS potential_profit`).
		Group("COALESCE(NULLIF(category, ''), 'Uncategorized')").
		Order("retail_value DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// VendorSpend groups non-cancelled invoice totals by vendor within optional invoice_date bounds
func (r *GormReportRepository) VendorSpend(ctx context.Context, from, to *time.Time) ([]report.VendorSpend, error) {
	var rows []report.VendorSpend
	query := r.db.WithContext(ctx).Table("invoices AS i").
		Select(`i.vendor_id AS vendor_id,
			COALESCE(v.name, 'Unassigned') AS vendor_name,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(i.total), 0) AS total,
			COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.total ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN i.status <> 'paid' THEN i.total ELSE 0 END), 0) AS outstanding`).
		Joins("LEFT JOIN vendors AS v ON v.id = i.vendor_id").
		Where("i.status <> ?", string(invoice.StatusCancelled))
	if from != nil {
		query = query.Where("i.invoice_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("i.invoice_date <= ?", *to)
	}
	err := query.Group("i.vendor_id, v.name").Order("total DESC").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
