package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, now: time.Now}
}

// FindByID finds an item by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translateError(err, "Inventory item")
	}
	return &item, nil
}

// FindByUPC finds an item by its UPC
func (r *GormInventoryRepository) FindByUPC(ctx context.Context, upc string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("upc = ?", inventory.NormalizeUPC(upc)).
		First(&item).Error; err != nil {
		return nil, translateError(err, "Inventory item")
	}
	return &item, nil
}

// FindAll finds all items matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	query = orderBy(query, filter, InventorySortFields, "name", "ASC")
	if err := paginate(query, filter).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts items matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByVendor finds the items supplied by a vendor
func (r *GormInventoryRepository) FindByVendor(ctx context.Context, vendorID int64, filter shared.Filter) ([]inventory.Item, error) {
	return r.FindAll(ctx, filter.With(inventory.FilterVendorID, vendorID))
}

// ExistsByUPC checks if a UPC is taken, ignoring excludeID
func (r *GormInventoryRepository) ExistsByUPC(ctx context.Context, upc string, excludeID int64) (bool, error) {
	return r.exists(ctx, "upc = ?", inventory.NormalizeUPC(upc), excludeID)
}

// ExistsBySKU checks if a SKU is taken, ignoring excludeID
func (r *GormInventoryRepository) ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error) {
	return r.exists(ctx, "sku = ?", strings.TrimSpace(sku), excludeID)
}

func (r *GormInventoryRepository) exists(ctx context.Context, cond string, value string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Item{}).Where(cond, value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Categories lists distinct non-empty categories with item counts
func (r *GormInventoryRepository) Categories(ctx context.Context) ([]inventory.CategoryCount, error) {
	var rows []inventory.CategoryCount
	err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Select("category, COUNT(*) AS count").
		Where("category IS NOT NULL AND category <> ''").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates an item
func (r *GormInventoryRepository) Save(ctx context.Context, item *inventory.Item) error {
	return translateError(r.db.WithContext(ctx).Save(item).Error, "Inventory item")
}

// Delete deletes an item, its shopping-list rows and unlinks its invoice lines
func (r *GormInventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inventory_id = ?", id).Delete(&shopping.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&invoice.LineItem{}).Where("inventory_id = ?", id).Update("inventory_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if strings.TrimSpace(filter.Search) != "" {
		cond, args := searchClause(r.db, filter.Search, "name", "upc", "sku", "brand")
		query = query.Where(cond, args...)
	}

	if category, ok := filter.Filters[inventory.FilterCategory].(string); ok && category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if vendorID, ok := filter.Filters[inventory.FilterVendorID].(int64); ok && vendorID > 0 {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if threshold, ok := filter.Filters[inventory.FilterLowStock].(int); ok {
		query = query.Where("((min_stock > 0 AND quantity <= min_stock) OR (min_stock = 0 AND quantity <= ?))", threshold)
	}
	if days, ok := filter.Filters[inventory.FilterExpiringWithin].(int); ok && days >= 0 {
		now := r.now().UTC()
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
		query = query.Where("expiration_date IS NOT NULL AND expiration_date <= ?", cutoff)
	}
	return query
}

// Ensure GormInventoryRepository implements inventory.Repository
var _ inventory.Repository = (*GormInventoryRepository)(nil)
