package persistence

import (
	"context"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
	"gorm.io/gorm"
)

const priorityRankSQL = "CASE priority WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

// GormShoppingRepository implements shopping.Repository using GORM
type GormShoppingRepository struct {
	db *gorm.DB
}

// NewGormShoppingRepository creates a new GormShoppingRepository
func NewGormShoppingRepository(db *gorm.DB) *GormShoppingRepository {
	return &GormShoppingRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormShoppingRepository) FindByID(ctx context.Context, id int64) (*shopping.Item, error) {
	var item shopping.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translateError(err, "Shopping list item")
	}
	return &item, nil
}

// FindAll finds entries matching the filter, most urgent first
func (r *GormShoppingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.Item, error) {
	var items []shopping.Item
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shopping.Item{}), filter).Order(priorityRankSQL)
	query = orderBy(query, filter, ShoppingSortFields, "created_at", "ASC")
	if err := paginate(query, filter).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count counts entries matching the filter
func (r *GormShoppingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shopping.Item{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PendingInventoryIDs returns the inventory ids already on the unpurchased list
func (r *GormShoppingRepository) PendingInventoryIDs(ctx context.Context) (map[int64]bool, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&shopping.Item{}).
		Where("purchased = ? AND inventory_id IS NOT NULL", false).
		Distinct().
		Pluck("inventory_id", &ids).Error; err != nil {
		return nil, err
	}
	pending := make(map[int64]bool, len(ids))
	for _, id := range ids {
		pending[id] = true
	}
	return pending, nil
}

// Save creates or updates an entry
func (r *GormShoppingRepository) Save(ctx context.Context, item *shopping.Item) error {
	return translateError(r.db.WithContext(ctx).Save(item).Error, "Shopping list item")
}

// Delete deletes an entry
func (r *GormShoppingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&shopping.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeletePurchased deletes every purchased entry and returns how many were removed
func (r *GormShoppingRepository) DeletePurchased(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("purchased = ?", true).Delete(&shopping.Item{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormShoppingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if purchased, ok := filter.Filters[shopping.FilterPurchased].(bool); ok {
		query = query.Where("purchased = ?", purchased)
	}
	if priority, ok := filter.Filters[shopping.FilterPriority].(string); ok && priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if vendorID, ok := filter.Filters[shopping.FilterVendorID].(int64); ok && vendorID > 0 {
		query = query.Where("vendor_id = ?", vendorID)
	}
	return query
}

// Ensure GormShoppingRepository implements shopping.Repository
var _ shopping.Repository = (*GormShoppingRepository)(nil)
