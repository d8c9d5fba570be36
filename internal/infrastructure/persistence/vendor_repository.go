package persistence

import (
	"context"
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
	"gorm.io/gorm"
)

// GormVendorRepository implements partner.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id int64) (*partner.Vendor, error) {
	var v partner.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, translateError(err, "Vendor")
	}
	return &v, nil
}

// FindByName finds a vendor by name, case-insensitively
func (r *GormVendorRepository) FindByName(ctx context.Context, name string) (*partner.Vendor, error) {
	var v partner.Vendor
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&v).Error; err != nil {
		return nil, translateError(err, "Vendor")
	}
	return &v, nil
}

// FindAll finds all vendors matching the filter
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Vendor, error) {
	var vendors []partner.Vendor
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Vendor{}), filter)
	query = orderBy(query, filter, VendorSortFields, "name", "ASC")
	if err := paginate(query, filter).Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Vendor{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a vendor name is taken, ignoring excludeID
func (r *GormVendorRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&partner.Vendor{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountItems counts the inventory rows supplied by the vendor
func (r *GormVendorRepository) CountItems(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.Item{}).
		Where("vendor_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, v *partner.Vendor) error {
	return translateError(r.db.WithContext(ctx).Save(v).Error, "Vendor")
}

// Delete deletes a vendor and clears the references to it
func (r *GormVendorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"inventory", "invoices", "shopping_list"} {
			if err := tx.Table(table).Where("vendor_id = ?", id).Update("vendor_id", nil).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&partner.Vendor{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if strings.TrimSpace(filter.Search) != "" {
		cond, args := searchClause(r.db, filter.Search, "name", "contact_name", "email", "phone")
		query = query.Where(cond, args...)
	}
	return query
}

// Ensure GormVendorRepository implements partner.VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
