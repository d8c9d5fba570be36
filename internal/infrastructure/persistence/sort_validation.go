package persistence

import (
	"strings"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"username":      true,
	"role":          true,
	"last_login_at": true,
}

// VendorSortFields contains allowed sort fields for vendors
var VendorSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"contact_name":   true,
	"lead_time_days": true,
}

// InventorySortFields contains allowed sort fields for inventory items
var InventorySortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"upc":             true,
	"sku":             true,
	"name":            true,
	"category":        true,
	"brand":           true,
	"cost_price":      true,
	"sell_price":      true,
	"quantity":        true,
	"min_stock":       true,
	"weekly_sales":    true,
	"expiration_date": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"due_date":       true,
	"status":         true,
	"total":          true,
}

// ShoppingSortFields contains allowed sort fields for the shopping list
var ShoppingSortFields = map[string]bool{
	"created_at": true,
	"item_name":  true,
	"quantity":   true,
}

// paginate applies offset/limit when the filter asks for a page
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}

// orderBy applies a whitelisted ORDER BY, falling back to defaultField
func orderBy(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField, defaultDir string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := defaultDir
	if filter.OrderDir != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	return query.Order(field + " " + dir)
}

// searchClause builds "(a LIKE ? ESCAPE '\' OR b LIKE ? ...)" with one arg per column
func searchClause(db *gorm.DB, search string, columns ...string) (string, []interface{}) {
	op := likeOperator(db)
	pattern := "%" + escapeLike(strings.TrimSpace(search)) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" "+op+` ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
