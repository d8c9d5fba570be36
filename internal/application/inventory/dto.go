package inventory

import (
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemResponse represents an inventory item in API responses, derived fields included
type ItemResponse struct {
	ID                  int64           `json:"id"`
	UPC                 string          `json:"upc"`
	SKU                 *string         `json:"sku"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	Brand               string          `json:"brand"`
	Unit                string          `json:"unit"`
	Location            string          `json:"location"`
	VendorID            *int64          `json:"vendor_id"`
	CostPrice           decimal.Decimal `json:"cost_price"`
	SellPrice           decimal.Decimal `json:"sell_price"`
	Quantity            int             `json:"quantity"`
	MinStock            int             `json:"min_stock"`
	WeeklySales         decimal.Decimal `json:"weekly_sales"`
	ExpirationDate      *string         `json:"expiration_date"`
	Margin              decimal.Decimal `json:"margin"`
	MarginPercent       decimal.Decimal `json:"margin_percent"`
	TotalValue          decimal.Decimal `json:"total_value"`
	RetailValue         decimal.Decimal `json:"retail_value"`
	IsLowStock          bool            `json:"is_low_stock"`
	DaysUntilExpiration *int            `json:"days_until_expiration"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain item; lowThreshold applies to items without min_stock
func ToItemResponse(item *inventory.Item, lowThreshold int, now time.Time) ItemResponse {
	var exp *string
	if item.ExpirationDate != nil {
		s := item.ExpirationDate.Format("2006-01-02")
		exp = &s
	}
	return ItemResponse{
		ID:                  item.ID,
		UPC:                 item.UPC,
		SKU:                 item.SKU,
		Name:                item.Name,
		Description:         item.Description,
		Category:            item.Category,
		Brand:               item.Brand,
		Unit:                item.Unit,
		Location:            item.Location,
		VendorID:            item.VendorID,
		CostPrice:           item.CostPrice,
		SellPrice:           item.SellPrice,
		Quantity:            item.Quantity,
		MinStock:            item.MinStock,
		WeeklySales:         item.WeeklySales,
		ExpirationDate:      exp,
		Margin:              item.Margin(),
		MarginPercent:       item.MarginPercent(),
		TotalValue:          item.TotalValue(),
		RetailValue:         item.RetailValue(),
		IsLowStock:          item.IsLowStock(lowThreshold),
		DaysUntilExpiration: item.DaysUntilExpiration(now),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

// ListFilter represents filter options for the inventory list
type ListFilter struct {
	Search         string `form:"search"`
	Category       string `form:"category"`
	VendorID       *int64 `form:"vendor_id" binding:"omitempty,min=1"`
	LowStock       bool   `form:"low_stock"`
	ExpiringWithin *int   `form:"expiring_within" binding:"omitempty,min=0,max=3650"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PageSize       int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateItemRequest is the body of POST /inventory and one row of a bulk import
type CreateItemRequest struct {
	UPC            string          `json:"upc" binding:"required,max=50"`
	SKU            string          `json:"sku" binding:"omitempty,max=50"`
	Name           string          `json:"name" binding:"required,max=200"`
	Description    string          `json:"description"`
	Category       string          `json:"category" binding:"max=100"`
	Brand          string          `json:"brand" binding:"max=100"`
	Unit           string          `json:"unit" binding:"max=20"`
	Location       string          `json:"location" binding:"max=100"`
	VendorID       *int64          `json:"vendor_id" binding:"omitempty,min=1"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellPrice      decimal.Decimal `json:"sell_price"`
	Quantity       int             `json:"quantity" binding:"min=0"`
	MinStock       int             `json:"min_stock" binding:"min=0"`
	WeeklySales    decimal.Decimal `json:"weekly_sales"`
	ExpirationDate *string         `json:"expiration_date"`
}

// UpdateItemRequest is a partial update; nil fields are left unchanged.
// An empty sku or expiration_date clears it; vendor_id 0 clears the vendor.
type UpdateItemRequest struct {
	UPC            *string          `json:"upc" binding:"omitempty,max=50"`
	SKU            *string          `json:"sku" binding:"omitempty,max=50"`
	Name           *string          `json:"name" binding:"omitempty,max=200"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	Brand          *string          `json:"brand" binding:"omitempty,max=100"`
	Unit           *string          `json:"unit" binding:"omitempty,max=20"`
	Location       *string          `json:"location" binding:"omitempty,max=100"`
	VendorID       *int64           `json:"vendor_id" binding:"omitempty,min=0"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	SellPrice      *decimal.Decimal `json:"sell_price"`
	Quantity       *int             `json:"quantity" binding:"omitempty,min=0"`
	MinStock       *int             `json:"min_stock" binding:"omitempty,min=0"`
	WeeklySales    *decimal.Decimal `json:"weekly_sales"`
	ExpirationDate *string          `json:"expiration_date"`
}

// AdjustQuantityRequest either moves stock by delta or sets it outright
type AdjustQuantityRequest struct {
	Delta    *int   `json:"delta"`
	Quantity *int   `json:"quantity" binding:"omitempty,min=0"`
	Reason   string `json:"reason" binding:"max=200"`
}

// CategoryResponse is one category with its item count
type CategoryResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// LowStockResponse lists low-stock items with the threshold used
type LowStockResponse struct {
	Threshold int            `json:"threshold"`
	Items     []ItemResponse `json:"items"`
}

// ExpiringResponse lists items expiring within Days
type ExpiringResponse struct {
	Days  int            `json:"days"`
	Items []ItemResponse `json:"items"`
}
