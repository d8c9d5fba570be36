package shopping

import (
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shopping"
)

// ItemResponse represents a shopping-list entry in API responses
type ItemResponse struct {
	ID          int64      `json:"id"`
	InventoryID *int64     `json:"inventory_id"`
	VendorID    *int64     `json:"vendor_id"`
	ItemName    string     `json:"item_name"`
	UPC         string     `json:"upc"`
	Quantity    int        `json:"quantity"`
	Priority    string     `json:"priority"`
	Notes       string     `json:"notes"`
	Purchased   bool       `json:"purchased"`
	PurchasedAt *time.Time `json:"purchased_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToItemResponse converts a domain entry
func ToItemResponse(i *shopping.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		InventoryID: i.InventoryID,
		VendorID:    i.VendorID,
		ItemName:    i.ItemName,
		UPC:         i.UPC,
		Quantity:    i.Quantity,
		Priority:    i.Priority.String(),
		Notes:       i.Notes,
		Purchased:   i.Purchased,
		PurchasedAt: i.PurchasedAt,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ListFilter represents filter options for the shopping list
type ListFilter struct {
	Purchased *bool  `form:"purchased"`
	Priority  string `form:"priority" binding:"omitempty,priority"`
	VendorID  *int64 `form:"vendor_id" binding:"omitempty,min=1"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// CreateItemRequest is the body of POST /shopping-list.
// With inventory_id set, item_name, upc and vendor_id default from the inventory row.
type CreateItemRequest struct {
	InventoryID *int64 `json:"inventory_id" binding:"omitempty,min=1"`
	ItemName    string `json:"item_name" binding:"max=200"`
	UPC         string `json:"upc" binding:"max=50"`
	VendorID    *int64 `json:"vendor_id" binding:"omitempty,min=1"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1"`
	Priority    string `json:"priority" binding:"omitempty,priority"`
	Notes       string `json:"notes"`
}

// UpdateItemRequest is a partial update; nil fields are left unchanged
type UpdateItemRequest struct {
	ItemName *string `json:"item_name" binding:"omitempty,max=200"`
	UPC      *string `json:"upc" binding:"omitempty,max=50"`
	VendorID *int64  `json:"vendor_id"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	Priority *string `json:"priority" binding:"omitempty,priority"`
	Notes    *string `json:"notes"`
}

// MarkPurchasedRequest is the body of PATCH /shopping-list/:id/purchased
type MarkPurchasedRequest struct {
	Purchased *bool `json:"purchased" binding:"required"`
}

// ClearPurchasedResponse reports how many purchased entries were removed
type ClearPurchasedResponse struct {
	Deleted int64 `json:"deleted"`
}

// GenerateResponse reports what a reorder run added to the list
type GenerateResponse struct {
	Added   int            `json:"added"`
	Skipped int            `json:"skipped"`
	Items   []ItemResponse `json:"items"`
}
