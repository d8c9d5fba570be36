package invoice

import (
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// LineItemResponse represents one invoice line in API responses
type LineItemResponse struct {
	ID          int64           `json:"id"`
	InventoryID *int64          `json:"inventory_id"`
	UPC         string          `json:"upc"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses. Items are only set on the detail view.
type InvoiceResponse struct {
	ID            int64              `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	VendorID      *int64             `json:"vendor_id"`
	VendorName    string             `json:"vendor_name,omitempty"`
	InvoiceDate   string             `json:"invoice_date"`
	DueDate       *string            `json:"due_date"`
	Status        string             `json:"status"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes"`
	ReceivedAt    *time.Time         `json:"received_at"`
	IsOverdue     bool               `json:"is_overdue"`
	ItemCount     int                `json:"item_count"`
	Items         []LineItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice; lines are included when loaded
func ToInvoiceResponse(inv *invoice.Invoice, vendorName string, now time.Time) InvoiceResponse {
	var due *string
	if inv.DueDate != nil {
		s := inv.DueDate.Format(dateLayout)
		due = &s
	}
	resp := InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		VendorID:      inv.VendorID,
		VendorName:    vendorName,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		DueDate:       due,
		Status:        inv.Status.String(),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		ReceivedAt:    inv.ReceivedAt,
		IsOverdue:     inv.IsOverdue(now),
		ItemCount:     inv.ItemCount(),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if len(inv.Items) > 0 {
		resp.Items = make([]LineItemResponse, len(inv.Items))
		for i, item := range inv.Items {
			resp.Items[i] = LineItemResponse{
				ID:          item.ID,
				InventoryID: item.InventoryID,
				UPC:         item.UPC,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitCost:    item.UnitCost,
				LineTotal:   item.LineTotal,
			}
		}
	}
	return resp
}

// ListFilter represents filter options for the invoice list
type ListFilter struct {
	VendorID *int64 `form:"vendor_id" binding:"omitempty,min=1"`
	Status   string `form:"status" binding:"omitempty,oneof=pending received paid cancelled"`
	From     string `form:"from"`
	To       string `form:"to"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemRequest is one invoice line in a request body
type LineItemRequest struct {
	InventoryID *int64          `json:"inventory_id" binding:"omitempty,min=1"`
	UPC         string          `json:"upc" binding:"max=50"`
	Description string          `json:"description" binding:"max=255"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// CreateInvoiceRequest is the body of POST /invoices
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required,max=100"`
	VendorID      *int64            `json:"vendor_id" binding:"omitempty,min=1"`
	InvoiceDate   string            `json:"invoice_date" binding:"required"`
	DueDate       *string           `json:"due_date"`
	Tax           *decimal.Decimal  `json:"tax"`
	Notes         string            `json:"notes"`
	Items         []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest is a partial header update. When Items is set the line set is replaced.
// vendor_id 0 and an empty due_date clear those fields.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string            `json:"invoice_number" binding:"omitempty,max=100"`
	VendorID      *int64             `json:"vendor_id"`
	InvoiceDate   *string            `json:"invoice_date"`
	DueDate       *string            `json:"due_date"`
	Tax           *decimal.Decimal   `json:"tax"`
	Notes         *string            `json:"notes"`
	Items         *[]LineItemRequest `json:"items"`
}

// ReceivedLine reports what receiving did to one inventory row
type ReceivedLine struct {
	InventoryID int64  `json:"inventory_id"`
	UPC         string `json:"upc"`
	Added       int    `json:"added"`
	NewQuantity int    `json:"new_quantity"`
	Created     bool   `json:"created"`
}

// ReceiveResponse is the result of receiving an invoice
type ReceiveResponse struct {
	Invoice  InvoiceResponse `json:"invoice"`
	Received []ReceivedLine  `json:"received"`
}
