package partner

import (
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/partner"
)

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Website      string    `json:"website"`
	PaymentTerms string    `json:"payment_terms"`
	LeadTimeDays int       `json:"lead_time_days"`
	Notes        string    `json:"notes"`
	ItemCount    *int64    `json:"item_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:           v.ID,
		Name:         v.Name,
		ContactName:  v.ContactName,
		Email:        v.Email,
		Phone:        v.Phone,
		Address:      v.Address,
		Website:      v.Website,
		PaymentTerms: v.PaymentTerms,
		LeadTimeDays: v.LeadTimeDays,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// ListFilter represents filter options for the vendor list
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateVendorRequest is the body of POST /vendors and one row of a vendor import
type CreateVendorRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email,max=200"`
	Phone        string `json:"phone" binding:"max=50"`
	Address      string `json:"address"`
	Website      string `json:"website" binding:"max=255"`
	PaymentTerms string `json:"payment_terms" binding:"max=100"`
	LeadTimeDays *int   `json:"lead_time_days" binding:"omitempty,min=0"`
	Notes        string `json:"notes"`
}

// UpdateVendorRequest is a partial update; nil fields are left unchanged
type UpdateVendorRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	Email        *string `json:"email" binding:"omitempty,max=200"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Address      *string `json:"address"`
	Website      *string `json:"website" binding:"omitempty,max=255"`
	PaymentTerms *string `json:"payment_terms" binding:"omitempty,max=100"`
	LeadTimeDays *int    `json:"lead_time_days" binding:"omitempty,min=0"`
	Notes        *string `json:"notes"`
}
