package settings

import (
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// SettingResponse represents one setting in API responses
type SettingResponse struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSettingResponse converts a domain setting
func ToSettingResponse(s *settings.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: s.Value, Description: s.Description, UpdatedAt: s.UpdatedAt}
}

// SettingsResponse lists every setting and the same data as a key→value map
type SettingsResponse struct {
	Settings []SettingResponse `json:"settings"`
	Values   map[string]string `json:"values"`
}

// UpdateSettingRequest is the body of PUT /settings/:key
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingsUsed echoes the settings a reorder calculation ran with
type SettingsUsed struct {
	ReorderMultiplier      decimal.Decimal `json:"reorder_multiplier"`
	LowStockThreshold      int             `json:"low_stock_threshold"`
	CriticalStockThreshold int             `json:"critical_stock_threshold"`
}

// ReorderPointResponse is the reorder calculation for one item
type ReorderPointResponse struct {
	InventoryID    int64           `json:"inventory_id"`
	UPC            string          `json:"upc"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	VendorID       *int64          `json:"vendor_id"`
	Quantity       int             `json:"quantity"`
	MinStock       int             `json:"min_stock"`
	WeeklySales    decimal.Decimal `json:"weekly_sales"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	Threshold      decimal.Decimal `json:"threshold"`
	SuggestedOrder int             `json:"suggested_order"`
	Priority       string          `json:"priority"`
}

// ToReorderPointResponse converts a calculated reorder point
func ToReorderPointResponse(p settings.ReorderPoint) ReorderPointResponse {
	return ReorderPointResponse{
		InventoryID:    p.Item.ID,
		UPC:            p.Item.UPC,
		Name:           p.Item.Name,
		Category:       p.Item.Category,
		VendorID:       p.Item.VendorID,
		Quantity:       p.Item.Quantity,
		MinStock:       p.Item.MinStock,
		WeeklySales:    p.Item.WeeklySales,
		ReorderPoint:   p.ReorderPoint,
		Threshold:      p.Threshold,
		SuggestedOrder: p.SuggestedOrder,
		Priority:       p.Priority.String(),
	}
}

// ReorderPointsResponse is the body of GET /settings/reorder-points
type ReorderPointsResponse struct {
	SettingsUsed SettingsUsed           `json:"settings_used"`
	Items        []ReorderPointResponse `json:"items"`
	Summary      map[string]int         `json:"summary"`
}
