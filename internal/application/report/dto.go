package report

import (
	"time"

	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/report"
	"github.com/shopspring/decimal"
)

// Params carries the query options every report understands.
// Each report reads only the fields it needs.
type Params struct {
	MinMargin string `form:"min_margin"`
	MaxMargin string `form:"max_margin"`
	From      string `form:"from"`
	To        string `form:"to"`
	Days      *int   `form:"days" binding:"omitempty,min=0,max=3650"`
	Priority  string `form:"priority" binding:"omitempty,priority"`
}

// DashboardResponse is the body of GET /reports/dashboard
type DashboardResponse struct {
	Inventory       report.InventoryTotals `json:"inventory"`
	VendorCount     int64                  `json:"vendor_count"`
	PendingInvoices report.InvoiceTotals   `json:"pending_invoices"`
	PendingShopping int64                  `json:"pending_shopping"`
	ExpiringWindow  int                    `json:"expiring_window_days"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// InventoryValueResponse is value by category plus grand totals
type InventoryValueResponse struct {
	Categories      []report.CategoryValue `json:"categories"`
	TotalItems      int64                  `json:"total_items"`
	TotalUnits      int64                  `json:"total_units"`
	CostValue       decimal.Decimal        `json:"cost_value"`
	RetailValue     decimal.Decimal        `json:"retail_value"`
	PotentialProfit decimal.Decimal        `json:"potential_profit"`
}

// MarginLine is one item's margin
type MarginLine struct {
	ID            int64           `json:"id"`
	UPC           string          `json:"upc"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellPrice     decimal.Decimal `json:"sell_price"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// CategoryMargin is the average margin of one category
type CategoryMargin struct {
	Category             string          `json:"category"`
	ItemCount            int             `json:"item_count"`
	AverageMarginPercent decimal.Decimal `json:"average_margin_percent"`
}

// MarginsResponse is the body of GET /reports/margins
type MarginsResponse struct {
	Items                []MarginLine     `json:"items"`
	Categories           []CategoryMargin `json:"categories"`
	AverageMarginPercent decimal.Decimal  `json:"average_margin_percent"`
}

// VendorSpendResponse is the body of GET /reports/vendor-spend
type VendorSpendResponse struct {
	From        *string              `json:"from"`
	To          *string              `json:"to"`
	Vendors     []report.VendorSpend `json:"vendors"`
	Total       decimal.Decimal      `json:"total"`
	Paid        decimal.Decimal      `json:"paid"`
	Outstanding decimal.Decimal      `json:"outstanding"`
}

// LowStockReportResponse lists low-stock items with their reorder priority
type LowStockReportResponse struct {
	Threshold int                                `json:"threshold"`
	Items     []settingsapp.ReorderPointResponse `json:"items"`
	Summary   map[string]int                     `json:"summary"`
}

// ExpiringLine is one item nearing or past its expiration date
type ExpiringLine struct {
	ID             int64           `json:"id"`
	UPC            string          `json:"upc"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	ExpirationDate string          `json:"expiration_date"`
	DaysLeft       int             `json:"days_left"`
	Expired        bool            `json:"expired"`
	CostValue      decimal.Decimal `json:"cost_value"`
}

// ExpiringReportResponse is the body of GET /reports/expiring
type ExpiringReportResponse struct {
	Days         int             `json:"days"`
	Items        []ExpiringLine  `json:"items"`
	ExpiredCount int             `json:"expired_count"`
	ValueAtRisk  decimal.Decimal `json:"value_at_risk"`
}

// ExportFile is a rendered report ready to download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchiveResponse is the body of POST /reports/:type/archive
type ArchiveResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
