package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Type names an exportable report
type Type string

const (
	TypeInventoryValue Type = "inventory-value"
	TypeMargins        Type = "margins"
	TypeVendorSpend    Type = "vendor-spend"
	TypeLowStock       Type = "low-stock"
	TypeExpiring       Type = "expiring"
)

// IsValid checks if the report type is exportable
func (t Type) IsValid() bool {
	switch t {
	case TypeInventoryValue, TypeMargins, TypeVendorSpend, TypeLowStock, TypeExpiring:
		return true
	}
	return false
}

// Format is an export file format
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// IsValid checks if the format is supported
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatPDF
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// InventoryTotals is the inventory half of the dashboard
type InventoryTotals struct {
	TotalItems    int64           `json:"total_items"`
	TotalUnits    int64           `json:"total_units"`
	CostValue     decimal.Decimal `json:"cost_value"`
	RetailValue   decimal.Decimal `json:"retail_value"`
	LowStockCount int64           `json:"low_stock_count"`
	ExpiringCount int64           `json:"expiring_count"`
}

// InvoiceTotals summarises invoices in one status
type InvoiceTotals struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryValue is inventory value grouped by category
type CategoryValue struct {
	Category        string          `json:"category"`
	ItemCount       int64           `json:"item_count"`
	Units           int64           `json:"units"`
	CostValue       decimal.Decimal `json:"cost_value"`
	RetailValue     decimal.Decimal `json:"retail_value"`
	PotentialProfit decimal.Decimal `json:"potential_profit"`
}

// VendorSpend is invoice spend grouped by vendor
type VendorSpend struct {
	VendorID     *int64          `json:"vendor_id"`
	VendorName   string          `json:"vendor_name"`
	InvoiceCount int64           `json:"invoice_count"`
	Total        decimal.Decimal `json:"total"`
	Paid         decimal.Decimal `json:"paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// Repository defines the aggregate queries reports run
type Repository interface {
	// InventoryTotals aggregates stock counts and values.
	// Items with min_stock 0 are low when quantity ≤ lowStockThreshold.
	InventoryTotals(ctx context.Context, lowStockThreshold int, expiringBefore time.Time) (*InventoryTotals, error)

	// InvoiceTotalsByStatus sums invoice totals in one status
	InvoiceTotalsByStatus(ctx context.Context, status string) (*InvoiceTotals, error)

	// CountVendors counts vendors
	CountVendors(ctx context.Context) (int64, error)

	// CountPendingShopping counts unpurchased shopping-list rows
	CountPendingShopping(ctx context.Context) (int64, error)

	// ValueByCategory groups inventory value by category
	ValueByCategory(ctx context.Context) ([]CategoryValue, error)

	// VendorSpend groups non-cancelled invoice totals by vendor within optional invoice_date bounds
	VendorSpend(ctx context.Context, from, to *time.Time) ([]VendorSpend, error)
}
