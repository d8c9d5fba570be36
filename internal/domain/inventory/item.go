package inventory

import (
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var hundred = decimal.NewFromInt(100)

var categoryCaser = cases.Title(language.English)

// Item is one stocked product, keyed by its UPC
type Item struct {
	shared.BaseEntity
	UPC            string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SKU            *string         `gorm:"type:varchar(50);uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Category       string          `gorm:"type:varchar(100);index"`
	Brand          string          `gorm:"type:varchar(100)"`
	Unit           string          `gorm:"type:varchar(20);not null;default:'each'"`
	Location       string          `gorm:"type:varchar(100)"`
	VendorID       *int64          `gorm:"index"`
	CostPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SellPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Quantity       int             `gorm:"not null;default:0"`
	MinStock       int             `gorm:"not null;default:0"`
	WeeklySales    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	ExpirationDate *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory"
}

// NewItem creates a new inventory item with its required identifiers
func NewItem(upc, name string) (*Item, error) {
	upc = NormalizeUPC(upc)
	if err := validateUPC(upc); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Item{
		BaseEntity:  shared.NewBaseEntity(),
		UPC:         upc,
		Name:        name,
		Unit:        "each",
		CostPrice:   decimal.Zero,
		SellPrice:   decimal.Zero,
		WeeklySales: decimal.Zero,
	}, nil
}

// NormalizeUPC trims whitespace around a scanned or typed UPC
func NormalizeUPC(upc string) string {
	return strings.TrimSpace(upc)
}

// NormalizeCategory title-cases a category so "DAIRY" and "dairy" group together
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	return categoryCaser.String(strings.ToLower(category))
}

// ChangeUPC replaces the item's UPC
func (i *Item) ChangeUPC(upc string) error {
	upc = NormalizeUPC(upc)
	if err := validateUPC(upc); err != nil {
		return err
	}
	i.UPC = upc
	i.Touch()
	return nil
}

// SetSKU sets the optional SKU, empty clears it
func (i *Item) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		i.SKU = nil
		i.Touch()
		return nil
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	i.SKU = &sku
	i.Touch()
	return nil
}

// Rename changes the item's display name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	i.Name = name
	i.Touch()
	return nil
}

// SetCategory sets the item's category in its normalized form
func (i *Item) SetCategory(category string) {
	i.Category = NormalizeCategory(category)
	i.Touch()
}

// SetPricing sets cost and sell price
func (i *Item) SetPricing(cost, sell decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if sell.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sell price cannot be negative")
	}
	i.CostPrice = cost.Round(2)
	i.SellPrice = sell.Round(2)
	i.Touch()
	return nil
}

// SetQuantity overwrites the on-hand quantity
func (i *Item) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	i.Quantity = quantity
	i.Touch()
	return nil
}

// AdjustQuantity adds delta (which may be negative) to the on-hand quantity
func (i *Item) AdjustQuantity(delta int) error {
	if i.Quantity+delta < 0 {
		return shared.ErrInsufficientStock
	}
	i.Quantity += delta
	i.Touch()
	return nil
}

// SetMinStock sets the per-item low stock level
func (i *Item) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	i.MinStock = minStock
	i.Touch()
	return nil
}

// SetWeeklySales sets the average units sold per week
func (i *Item) SetWeeklySales(weeklySales decimal.Decimal) error {
	if weeklySales.IsNegative() {
		return shared.NewDomainError("INVALID_WEEKLY_SALES", "Weekly sales cannot be negative")
	}
	i.WeeklySales = weeklySales.Round(2)
	i.Touch()
	return nil
}

// SetExpiration sets or clears the expiration date, truncated to the day
func (i *Item) SetExpiration(date *time.Time) {
	if date == nil {
		i.ExpirationDate = nil
	} else {
		d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		i.ExpirationDate = &d
	}
	i.Touch()
}

// AssignVendor sets or clears the supplying vendor
func (i *Item) AssignVendor(vendorID *int64) {
	i.VendorID = vendorID
	i.Touch()
}

// Receive books delivered stock at the invoiced unit cost
func (i *Item) Receive(quantity int, unitCost decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit cost cannot be negative")
	}
	i.Quantity += quantity
	if unitCost.IsPositive() {
		i.CostPrice = unitCost.Round(2)
	}
	i.Touch()
	return nil
}

// Margin returns sell price minus cost price
func (i *Item) Margin() decimal.Decimal {
	return i.SellPrice.Sub(i.CostPrice)
}

// MarginPercent returns the margin as a percentage of sell price, 0 when unpriced
func (i *Item) MarginPercent() decimal.Decimal {
	if !i.SellPrice.IsPositive() {
		return decimal.Zero
	}
	return i.Margin().Div(i.SellPrice).Mul(hundred).Round(2)
}

// TotalValue returns the on-hand value at cost
func (i *Item) TotalValue() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RetailValue returns the on-hand value at sell price
func (i *Item) RetailValue() decimal.Decimal {
	return i.SellPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsLowStock reports whether quantity is at or below the item's minimum.
// Items without a minimum fall back to the store-wide threshold.
func (i *Item) IsLowStock(fallbackThreshold int) bool {
	if i.MinStock > 0 {
		return i.Quantity <= i.MinStock
	}
	return i.Quantity <= fallbackThreshold
}

// DaysUntilExpiration returns whole days until expiry, nil when no date is set
func (i *Item) DaysUntilExpiration(now time.Time) *int {
	if i.ExpirationDate == nil {
		return nil
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exp := time.Date(i.ExpirationDate.Year(), i.ExpirationDate.Month(), i.ExpirationDate.Day(), 0, 0, 0, 0, time.UTC)
	days := int(exp.Sub(today).Hours() / 24)
	return &days
}

// ExpiresWithin reports whether the item expires within the given number of days
func (i *Item) ExpiresWithin(days int, now time.Time) bool {
	left := i.DaysUntilExpiration(now)
	return left != nil && *left <= days
}

func validateUPC(upc string) error {
	if upc == "" {
		return shared.NewDomainError("INVALID_UPC", "UPC cannot be empty")
	}
	if len(upc) > 50 {
		return shared.NewDomainError("INVALID_UPC", "UPC cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}
