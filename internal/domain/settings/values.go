package settings

import (
	"github.com/shopspring/decimal"
)

// Values is the typed view of the settings the calculations read
type Values struct {
	ReorderMultiplier      decimal.Decimal
	LowStockThreshold      int
	CriticalStockThreshold int
	ExpirationWarningDays  int
	TaxRate                decimal.Decimal
	StoreName              string
	Currency               string
}

// DefaultValues returns the values seeded by migration
func DefaultValues() Values {
	return Values{
		ReorderMultiplier:      decimal.NewFromInt(2),
		LowStockThreshold:      10,
		CriticalStockThreshold: 3,
		ExpirationWarningDays:  30,
		TaxRate:                decimal.Zero,
		StoreName:              "Fresh Choice",
		Currency:               "USD",
	}
}

// ValuesFromMap overlays stored values on the defaults, ignoring unparsable ones
func ValuesFromMap(m map[string]string) Values {
	v := DefaultValues()
	if d, ok := parseDecimal(m, KeyReorderMultiplier); ok {
		v.ReorderMultiplier = d
	}
	if d, ok := parseDecimal(m, KeyLowStockThreshold); ok {
		v.LowStockThreshold = int(d.IntPart())
	}
	if d, ok := parseDecimal(m, KeyCriticalStockThreshold); ok {
		v.CriticalStockThreshold = int(d.IntPart())
	}
	if d, ok := parseDecimal(m, KeyExpirationWarningDays); ok {
		v.ExpirationWarningDays = int(d.IntPart())
	}
	if d, ok := parseDecimal(m, KeyTaxRate); ok {
		v.TaxRate = d
	}
	if s, ok := m[KeyStoreName]; ok && s != "" {
		v.StoreName = s
	}
	if s, ok := m[KeyCurrency]; ok && s != "" {
		v.Currency = s
	}
	return v
}

func parseDecimal(m map[string]string, key string) (decimal.Decimal, bool) {
	raw, ok := m[key]
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// Defaults returns the seeded rows with their descriptions
func Defaults() []Setting {
	return []Setting{
		{Key: KeyReorderMultiplier, Value: "2", Description: "Weeks of sales to keep on hand; reorder point = weekly sales x multiplier"},
		{Key: KeyLowStockThreshold, Value: "10", Description: "Quantity at or below which an item without min_stock is low"},
		{Key: KeyCriticalStockThreshold, Value: "3", Description: "Quantity at or below which an item is critical"},
		{Key: KeyExpirationWarningDays, Value: "30", Description: "Default window for the expiring items view"},
		{Key: KeyTaxRate, Value: "0", Description: "Tax percentage applied to invoices without an explicit tax"},
		{Key: KeyStoreName, Value: "Fresh Choice", Description: "Shown on exported reports"},
		{Key: KeyCurrency, Value: "USD", Description: "Currency code shown on exported reports"},
	}
}
