package settings

import (
	"strings"
	"time"

	"github.com/shashia401/FRESH-CHOICE-sub000/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Well-known setting keys seeded by migration
const (
	KeyReorderMultiplier      = "reorder_multiplier"
	KeyLowStockThreshold      = "low_stock_threshold"
	KeyCriticalStockThreshold = "critical_stock_threshold"
	KeyExpirationWarningDays  = "expiration_warning_days"
	KeyTaxRate                = "tax_rate"
	KeyStoreName              = "store_name"
	KeyCurrency               = "currency"
)

type valueKind int

const (
	kindText valueKind = iota
	kindDecimal
	kindInteger
)

var knownKinds = map[string]valueKind{
	KeyReorderMultiplier:      kindDecimal,
	KeyLowStockThreshold:      kindInteger,
	KeyCriticalStockThreshold: kindInteger,
	KeyExpirationWarningDays:  kindInteger,
	KeyTaxRate:                kindDecimal,
	KeyStoreName:              kindText,
	KeyCurrency:               kindText,
}

// Setting is one key/value row of store configuration
type Setting struct {
	Key         string    `gorm:"column:setting_key;type:varchar(100);primaryKey"`
	Value       string    `gorm:"column:setting_value;type:text;not null"`
	Description string    `gorm:"type:text"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "system_settings"
}

// NewSetting validates and creates a setting
func NewSetting(key, value string) (*Setting, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if err := ValidateValue(key, value); err != nil {
		return nil, err
	}
	return &Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}, nil
}

// ChangeValue validates and replaces the value
func (s *Setting) ChangeValue(value string) error {
	value = strings.TrimSpace(value)
	if err := ValidateValue(s.Key, value); err != nil {
		return err
	}
	s.Value = value
	s.UpdatedAt = time.Now()
	return nil
}

// IsNumericKey reports whether the key must hold a number
func IsNumericKey(key string) bool {
	kind, ok := knownKinds[key]
	return ok && kind != kindText
}

// ValidateValue checks a value against the rules for its key.
// Numeric keys must hold non-negative numbers; thresholds and day counts must be whole.
func ValidateValue(key, value string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot be empty")
	}
	if len(key) > 100 {
		return shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot exceed 100 characters")
	}

	switch knownKinds[key] {
	case kindDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() {
			return shared.NewDomainError("INVALID_SETTING_VALUE", key+" must be a non-negative number")
		}
	case kindInteger:
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() || !d.Equal(d.Truncate(0)) {
			return shared.NewDomainError("INVALID_SETTING_VALUE", key+" must be a non-negative whole number")
		}
	}
	return nil
}
