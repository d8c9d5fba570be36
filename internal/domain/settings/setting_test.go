package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValue(t *testing.T) {
	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{KeyReorderMultiplier, "2.5", false},
		{KeyReorderMultiplier, "-1", true},
		{KeyReorderMultiplier, "abc", true},
		{KeyLowStockThreshold, "10", false},
		{KeyLowStockThreshold, "10.5", true},
		{KeyExpirationWarningDays, "0", false},
		{KeyTaxRate, "8.25", false},
		{KeyStoreName, "anything at all", false},
		{"custom_key", "free text", false},
		{"", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := ValidateValue(tt.key, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetting_ChangeValue(t *testing.T) {
	s, err := NewSetting(KeyTaxRate, " 7 ")
	require.NoError(t, err)
	assert.Equal(t, "7", s.Value)

	assert.Error(t, s.ChangeValue("seven"))
	assert.Equal(t, "7", s.Value)
}

func TestValuesFromMap(t *testing.T) {
	v := ValuesFromMap(map[string]string{
		KeyReorderMultiplier: "1.5",
		KeyLowStockThreshold: "4",
		KeyTaxRate:           "not a number",
		KeyStoreName:         "Corner Shop",
	})

	assert.Equal(t, "1.5", v.ReorderMultiplier.String())
	assert.Equal(t, 4, v.LowStockThreshold)
	assert.Equal(t, 3, v.CriticalStockThreshold)
	assert.True(t, v.TaxRate.IsZero())
	assert.Equal(t, "Corner Shop", v.StoreName)
	assert.Equal(t, "USD", v.Currency)
	assert.True(t, IsNumericKey(KeyTaxRate))
	assert.False(t, IsNumericKey(KeyCurrency))
}
