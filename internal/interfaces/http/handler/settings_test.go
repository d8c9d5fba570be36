package handler_test

import (
	"net/http"
	"testing"

	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsHandler_ListAndGet(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/api/v1/settings", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeData[settingsapp.SettingsResponse](t, w)
	assert.Equal(t, "Fresh Choice", all.Values["store_name"])
	assert.Equal(t, "10", all.Values["low_stock_threshold"])
	assert.Len(t, all.Settings, len(all.Values))

	w = s.get("/api/v1/settings/reorder_multiplier", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	one := decodeData[settingsapp.SettingResponse](t, w)
	assert.Equal(t, "2", one.Value)
	assert.NotEmpty(t, one.Description)

	assert.Equal(t, http.StatusNotFound, s.get("/api/v1/settings/nope", s.staffToken).Code)
}

func TestSettingsHandler_Set(t *testing.T) {
	s := newTestServer(t)

	t.Run("admin only", func(t *testing.T) {
		w := s.putJSON("/api/v1/settings/low_stock_threshold", s.staffToken, map[string]string{"value": "5"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		w = s.putJSON("/api/v1/settings", s.staffToken, map[string]string{"low_stock_threshold": "5"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("numeric settings reject negatives", func(t *testing.T) {
		w := s.putJSON("/api/v1/settings/low_stock_threshold", s.adminToken, map[string]string{"value": "-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_SETTING_VALUE", decodeError(t, w).Code)
	})

	t.Run("missing value", func(t *testing.T) {
		w := s.putJSON("/api/v1/settings/store_name", s.adminToken, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
	})

	w := s.putJSON("/api/v1/settings/store_name", s.adminToken, map[string]string{"value": "Fresh Choice Downtown"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fresh Choice Downtown", decodeData[settingsapp.SettingResponse](t, w).Value)

	// one bad value rejects the whole batch
	w = s.putJSON("/api/v1/settings", s.adminToken, map[string]string{"tax_rate": "8.25", "reorder_multiplier": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.putJSON("/api/v1/settings", s.adminToken, map[string]string{"tax_rate": "8.25", "low_stock_threshold": "4"})
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeData[settingsapp.SettingsResponse](t, w)
	assert.Equal(t, "8.25", all.Values["tax_rate"])
	assert.Equal(t, "4", all.Values["low_stock_threshold"])

	// new thresholds apply to inventory reads
	newItem(s, "650", "Salt", map[string]any{"quantity": 5})
	w = s.get("/api/v1/inventory/low-stock", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	low := decodeData[struct {
		Threshold int `json:"threshold"`
	}](t, w)
	assert.Equal(t, 4, low.Threshold)

	assert.Equal(t, http.StatusBadRequest, s.putJSON("/api/v1/settings", s.adminToken, map[string]string{}).Code)
}

func TestSettingsHandler_ReorderPoints(t *testing.T) {
	s := newTestServer(t)
	newItem(s, "660", "Flour", map[string]any{"quantity": 1})
	newItem(s, "661", "Sugar", map[string]any{"quantity": 40, "weekly_sales": "3.5"})

	w := s.get("/api/v1/settings/reorder-points", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeData[settingsapp.ReorderPointsResponse](t, w)
	assert.True(t, resp.SettingsUsed.ReorderMultiplier.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 10, resp.SettingsUsed.LowStockThreshold)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Flour", resp.Items[0].Name)
	assert.Equal(t, "critical", resp.Items[0].Priority)
	assert.Equal(t, 19, resp.Items[0].SuggestedOrder)
	assert.True(t, resp.Items[1].ReorderPoint.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, 0, resp.Items[1].SuggestedOrder)
	assert.Equal(t, map[string]int{"critical": 1, "high": 0, "medium": 0, "low": 1}, resp.Summary)

	w = s.get("/api/v1/settings/reorder-points?priority=low", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decodeData[settingsapp.ReorderPointsResponse](t, w)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "Sugar", filtered.Items[0].Name)

	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/settings/reorder-points?priority=urgent", s.staffToken).Code)
}
