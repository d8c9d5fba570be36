package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest(http.MethodGet, "/api/v1/inventory", 200, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/inventory", 200, 10*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/inventory", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration))
}

func TestMetrics_RecordImportAndAuth(t *testing.T) {
	m := NewMetrics()

	m.RecordImport("inventory", 5, 2, 1, 3)
	m.RecordImport("inventory", 1, 0, 0, 0)
	m.RecordAuthFailure("bad_password")

	assert.Equal(t, 6.0, testutil.ToFloat64(m.importRows.WithLabelValues("inventory", "imported")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.importRows.WithLabelValues("inventory", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authFailures.WithLabelValues("bad_password")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.InFlight().Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "fresh_choice_http_requests_in_flight 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestInventoryCollector(t *testing.T) {
	m := NewMetrics()
	c := NewInventoryCollector(func(context.Context) (InventoryStats, error) {
		return InventoryStats{Items: 12, Units: 340, CostValue: 1200.5, LowStock: 3, Expiring: 2, PendingShopping: 4}, nil
	}, nil)
	require.NoError(t, m.Register(c))

	expected := `
# HELP fresh_choice_inventory_low_stock_items Items at or below their low-stock level.
# TYPE fresh_choice_inventory_low_stock_items gauge
fresh_choice_inventory_low_stock_items 3
# HELP fresh_choice_inventory_cost_value On-hand inventory value at cost.
# TYPE fresh_choice_inventory_cost_value gauge
fresh_choice_inventory_cost_value 1200.5
`
	err := testutil.GatherAndCompare(m.Gatherer(), strings.NewReader(expected),
		"fresh_choice_inventory_low_stock_items", "fresh_choice_inventory_cost_value")
	assert.NoError(t, err)
}

func TestInventoryCollector_LoadFailureExportsNothing(t *testing.T) {
	c := NewInventoryCollector(func(context.Context) (InventoryStats, error) {
		return InventoryStats{}, errors.New("db down")
	}, nil)

	assert.Equal(t, 0, testutil.CollectAndCount(c))
}
