package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorHandler_CRUD(t *testing.T) {
	s := newTestServer(t)

	v := create[partnerapp.VendorResponse](s, "/api/v1/vendors", map[string]any{
		"name":         "Sunrise Dairy",
		"contact_name": "Ana",
		"email":        "orders@sunrise.test",
	})
	assert.Equal(t, "Sunrise Dairy", v.Name)
	assert.Equal(t, 7, v.LeadTimeDays)

	t.Run("duplicate name", func(t *testing.T) {
		w := s.postJSON("/api/v1/vendors", s.staffToken, map[string]any{"name": "Sunrise Dairy"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeError(t, w).Code)
	})

	t.Run("bad email", func(t *testing.T) {
		w := s.postJSON("/api/v1/vendors", s.staffToken, map[string]any{"name": "X", "email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeError(t, w).Code)
	})

	newItem(s, "700", "Yogurt", map[string]any{"vendor_id": v.ID})

	w := s.get(pathf("/api/v1/vendors/%d", v.ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeData[partnerapp.VendorResponse](t, w)
	require.NotNil(t, got.ItemCount)
	assert.Equal(t, int64(1), *got.ItemCount)

	w = s.get(pathf("/api/v1/vendors/%d/inventory", v.ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeData[[]inventoryapp.ItemResponse](t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "Yogurt", items[0].Name)

	w = s.get(pathf("/api/v1/vendors/%d/invoices", v.ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeData[[]invoiceapp.InvoiceResponse](t, w))

	w = s.putJSON(pathf("/api/v1/vendors/%d", v.ID), s.staffToken, map[string]any{"lead_time_days": 3, "phone": "555-0100"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeData[partnerapp.VendorResponse](t, w)
	assert.Equal(t, 3, updated.LeadTimeDays)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "orders@sunrise.test", updated.Email)

	w = s.get("/api/v1/vendors?search=sunrise", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeEnvelope[[]partnerapp.VendorResponse](t, w)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Meta.Total)

	require.Equal(t, http.StatusNoContent, s.delete(pathf("/api/v1/vendors/%d", v.ID), s.staffToken).Code)
	assert.Equal(t, http.StatusNotFound, s.get(pathf("/api/v1/vendors/%d", v.ID), s.staffToken).Code)
	assert.Equal(t, http.StatusNotFound, s.get(pathf("/api/v1/vendors/%d/inventory", v.ID), s.staffToken).Code)

	// the item outlives its vendor
	w = s.get("/api/v1/inventory/upc/700", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeData[inventoryapp.ItemResponse](t, w).VendorID)
}

func TestVendorHandler_ImportAndExportCSV(t *testing.T) {
	s := newTestServer(t)
	create[partnerapp.VendorResponse](s, "/api/v1/vendors", map[string]any{"name": "Valley Farms"})

	csv := "Name,Contact Name,Email,Lead Time Days\n" +
		"Hill Bakery,Sam,sam@hill.test,2\n" +
		"valley farms,Lee,,\n" +
		"Hill Bakery,Dup,,\n" +
		"Coast Fish,,,soon\n"

	w := s.upload("/api/v1/vendors/import", s.staffToken, csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decodeData[csvimport.Result](t, w)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, float64(1), testutil.ToFloat64(s.metrics.ImportRows().WithLabelValues("vendors", "skipped")))

	w = s.upload("/api/v1/vendors/import?upsert=true", s.staffToken, "name,contact_name\nValley Farms,Lee\n")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeData[csvimport.Result](t, w).Updated)

	w = s.upload("/api/v1/vendors/import", s.staffToken, "contact_name\nSam\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.get("/api/v1/vendors/export", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendors-")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,"+strings.Join(partnerapp.CSVColumns, ",")+",item_count", lines[0])
	assert.Contains(t, w.Body.String(), ",Lee,")
}
