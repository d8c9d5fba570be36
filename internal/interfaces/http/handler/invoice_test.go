package handler_test

import (
	"net/http"
	"strings"
	"testing"

	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/infrastructure/csvimport"
	"github.com/shashia401/FRESH-CHOICE-sub000/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestInvoiceHandler_CreateAndItems(t *testing.T) {
	s := newTestServer(t)
	vendor := create[partnerapp.VendorResponse](s, "/api/v1/vendors", map[string]any{"name": "Metro Produce"})

	inv := create[invoiceapp.InvoiceResponse](s, "/api/v1/invoices", map[string]any{
		"invoice_number": "INV-1001",
		"vendor_id":      vendor.ID,
		"invoice_date":   "2026-03-01",
		"due_date":       "2026-03-31",
		"tax":            "1.50",
		"items": []map[string]any{
			{"upc": "800", "description": "Lemons", "quantity": 10, "unit_cost": "0.45"},
			{"upc": "801", "description": "Limes", "quantity": 4, "unit_cost": "0.30"},
		},
	})
	assert.Equal(t, "pending", inv.Status)
	assert.Equal(t, "Metro Produce", inv.VendorName)
	assert.Equal(t, 2, inv.ItemCount)
	assert.True(t, inv.Subtotal.Equal(dec("5.70")), inv.Subtotal.String())
	assert.True(t, inv.Total.Equal(dec("7.20")), inv.Total.String())

	t.Run("duplicate number", func(t *testing.T) {
		w := s.postJSON("/api/v1/invoices", s.staffToken, map[string]any{"invoice_number": "INV-1001", "invoice_date": "2026-03-02"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, decodeError(t, w).Code)
	})

	t.Run("bad date", func(t *testing.T) {
		w := s.postJSON("/api/v1/invoices", s.staffToken, map[string]any{"invoice_number": "INV-X", "invoice_date": "03/01/2026"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, decodeError(t, w).Code)
	})

	t.Run("due before invoice date", func(t *testing.T) {
		w := s.postJSON("/api/v1/invoices", s.staffToken, map[string]any{
			"invoice_number": "INV-Y", "invoice_date": "2026-03-10", "due_date": "2026-03-01",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_DUE_DATE", decodeError(t, w).Code)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		w := s.postJSON("/api/v1/invoices", s.staffToken, map[string]any{
			"invoice_number": "INV-Z", "invoice_date": "2026-03-10", "vendor_id": 999,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	w := s.postJSON(pathf("/api/v1/invoices/%d/items", inv.ID), s.staffToken, map[string]any{
		"description": "Oranges", "quantity": 2, "unit_cost": "1.00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	withItem := decodeData[invoiceapp.InvoiceResponse](t, w)
	assert.Equal(t, 3, withItem.ItemCount)
	assert.True(t, withItem.Subtotal.Equal(dec("7.70")))

	w = s.get(pathf("/api/v1/invoices/%d", inv.ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeData[invoiceapp.InvoiceResponse](t, w)
	require.Len(t, detail.Items, 3)

	var limes int64
	for _, line := range detail.Items {
		if line.UPC == "801" {
			limes = line.ID
			assert.True(t, line.LineTotal.Equal(dec("1.20")))
		}
	}
	require.NotZero(t, limes)

	w = s.delete(pathf("/api/v1/invoices/%d/items/%d", inv.ID, limes), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decodeData[invoiceapp.InvoiceResponse](t, w).ItemCount)

	assert.Equal(t, http.StatusNotFound, s.delete(pathf("/api/v1/invoices/%d/items/%d", inv.ID, limes), s.staffToken).Code)
	assert.Equal(t, http.StatusBadRequest, s.delete(pathf("/api/v1/invoices/%d/items/x", inv.ID), s.staffToken).Code)

	w = s.putJSON(pathf("/api/v1/invoices/%d", inv.ID), s.staffToken, map[string]any{"notes": "check crate count"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "check crate count", decodeData[invoiceapp.InvoiceResponse](t, w).Notes)

	w = s.get("/api/v1/invoices?status=pending", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeEnvelope[[]invoiceapp.InvoiceResponse](t, w).Meta.Total)

	assert.Equal(t, http.StatusBadRequest, s.get("/api/v1/invoices?status=lost", s.staffToken).Code)

	require.Equal(t, http.StatusNoContent, s.delete(pathf("/api/v1/invoices/%d", inv.ID), s.staffToken).Code)
	assert.Equal(t, http.StatusNotFound, s.get(pathf("/api/v1/invoices/%d", inv.ID), s.staffToken).Code)
}

func TestInvoiceHandler_ReceivePayCancel(t *testing.T) {
	s := newTestServer(t)
	existing := newItem(s, "900", "Eggs", map[string]any{"quantity": 6, "cost_price": "2.00"})

	inv := create[invoiceapp.InvoiceResponse](s, "/api/v1/invoices", map[string]any{
		"invoice_number": "INV-2001",
		"invoice_date":   "2026-04-01",
		"items": []map[string]any{
			{"inventory_id": existing.ID, "quantity": 12, "unit_cost": "2.25"},
			{"upc": "901", "description": "Butter", "quantity": 5, "unit_cost": "3.10"},
		},
	})

	w := s.postJSON(pathf("/api/v1/invoices/%d/receive", inv.ID), s.staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	received := decodeData[invoiceapp.ReceiveResponse](t, w)
	assert.Equal(t, "received", received.Invoice.Status)
	assert.NotNil(t, received.Invoice.ReceivedAt)
	require.Len(t, received.Received, 2)
	assert.Equal(t, 18, received.Received[0].NewQuantity)
	assert.False(t, received.Received[0].Created)
	assert.True(t, received.Received[1].Created)

	w = s.get(pathf("/api/v1/inventory/%d", existing.ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	eggs := decodeData[inventoryapp.ItemResponse](t, w)
	assert.Equal(t, 18, eggs.Quantity)
	assert.True(t, eggs.CostPrice.Equal(dec("2.25")))

	w = s.get("/api/v1/inventory/upc/901", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	butter := decodeData[inventoryapp.ItemResponse](t, w)
	assert.Equal(t, "Butter", butter.Name)
	assert.Equal(t, 5, butter.Quantity)

	// receiving twice would double the stock
	w = s.postJSON(pathf("/api/v1/invoices/%d/receive", inv.ID), s.staffToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, w).Code)

	w = s.postJSON(pathf("/api/v1/invoices/%d/cancel", inv.ID), s.staffToken, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.postJSON(pathf("/api/v1/invoices/%d/items", inv.ID), s.staffToken, map[string]any{"upc": "902", "quantity": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.putJSON(pathf("/api/v1/invoices/%d", inv.ID), s.staffToken, map[string]any{"notes": "late edit"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "a received invoice is read-only")
	assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, w).Code)

	w = s.postJSON(pathf("/api/v1/invoices/%d/pay", inv.ID), s.staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", decodeData[invoiceapp.InvoiceResponse](t, w).Status)

	t.Run("cancel pending", func(t *testing.T) {
		other := create[invoiceapp.InvoiceResponse](s, "/api/v1/invoices", map[string]any{
			"invoice_number": "INV-2002", "invoice_date": "2026-04-02",
		})
		w := s.postJSON(pathf("/api/v1/invoices/%d/receive", other.ID), s.staffToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "an empty invoice cannot be received")

		w = s.postJSON(pathf("/api/v1/invoices/%d/cancel", other.ID), s.staffToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cancelled", decodeData[invoiceapp.InvoiceResponse](t, w).Status)

		w = s.postJSON(pathf("/api/v1/invoices/%d/pay", other.ID), s.staffToken, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = s.putJSON(pathf("/api/v1/invoices/%d", other.ID), s.staffToken, map[string]any{
			"items": []map[string]any{{"upc": "903", "quantity": 1, "unit_cost": "1.00"}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "a cancelled invoice is read-only")
		assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, w).Code)
	})

	assert.Equal(t, http.StatusNotFound, s.postJSON("/api/v1/invoices/9999/pay", s.staffToken, nil).Code)
}

func TestInvoiceHandler_ImportAndExportCSV(t *testing.T) {
	s := newTestServer(t)
	create[partnerapp.VendorResponse](s, "/api/v1/vendors", map[string]any{"name": "Metro Produce"})
	create[invoiceapp.InvoiceResponse](s, "/api/v1/invoices", map[string]any{
		"invoice_number": "OLD-1", "invoice_date": "2026-01-05",
	})

	csv := "invoice_number,vendor,invoice_date,upc,description,quantity,unit_cost\n" +
		"A-1,Metro Produce,2026-05-01,1001,Pears,10,0.50\n" +
		"A-1,,,1002,Plums,5,0.80\n" +
		"A-2,,2026-05-02,,,0,1.00\n" +
		"OLD-1,,2026-01-05,1003,Figs,1,2.00\n"

	w := s.upload("/api/v1/invoices/import", s.staffToken, csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decodeData[csvimport.Result](t, w)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Skipped)

	w = s.get("/api/v1/invoices?search=A-1", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeData[[]invoiceapp.InvoiceResponse](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Metro Produce", list[0].VendorName)
	assert.True(t, list[0].Total.Equal(dec("9.00")))

	w = s.get(pathf("/api/v1/invoices/%d", list[0].ID), s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[invoiceapp.InvoiceResponse](t, w).Items, 2)

	w = s.upload("/api/v1/invoices/import", s.staffToken, "invoice_number,upc\nA-9,1\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.get("/api/v1/invoices/export", s.staffToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoices-")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,invoice_number,vendor"))
}
