package handler

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	invoiceapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/invoice"
)

// InvoiceHandler handles vendor invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
	imports        ImportRecorder
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService, imports ImportRecorder) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, imports: imports}
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        vendor_id query int    false "Vendor ID"
// @Param        status    query string false "pending, received, paid or cancelled"
// @Param        from      query string false "Invoice date from (YYYY-MM-DD)"
// @Param        to        query string false "Invoice date to (YYYY-MM-DD)"
// @Param        search    query string false "Invoice number"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(50)
// @Success      200 {object} dto.Response{data=[]invoiceapp.InvoiceResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter invoiceapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// GetByID godoc
// @Summary      Get an invoice with its items
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Create godoc
// @Summary      Create an invoice
// @Description  Totals are computed server-side; tax defaults from the tax_rate setting
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoiceapp.CreateInvoiceRequest true "Invoice"
// @Success      201 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// Update godoc
// @Summary      Update an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path int                            true "Invoice ID"
// @Param        request body invoiceapp.UpdateInvoiceRequest true "Changes"
// @Success      200 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req invoiceapp.UpdateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Delete godoc
// @Summary      Delete an invoice
// @Tags         invoices
// @Param        id path int true "Invoice ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem godoc
// @Summary      Add a line item
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path int                       true "Invoice ID"
// @Param        request body invoiceapp.LineItemRequest true "Line"
// @Success      201 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req invoiceapp.LineItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, inv)
}

// RemoveItem godoc
// @Summary      Remove a line item
// @Tags         invoices
// @Produce      json
// @Param        id     path int true "Invoice ID"
// @Param        itemId path int true "Line item ID"
// @Success      200 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/items/{itemId} [delete]
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	inv, err := h.invoiceService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Receive godoc
// @Summary      Receive an invoice
// @Description  Adds every line's quantity to inventory in one transaction, creating unknown UPCs
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoiceapp.ReceiveResponse}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/receive [post]
func (h *InvoiceHandler) Receive(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.Receive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Pay godoc
// @Summary      Mark an invoice paid
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/pay [post]
func (h *InvoiceHandler) Pay(c *gin.Context) {
	h.transition(c, h.invoiceService.Pay)
}

// Cancel godoc
// @Summary      Cancel a pending invoice
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} dto.Response{data=invoiceapp.InvoiceResponse}
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.Cancel)
}

func (h *InvoiceHandler) transition(c *gin.Context, apply func(ctx context.Context, id int64) (*invoiceapp.InvoiceResponse, error)) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	inv, err := apply(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// ImportCSV godoc
// @Summary      Import invoices from CSV
// @Description  One row per line item, grouped by invoice_number
// @Tags         invoices
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV file"
// @Success      200 {object} dto.Response{data=ImportResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /invoices/import [post]
func (h *InvoiceHandler) ImportCSV(c *gin.Context) {
	file, ok := h.uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.invoiceService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	recordImport(h.imports, "invoices", result)
	h.Success(c, result)
}

// ExportCSV godoc
// @Summary      Export invoices as CSV
// @Tags         invoices
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /invoices/export [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	var filter invoiceapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.sendCSV(c, "invoices", func(w io.Writer) error {
		return h.invoiceService.ExportCSV(c.Request.Context(), filter, w)
	})
}
