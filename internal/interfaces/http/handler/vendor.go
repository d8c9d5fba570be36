package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/partner"
)

// VendorHandler handles vendor-related API endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
	imports       ImportRecorder
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService, imports ImportRecorder) *VendorHandler {
	return &VendorHandler{vendorService: vendorService, imports: imports}
}

// List godoc
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Param        search    query string false "Matches name, contact or email"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(50)
// @Param        order_by  query string false "Sort column"
// @Param        order_dir query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]partnerapp.VendorResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var filter partnerapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.vendorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// GetByID godoc
// @Summary      Get a vendor
// @Tags         vendors
// @Produce      json
// @Param        id path int true "Vendor ID"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Create godoc
// @Summary      Create a vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateVendorRequest true "Vendor"
// @Success      201 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// Update godoc
// @Summary      Update a vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path int                          true "Vendor ID"
// @Param        request body partnerapp.UpdateVendorRequest true "Changes"
// @Success      200 {object} dto.Response{data=partnerapp.VendorResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Delete godoc
// @Summary      Delete a vendor
// @Description  Items and invoices that referenced the vendor keep existing without one
// @Tags         vendors
// @Param        id path int true "Vendor ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.vendorService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Items godoc
// @Summary      Items supplied by a vendor
// @Tags         vendors
// @Produce      json
// @Param        id path int true "Vendor ID"
// @Success      200 {object} dto.Response{data=[]inventoryapp.ItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id}/inventory [get]
func (h *VendorHandler) Items(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.vendorService.Items(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Invoices godoc
// @Summary      Invoices from a vendor
// @Tags         vendors
// @Produce      json
// @Param        id path int true "Vendor ID"
// @Success      200 {object} dto.Response{data=[]invoiceapp.InvoiceResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/{id}/invoices [get]
func (h *VendorHandler) Invoices(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	invoices, err := h.vendorService.Invoices(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// ImportCSV godoc
// @Summary      Import vendors from CSV
// @Tags         vendors
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData file true  "CSV file"
// @Param        upsert query    bool false "Update vendors whose name exists"
// @Success      200 {object} dto.Response{data=ImportResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /vendors/import [post]
func (h *VendorHandler) ImportCSV(c *gin.Context) {
	file, ok := h.uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.vendorService.ImportCSV(c.Request.Context(), file, c.Query("upsert") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	recordImport(h.imports, "vendors", result)
	h.Success(c, result)
}

// ExportCSV godoc
// @Summary      Export vendors as CSV
// @Tags         vendors
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /vendors/export [get]
func (h *VendorHandler) ExportCSV(c *gin.Context) {
	var filter partnerapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.sendCSV(c, "vendors", func(w io.Writer) error {
		return h.vendorService.ExportCSV(c.Request.Context(), filter, w)
	})
}
