package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	inventoryapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/inventory"
)

// InventoryHandler handles inventory-related API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	imports          ImportRecorder
}

// NewInventoryHandler creates a new InventoryHandler. imports may be nil.
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService, imports ImportRecorder) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, imports: imports}
}

// List godoc
// @Summary      List inventory items
// @Description  Paginated list with search, category, vendor, low-stock and expiry filters
// @Tags         inventory
// @Produce      json
// @Param        search          query string false "Matches name, upc, sku or brand"
// @Param        category        query string false "Category"
// @Param        vendor_id       query int    false "Vendor ID"
// @Param        low_stock       query bool   false "Only low-stock items"
// @Param        expiring_within query int    false "Only items expiring within N days"
// @Param        page            query int    false "Page number" default(1)
// @Param        page_size       query int    false "Page size" default(50)
// @Param        order_by        query string false "Sort column"
// @Param        order_dir       query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]inventoryapp.ItemResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// GetByID godoc
// @Summary      Get an inventory item
// @Tags         inventory
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// GetByUPC godoc
// @Summary      Barcode lookup
// @Tags         inventory
// @Produce      json
// @Param        upc path string true "UPC"
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/upc/{upc} [get]
func (h *InventoryHandler) GetByUPC(c *gin.Context) {
	item, err := h.inventoryService.GetByUPC(c.Request.Context(), c.Param("upc"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Create an inventory item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateItemRequest true "Item"
// @Success      201 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary      Update an inventory item
// @Description  Partial update; omitted fields are unchanged
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path int                          true "Item ID"
// @Param        request body inventoryapp.UpdateItemRequest true "Changes"
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// AdjustQuantity godoc
// @Summary      Adjust stock
// @Description  Send delta to move stock or quantity to set it. Stock never goes negative.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path int                              true "Item ID"
// @Param        request body inventoryapp.AdjustQuantityRequest true "Adjustment"
// @Success      200 {object} dto.Response{data=inventoryapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id}/quantity [patch]
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.AdjustQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.inventoryService.AdjustQuantity(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete an inventory item
// @Tags         inventory
// @Param        id path int true "Item ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Categories godoc
// @Summary      Inventory categories
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=[]inventoryapp.CategoryResponse}
// @Security     BearerAuth
// @Router       /inventory/categories [get]
func (h *InventoryHandler) Categories(c *gin.Context) {
	categories, err := h.inventoryService.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// LowStock godoc
// @Summary      Low-stock items
// @Tags         inventory
// @Produce      json
// @Success      200 {object} dto.Response{data=inventoryapp.LowStockResponse}
// @Security     BearerAuth
// @Router       /inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *gin.Context) {
	resp, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Expiring godoc
// @Summary      Expiring items
// @Tags         inventory
// @Produce      json
// @Param        days query int false "Window in days, defaults to expiration_warning_days"
// @Success      200 {object} dto.Response{data=inventoryapp.ExpiringResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *gin.Context) {
	days, ok := h.queryDays(c)
	if !ok {
		return
	}

	resp, err := h.inventoryService.Expiring(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkImport godoc
// @Summary      Bulk import items
// @Description  Best-effort: failing rows are reported and the rest are imported
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        upsert  query bool                           false "Update items whose UPC exists"
// @Param        request body  []inventoryapp.CreateItemRequest true  "Rows"
// @Success      200 {object} dto.Response{data=ImportResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/bulk [post]
func (h *InventoryHandler) BulkImport(c *gin.Context) {
	// rows are decoded and validated one by one in the service
	var rows []json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&rows); err != nil {
		h.handleBindError(c, err)
		return
	}

	result, err := h.inventoryService.BulkImportJSON(c.Request.Context(), rows, c.Query("upsert") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	recordImport(h.imports, "inventory", result)
	h.Success(c, result)
}

// ImportCSV godoc
// @Summary      Import items from CSV
// @Tags         inventory
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData file true  "CSV file"
// @Param        upsert query    bool false "Update items whose UPC exists"
// @Success      200 {object} dto.Response{data=ImportResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/import [post]
func (h *InventoryHandler) ImportCSV(c *gin.Context) {
	file, ok := h.uploadedFile(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.inventoryService.ImportCSV(c.Request.Context(), file, c.Query("upsert") == "true")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	recordImport(h.imports, "inventory", result)
	h.Success(c, result)
}

// ExportCSV godoc
// @Summary      Export items as CSV
// @Description  Accepts the same filters as the list endpoint
// @Tags         inventory
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /inventory/export [get]
func (h *InventoryHandler) ExportCSV(c *gin.Context) {
	var filter inventoryapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.sendCSV(c, "inventory", func(w io.Writer) error {
		return h.inventoryService.ExportCSV(c.Request.Context(), filter, w)
	})
}
