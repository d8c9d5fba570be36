package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	shoppingapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/shopping"
)

// ShoppingHandler handles shopping-list API endpoints
type ShoppingHandler struct {
	BaseHandler
	shoppingService *shoppingapp.ShoppingService
}

// NewShoppingHandler creates a new ShoppingHandler
func NewShoppingHandler(shoppingService *shoppingapp.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shoppingService: shoppingService}
}

// List godoc
// @Summary      List the shopping list
// @Description  Ordered by priority (critical first), then creation time
// @Tags         shopping-list
// @Produce      json
// @Param        purchased query bool   false "Purchased flag"
// @Param        priority  query string false "low, medium, high or critical"
// @Param        vendor_id query int    false "Vendor ID"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(50)
// @Success      200 {object} dto.Response{data=[]shoppingapp.ItemResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /shopping-list [get]
func (h *ShoppingHandler) List(c *gin.Context) {
	var filter shoppingapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.shoppingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}

// GetByID godoc
// @Summary      Get a shopping-list entry
// @Tags         shopping-list
// @Produce      json
// @Param        id path int true "Entry ID"
// @Success      200 {object} dto.Response{data=shoppingapp.ItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shopping-list/{id} [get]
func (h *ShoppingHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.shoppingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @Summary      Add to the shopping list
// @Description  With inventory_id, item_name, upc and vendor_id default from the inventory item
// @Tags         shopping-list
// @Accept       json
// @Produce      json
// @Param        request body shoppingapp.CreateItemRequest true "Entry"
// @Success      201 {object} dto.Response{data=shoppingapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shopping-list [post]
func (h *ShoppingHandler) Create(c *gin.Context) {
	var req shoppingapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.shoppingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary      Update a shopping-list entry
// @Tags         shopping-list
// @Accept       json
// @Produce      json
// @Param        id      path int                           true "Entry ID"
// @Param        request body shoppingapp.UpdateItemRequest true "Changes"
// @Success      200 {object} dto.Response{data=shoppingapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shopping-list/{id} [put]
func (h *ShoppingHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req shoppingapp.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.shoppingService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Remove a shopping-list entry
// @Tags         shopping-list
// @Param        id path int true "Entry ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shopping-list/{id} [delete]
func (h *ShoppingHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.shoppingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkPurchased godoc
// @Summary      Set or clear the purchased flag
// @Tags         shopping-list
// @Accept       json
// @Produce      json
// @Param        id      path int                              true "Entry ID"
// @Param        request body shoppingapp.MarkPurchasedRequest true "Flag"
// @Success      200 {object} dto.Response{data=shoppingapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shopping-list/{id}/purchased [patch]
func (h *ShoppingHandler) MarkPurchased(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req shoppingapp.MarkPurchasedRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.shoppingService.MarkPurchased(c.Request.Context(), id, *req.Purchased)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// ClearPurchased godoc
// @Summary      Clear purchased entries
// @Tags         shopping-list
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.ClearPurchasedResponse}
// @Security     BearerAuth
// @Router       /shopping-list/purchased [delete]
func (h *ShoppingHandler) ClearPurchased(c *gin.Context) {
	resp, err := h.shoppingService.ClearPurchased(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Generate godoc
// @Summary      Generate from reorder points
// @Description  Adds every medium, high or critical item that is not already on the unpurchased list
// @Tags         shopping-list
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.GenerateResponse}
// @Security     BearerAuth
// @Router       /shopping-list/generate [post]
func (h *ShoppingHandler) Generate(c *gin.Context) {
	resp, err := h.shoppingService.Generate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportCSV godoc
// @Summary      Export the shopping list as CSV
// @Tags         shopping-list
// @Produce      text/csv
// @Success      200 {file} file
// @Security     BearerAuth
// @Router       /shopping-list/export [get]
func (h *ShoppingHandler) ExportCSV(c *gin.Context) {
	var filter shoppingapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.sendCSV(c, "shopping-list", func(w io.Writer) error {
		return h.shoppingService.ExportCSV(c.Request.Context(), filter, w)
	})
}
