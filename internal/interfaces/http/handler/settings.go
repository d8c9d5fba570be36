package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/settings"
)

// SettingsHandler handles system settings and the reorder calculation
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// List godoc
// @Summary      All settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	resp, err := h.settingsService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @Summary      One setting
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Success      200 {object} dto.Response{data=settingsapp.SettingResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// Set godoc
// @Summary      Set one setting
// @Description  Numeric settings must be non-negative numbers
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key     path string                           true "Setting key"
// @Param        request body settingsapp.UpdateSettingRequest true "Value"
// @Success      200 {object} dto.Response{data=settingsapp.SettingResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{key} [put]
func (h *SettingsHandler) Set(c *gin.Context) {
	var req settingsapp.UpdateSettingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	setting, err := h.settingsService.Set(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// SetAll godoc
// @Summary      Set many settings
// @Description  Every value is validated before any is written
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body map[string]string true "Key to value"
// @Success      200 {object} dto.Response{data=settingsapp.SettingsResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SettingsHandler) SetAll(c *gin.Context) {
	var values map[string]string
	if !h.bindJSON(c, &values) {
		return
	}

	resp, err := h.settingsService.SetAll(c.Request.Context(), values)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReorderPoints godoc
// @Summary      Reorder calculation
// @Tags         settings
// @Produce      json
// @Param        priority query string false "low, medium, high or critical"
// @Success      200 {object} dto.Response{data=settingsapp.ReorderPointsResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/reorder-points [get]
func (h *SettingsHandler) ReorderPoints(c *gin.Context) {
	resp, err := h.settingsService.ReorderPoints(c.Request.Context(), c.Query("priority"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
