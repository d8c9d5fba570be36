package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/shashia401/FRESH-CHOICE-sub000/internal/application/report"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard godoc
// @Summary      Dashboard numbers
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=reportapp.DashboardResponse}
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	resp, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// InventoryValue godoc
// @Summary      Inventory value by category
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=reportapp.InventoryValueResponse}
// @Security     BearerAuth
// @Router       /reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *gin.Context) {
	resp, err := h.reportService.InventoryValue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Margins godoc
// @Summary      Item margins
// @Tags         reports
// @Produce      json
// @Param        min_margin query number false "Minimum margin percent"
// @Param        max_margin query number false "Maximum margin percent"
// @Success      200 {object} dto.Response{data=reportapp.MarginsResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/margins [get]
func (h *ReportHandler) Margins(c *gin.Context) {
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	resp, err := h.reportService.Margins(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// VendorSpend godoc
// @Summary      Spend per vendor
// @Tags         reports
// @Produce      json
// @Param        from query string false "Invoice date from (YYYY-MM-DD)"
// @Param        to   query string false "Invoice date to (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=reportapp.VendorSpendResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/vendor-spend [get]
func (h *ReportHandler) VendorSpend(c *gin.Context) {
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	resp, err := h.reportService.VendorSpend(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// LowStock godoc
// @Summary      Low-stock items with reorder priority
// @Tags         reports
// @Produce      json
// @Param        priority query string false "low, medium, high or critical"
// @Success      200 {object} dto.Response{data=reportapp.LowStockReportResponse}
// @Security     BearerAuth
// @Router       /reports/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	resp, err := h.reportService.LowStock(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Expiring godoc
// @Summary      Expiring and expired items
// @Tags         reports
// @Produce      json
// @Param        days query int false "Window in days, defaults to expiration_warning_days"
// @Success      200 {object} dto.Response{data=reportapp.ExpiringReportResponse}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/expiring [get]
func (h *ReportHandler) Expiring(c *gin.Context) {
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	resp, err := h.reportService.Expiring(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Export godoc
// @Summary      Download a report
// @Description  CSV is always available; PDF needs the renderer enabled
// @Tags         reports
// @Produce      text/csv
// @Produce      application/pdf
// @Param        type   path  string true  "inventory-value, margins, vendor-spend, low-stock or expiring"
// @Param        format query string false "csv or pdf" default(csv)
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/{type}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	t, f, err := reportapp.ParseExport(c.Param("type"), c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	file, err := h.reportService.Export(c.Request.Context(), t, f, p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Archive godoc
// @Summary      Archive a report to object storage
// @Description  Returns a presigned download link
// @Tags         reports
// @Produce      json
// @Param        type   path  string true  "inventory-value, margins, vendor-spend, low-stock or expiring"
// @Param        format query string false "csv or pdf" default(csv)
// @Success      201 {object} dto.Response{data=reportapp.ArchiveResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/{type}/archive [post]
func (h *ReportHandler) Archive(c *gin.Context) {
	t, f, err := reportapp.ParseExport(c.Param("type"), c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var p reportapp.Params
	if !h.bindQuery(c, &p) {
		return
	}

	resp, err := h.reportService.Archive(c.Request.Context(), t, f, p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
