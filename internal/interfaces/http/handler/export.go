package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	billingapp "github.com/printshop/backend/internal/application/billing"
)

// ExportHandler handles order spreadsheet export endpoints
type ExportHandler struct {
	BaseHandler
	exportService *billingapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *billingapp.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportCSV godoc
// @ID           exportOrdersCSV
// @Summary      Export orders as CSV
// @Description  Exports the selected orders as a UTF-8 CSV with Persian headers
// @Tags         exports
// @Accept       json
// @Produce      text/csv
// @Param        request body billingapp.ExportOrdersRequest true "Orders to export"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/export/csv [post]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	var req billingapp.ExportOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.exportService.ExportCSV(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, result)
}

// ExportXLSX godoc
// @ID           exportOrdersXLSX
// @Summary      Export orders as XLSX
// @Description  Exports the selected orders as an Excel workbook with Persian headers
// @Tags         exports
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        request body billingapp.ExportOrdersRequest true "Orders to export"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /orders/export/xlsx [post]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	var req billingapp.ExportOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.exportService.ExportXLSX(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, result)
}

func (h *ExportHandler) sendFile(c *gin.Context, result *billingapp.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// RegisterRoutes registers all export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/orders/export")
	{
		exports.POST("/csv", h.ExportCSV)
		exports.POST("/xlsx", h.ExportXLSX)
	}
}
