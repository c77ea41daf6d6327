package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	billingapp "github.com/printshop/backend/internal/application/billing"
)

// InvoiceHandler handles invoice generation endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// Generate godoc
// @ID           generateInvoices
// @Summary      Generate invoices for a set of orders
// @Description  Groups the selected orders by billee, persists one factor per
// @Description  group and returns a single PDF with one invoice page per group.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        request body billingapp.GenerateInvoicesRequest true "Orders to invoice"
// @Success      200 {file} binary
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /invoices/generate [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req billingapp.GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	numbers := make([]string, len(result.FactorNumbers))
	for i, n := range result.FactorNumbers {
		numbers[i] = strconv.FormatInt(n, 10)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Header("X-Factor-Numbers", strings.Join(numbers, ","))
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("/generate", h.Generate)
	}
}
