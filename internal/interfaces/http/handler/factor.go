package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/printshop/backend/internal/application/billing"
)

// FactorHandler handles factor-related API endpoints
type FactorHandler struct {
	BaseHandler
	factorService *billingapp.FactorService
}

// NewFactorHandler creates a new FactorHandler
func NewFactorHandler(factorService *billingapp.FactorService) *FactorHandler {
	return &FactorHandler{
		factorService: factorService,
	}
}

// Get godoc
// @ID           getFactor
// @Summary      Get a factor
// @Description  Returns one persisted invoice record with its billee snapshot
// @Tags         factors
// @Produce      json
// @Param        id path string true "Factor ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /factors/{id} [get]
func (h *FactorHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	factor, err := h.factorService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, factor)
}

// List godoc
// @ID           listFactors
// @Summary      List factors
// @Description  Lists invoice records, optionally limited to a Jalali window
// @Tags         factors
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        date_range query string false "Jalali window preset" Enums(today, this_week, last_7_days, this_month, last_30_days, this_year)
// @Success      200 {object} dto.Response
// @Router       /factors [get]
func (h *FactorHandler) List(c *gin.Context) {
	var query billingapp.ListFactorsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.factorService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RecordPayment godoc
// @ID           recordFactorPayment
// @Summary      Record a payment against a factor
// @Description  Adds a received payment; rejected when it exceeds the remaining balance
// @Tags         factors
// @Accept       json
// @Produce      json
// @Param        id path string true "Factor ID"
// @Param        request body billingapp.RecordPaymentRequest true "Payment request"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /factors/{id}/payments [post]
func (h *FactorHandler) RecordPayment(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	factor, err := h.factorService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, factor)
}

// Delete godoc
// @ID           deleteFactor
// @Summary      Delete a factor
// @Tags         factors
// @Produce      json
// @Param        id path string true "Factor ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Router       /factors/{id} [delete]
func (h *FactorHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.factorService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *FactorHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid factor ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers all factor routes
func (h *FactorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	factors := rg.Group("/factors")
	{
		factors.GET("", h.List)
		factors.GET("/:id", h.Get)
		factors.POST("/:id/payments", h.RecordPayment)
		factors.DELETE("/:id", h.Delete)
	}
}
