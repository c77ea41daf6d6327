package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/ledger"
)

// =============================================================================
// Invoice generation DTOs
// =============================================================================

// GenerateInvoicesRequest selects the orders to invoice. The orders are
// grouped by billee and one invoice page is produced per group.
type GenerateInvoicesRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// GeneratedInvoices is the result of one invoice batch: the PDF document and
// the factor records persisted for it.
type GeneratedInvoices struct {
	Filename      string
	PDF           []byte
	FactorNumbers []int64
}

// =============================================================================
// Factor DTOs
// =============================================================================

// FactorResponse represents a factor in API responses
type FactorResponse struct {
	ID               uuid.UUID       `json:"id"`
	Number           int64           `json:"number"`
	CompanyID        *uuid.UUID      `json:"company_id,omitempty"`
	CustomerName     string          `json:"customer_name,omitempty"`
	BilleeName       string          `json:"billee_name"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Payment          decimal.Decimal `json:"payment"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
	Settled          bool            `json:"settled"`
	IssuedAt         time.Time       `json:"issued_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToFactorResponse converts a domain factor to its response shape. The
// company argument may be nil when the factor is not billed to a company.
func ToFactorResponse(f *billing.Factor, company *ledger.Company) FactorResponse {
	return FactorResponse{
		ID:               f.ID,
		Number:           f.Number,
		CompanyID:        f.CompanyID,
		CustomerName:     f.CustomerName,
		BilleeName:       f.Billee().DisplayName(company),
		TotalCost:        f.TotalCost,
		Payment:          f.Payment,
		RemainingPayment: f.RemainingPayment,
		Settled:          f.Settled(),
		IssuedAt:         f.IssuedAt,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

// RecordPaymentRequest records a payment received against a factor
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListFactorsQuery carries the filters accepted by the factor listing endpoint
type ListFactorsQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,gt=0"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,gt=0,lte=200"`
	DateRange string `form:"date_range" binding:"omitempty,oneof=today this_week last_7_days this_month last_30_days this_year"`
}

// =============================================================================
// Export DTOs
// =============================================================================

// ExportOrdersRequest selects the orders to export
type ExportOrdersRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
}

// ExportResult is a generated spreadsheet download
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}
