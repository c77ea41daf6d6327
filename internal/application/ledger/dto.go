package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printshop/backend/internal/domain/ledger"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to register a company
type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Address     string `json:"address" binding:"max=500"`
	PhoneNumber string `json:"phone_number" binding:"max=50"`
}

// UpdateCompanyRequest represents a request to update a company's editable fields
type UpdateCompanyRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Address           string          `json:"address"`
	PhoneNumber       string          `json:"phone_number"`
	TotalOrders       int64           `json:"total_orders"`
	TotalCosts        decimal.Decimal `json:"total_costs"`
	TotalPayments     decimal.Decimal `json:"total_payments"`
	RemainingPayments decimal.Decimal `json:"remaining_payments"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToCompanyResponse converts a domain company to its response shape
func ToCompanyResponse(c *ledger.Company) CompanyResponse {
	return CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Address:           c.Address,
		PhoneNumber:       c.PhoneNumber,
		TotalOrders:       c.TotalOrders,
		TotalCosts:        c.TotalCosts,
		TotalPayments:     c.TotalPayments,
		RemainingPayments: c.RemainingPayments,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// =============================================================================
// Order DTOs
// =============================================================================

// CreateOrderRequest represents a request to record an order
type CreateOrderRequest struct {
	Title        string           `json:"title" binding:"required,min=1,max=255"`
	Description  string           `json:"description"`
	CompanyID    *uuid.UUID       `json:"company_id"`
	CustomerName string           `json:"customer_name" binding:"max=255"`
	PhoneNumber  string           `json:"phone_number" binding:"max=50"`
	Width        int              `json:"width" binding:"required,gt=0"`
	Height       int              `json:"height" binding:"required,gt=0"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	Amount       int64            `json:"amount" binding:"required,gt=0"`
	Payment      *decimal.Decimal `json:"payment"`
	Done         bool             `json:"done"`
	Paid         bool             `json:"paid"`
	OrderDate    *time.Time       `json:"order_date"`
}

// UpdateOrderRequest represents a request to update an order. Derived fields
// are recomputed server-side and cannot be set here.
type UpdateOrderRequest struct {
	Title        *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string          `json:"description"`
	CompanyID    *uuid.UUID       `json:"company_id"`
	CustomerName *string          `json:"customer_name" binding:"omitempty,max=255"`
	PhoneNumber  *string          `json:"phone_number" binding:"omitempty,max=50"`
	Width        *int             `json:"width" binding:"omitempty,gt=0"`
	Height       *int             `json:"height" binding:"omitempty,gt=0"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Amount       *int64           `json:"amount" binding:"omitempty,gt=0"`
	Payment      *decimal.Decimal `json:"payment"`
	Done         *bool            `json:"done"`
	Paid         *bool            `json:"paid"`
	OrderDate    *time.Time       `json:"order_date"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	CompanyID        *uuid.UUID      `json:"company_id,omitempty"`
	CustomerName     string          `json:"customer_name,omitempty"`
	BilleeName       string          `json:"billee_name"`
	PhoneNumber      string          `json:"phone_number"`
	Width            int             `json:"width"`
	Height           int             `json:"height"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Amount           int64           `json:"amount"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Payment          decimal.Decimal `json:"payment"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
	Done             bool            `json:"done"`
	Paid             bool            `json:"paid"`
	OrderDate        time.Time       `json:"order_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its response shape. The company
// argument may be nil when the order is not billed to a company.
func ToOrderResponse(o *ledger.Order, company *ledger.Company) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		Title:            o.Title,
		Description:      o.Description,
		BilleeName:       o.Billee.DisplayName(company),
		PhoneNumber:      o.PhoneNumber,
		Width:            o.Width,
		Height:           o.Height,
		UnitCost:         o.UnitCost,
		Amount:           o.Amount,
		TotalCost:        o.TotalCost,
		Payment:          o.Payment,
		RemainingPayment: o.RemainingPayment,
		Done:             o.Done,
		Paid:             o.Paid,
		OrderDate:        o.OrderDate,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}

	if id, ok := o.Billee.CompanyID(); ok {
		resp.CompanyID = &id
	} else {
		resp.CustomerName = o.Billee.CustomerName()
	}

	return resp
}

// ListOrdersQuery carries the filters accepted by the order listing endpoint
type ListOrdersQuery struct {
	Page      int        `form:"page,default=1" binding:"omitempty,gt=0"`
	PageSize  int        `form:"page_size,default=20" binding:"omitempty,gt=0,lte=200"`
	Search    string     `form:"search"`
	CompanyID *uuid.UUID `form:"company_id"`
	Done      *bool      `form:"done"`
	Paid      *bool      `form:"paid"`
	DateRange string     `form:"date_range" binding:"omitempty,oneof=today this_week last_7_days this_month last_30_days this_year"`
}

// SummaryResponse represents order aggregates over a reporting window
type SummaryResponse struct {
	DateRange        string          `json:"date_range"`
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalOrders      int64           `json:"total_orders"`
	TotalCosts       decimal.Decimal `json:"total_costs"`
	TotalPayments    decimal.Decimal `json:"total_payments"`
	RemainingPayment decimal.Decimal `json:"remaining_payment"`
}
