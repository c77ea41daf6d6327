package ledger

import (
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Company represents a corporate customer whose orders are tracked together.
// Its money fields are whole-rial aggregates derived from the company's
// orders; they are never edited directly.
type Company struct {
	shared.BaseAggregateRoot
	Name        string
	Address     string
	PhoneNumber string

	TotalOrders       int64
	TotalCosts        decimal.Decimal
	TotalPayments     decimal.Decimal
	RemainingPayments decimal.Decimal
}

// OrderStats carries the aggregates computed over a set of orders, either a
// company's current orders or a reporting window. Sums over an empty set are
// zero, never null.
type OrderStats struct {
	TotalOrders   int64
	TotalCosts    decimal.Decimal
	TotalPayments decimal.Decimal
}

// ZeroOrderStats returns the aggregate values of an empty order set.
func ZeroOrderStats() OrderStats {
	return OrderStats{
		TotalCosts:    decimal.Zero,
		TotalPayments: decimal.Zero,
	}
}

// NewCompany creates a company with zeroed aggregates.
func NewCompany(name, address, phoneNumber string) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		PhoneNumber:       phoneNumber,
		TotalCosts:        decimal.Zero,
		TotalPayments:     decimal.Zero,
		RemainingPayments: decimal.Zero,
	}, nil
}

// Update changes the company's operator-editable fields.
func (c *Company) Update(name, address, phoneNumber string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}

	c.Name = name
	c.Address = address
	c.PhoneNumber = phoneNumber
	c.UpdatedAt = time.Now()

	return nil
}

// Recalculate replaces the company's aggregates with freshly computed stats
// and derives the remaining debt. Called after every mutation of an owned
// order, always from a full rescan of the company's orders.
func (c *Company) Recalculate(stats OrderStats) {
	c.TotalOrders = stats.TotalOrders
	c.TotalCosts = stats.TotalCosts
	c.TotalPayments = stats.TotalPayments
	c.RemainingPayments = c.TotalCosts.Sub(c.TotalPayments)
	c.UpdatedAt = time.Now()
}

// Validate checks the company's financial invariant before persisting.
func (c *Company) Validate() error {
	if c.TotalPayments.GreaterThan(c.TotalCosts) {
		return shared.NewDomainError("OVERPAYMENT",
			"Total payments cannot exceed total costs")
	}
	return nil
}

func validateCompanyName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 255 characters")
	}
	return nil
}
