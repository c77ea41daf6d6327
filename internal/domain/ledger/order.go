package ledger

import (
	"strconv"
	"time"

	"github.com/printshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order represents one print job. TotalCost and RemainingPayment are derived
// fields recomputed on every save; operators never set them directly.
type Order struct {
	shared.BaseAggregateRoot
	Title       string
	Description string
	Billee      Billee
	PhoneNumber string

	// Dimensions of the printed piece in centimeters.
	Width  int
	Height int

	UnitCost         decimal.Decimal
	Amount           int64
	TotalCost        decimal.Decimal
	Payment          decimal.Decimal
	RemainingPayment decimal.Decimal

	// Done marks the job as completed; Paid marks it as settled in full.
	Done bool
	Paid bool

	OrderDate time.Time
}

// NewOrder creates an order for the given billee. Derived fields are filled
// in by Recalculate before the order is first persisted.
func NewOrder(title string, billee Billee) (*Order, error) {
	if err := validateOrderTitle(title); err != nil {
		return nil, err
	}
	if billee.Kind() == BilleeUnknown {
		return nil, shared.NewDomainError("BILLEE_MISSING",
			"Either a company or a customer name is required")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Billee:            billee,
		Amount:            1,
		UnitCost:          decimal.Zero,
		TotalCost:         decimal.Zero,
		Payment:           decimal.Zero,
		RemainingPayment:  decimal.Zero,
		OrderDate:         time.Now(),
	}, nil
}

// Recalculate derives the order's computed fields from its inputs:
//
//	total_cost        = unit_cost * amount
//	remaining_payment = total_cost - payment
//
// An empty phone number is inherited from the linked company, and the Paid
// flag forces the order to be settled in full. The company argument may be
// nil when the billee is not a company.
func (o *Order) Recalculate(company *Company) {
	o.TotalCost = o.UnitCost.Mul(decimal.NewFromInt(o.Amount))
	o.RemainingPayment = o.TotalCost.Sub(o.Payment)

	if o.PhoneNumber == "" && company != nil {
		o.PhoneNumber = company.PhoneNumber
	}

	if o.Paid {
		o.Payment = o.TotalCost
		o.RemainingPayment = decimal.Zero
	}

	o.UpdatedAt = time.Now()
}

// Validate checks the order's invariants against its recalculated state.
// Must be called after Recalculate and before persisting; a failed
// validation means nothing is written.
func (o *Order) Validate(company *Company) error {
	if err := validateOrderTitle(o.Title); err != nil {
		return err
	}
	if o.Billee.Kind() == BilleeUnknown {
		return shared.NewDomainError("BILLEE_MISSING",
			"Either a company or a customer name is required")
	}
	if o.Width <= 0 || o.Height <= 0 {
		return shared.NewDomainError("INVALID_DIMENSIONS",
			"Width and height must be positive")
	}
	if o.Amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if o.UnitCost.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_COST", "Unit cost cannot be negative")
	}
	if o.Payment.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment cannot be negative")
	}
	if !o.Paid && o.Payment.GreaterThan(o.TotalCost) {
		return shared.NewDomainError("OVERPAYMENT",
			"Payment cannot exceed the total cost")
	}
	if company != nil && o.PhoneNumber != "" && o.PhoneNumber != company.PhoneNumber {
		return shared.NewDomainError("PHONE_MISMATCH",
			"Phone number does not match the linked company's phone number")
	}
	return nil
}

// SettledInFull reports whether the order carries no remaining debt.
func (o *Order) SettledInFull() bool {
	return o.RemainingPayment.IsZero()
}

// Dimensions returns the order's size as "width * height".
func (o *Order) Dimensions() string {
	return strconv.Itoa(o.Width) + " * " + strconv.Itoa(o.Height)
}

func validateOrderTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Order title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Order title cannot exceed 255 characters")
	}
	return nil
}
