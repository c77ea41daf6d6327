package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Factor is the persisted record of one printed invoice. It snapshots the
// billee and the group totals at print time. Number is the sequential invoice
// number shown on the printed page; it is assigned by the store on first
// save.
type Factor struct {
	shared.BaseAggregateRoot
	Number int64

	// Billee snapshot. CompanyID is set for company invoices, CustomerName
	// for walk-in customers; both empty means the billee was unknown.
	CompanyID    *uuid.UUID
	CustomerName string

	TotalCost        decimal.Decimal
	Payment          decimal.Decimal
	RemainingPayment decimal.Decimal

	IssuedAt time.Time
}

// NewFactor snapshots a group's billee and totals into a factor issued now.
func NewFactor(billee ledger.Billee, totals GroupTotals) *Factor {
	f := &Factor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TotalCost:         totals.TotalCost,
		Payment:           totals.TotalPayment,
		RemainingPayment:  totals.RemainingPayment,
		IssuedAt:          time.Now(),
	}

	if id, ok := billee.CompanyID(); ok {
		f.CompanyID = &id
	} else {
		f.CustomerName = billee.CustomerName()
	}

	return f
}

// Billee reconstructs the factor's billee from its snapshot columns.
func (f *Factor) Billee() ledger.Billee {
	switch {
	case f.CompanyID != nil:
		return ledger.CompanyBillee(*f.CompanyID)
	case f.CustomerName != "":
		return ledger.CustomerBillee(f.CustomerName)
	default:
		return ledger.UnknownBillee()
	}
}

// RecordPayment adds a payment received against this factor.
func (f *Factor) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}
	if amount.GreaterThan(f.RemainingPayment) {
		return shared.NewDomainError("OVERPAYMENT",
			"Payment cannot exceed the remaining balance")
	}

	f.Payment = f.Payment.Add(amount)
	f.RemainingPayment = f.TotalCost.Sub(f.Payment)
	f.UpdatedAt = time.Now()

	return nil
}

// Settled reports whether the factor carries no remaining balance.
func (f *Factor) Settled() bool {
	return f.RemainingPayment.IsZero()
}
