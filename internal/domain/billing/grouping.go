package billing

import (
	"strconv"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxOrdersPerInvoice is the largest number of orders a single invoice page
// can hold. A batch containing a larger group is rejected as a whole.
const MaxOrdersPerInvoice = 16

// OrderGroup is one invoice worth of orders, all billed to the same party.
type OrderGroup struct {
	Billee ledger.Billee
	Orders []ledger.Order
}

// GroupTotals are the sums printed on an invoice, derived purely from the
// group's orders.
type GroupTotals struct {
	TotalCost        decimal.Decimal
	TotalPayment     decimal.Decimal
	RemainingPayment decimal.Decimal
}

// Totals sums the group's orders. The remaining payment is the difference of
// the two sums rather than a sum of per-order remainders, so rounding on
// individual rows cannot skew it.
func (g OrderGroup) Totals() GroupTotals {
	cost := decimal.Zero
	payment := decimal.Zero
	for _, o := range g.Orders {
		cost = cost.Add(o.TotalCost)
		payment = payment.Add(o.Payment)
	}
	return GroupTotals{
		TotalCost:        cost,
		TotalPayment:     payment,
		RemainingPayment: cost.Sub(payment),
	}
}

// GroupOrders partitions orders by billee, preserving the encounter order of
// both groups and their members. Orders without a billee fall into a single
// shared group.
func GroupOrders(orders []ledger.Order) []OrderGroup {
	var groups []OrderGroup
	index := make(map[string]int)

	for _, o := range orders {
		key := o.Billee.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, OrderGroup{Billee: o.Billee})
		}
		groups[i].Orders = append(groups[i].Orders, o)
	}

	return groups
}

// CheckCapacity rejects the whole batch when any group exceeds the page
// limit. No invoice is produced for a batch that fails this check.
func CheckCapacity(groups []OrderGroup) error {
	for _, g := range groups {
		if len(g.Orders) > MaxOrdersPerInvoice {
			return shared.NewDomainError("INVOICE_TOO_LARGE",
				"A single invoice cannot hold more than "+
					strconv.Itoa(MaxOrdersPerInvoice)+" orders")
		}
	}
	return nil
}
