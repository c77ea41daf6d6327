package ledger

import (
	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
)

// BilleeKind discriminates the party an order is billed to.
type BilleeKind string

const (
	BilleeCompany  BilleeKind = "company"  // order belongs to a registered company
	BilleeCustomer BilleeKind = "customer" // free-text walk-in customer
	BilleeUnknown  BilleeKind = "unknown"  // legacy rows with neither set
)

// UnknownBilleeName is the display name used when an order has no billee.
const UnknownBilleeName = "نامشخص"

// Billee identifies who an order is billed to. It is a tagged variant so that
// the illegal "both company and customer" and "neither" states cannot be
// constructed for new orders; BilleeUnknown exists only to represent legacy
// rows already in the store.
type Billee struct {
	kind         BilleeKind
	companyID    uuid.UUID
	customerName string
}

// NewBillee builds a billee from the two optional inputs an operator can
// provide, enforcing that exactly one of them is set.
func NewBillee(companyID *uuid.UUID, customerName string) (Billee, error) {
	hasCompany := companyID != nil && *companyID != uuid.Nil
	hasCustomer := customerName != ""

	switch {
	case hasCompany && hasCustomer:
		return Billee{}, shared.NewDomainError("BILLEE_AMBIGUOUS",
			"Only one of company or customer name may be set, not both")
	case !hasCompany && !hasCustomer:
		return Billee{}, shared.NewDomainError("BILLEE_MISSING",
			"Either a company or a customer name is required")
	case hasCompany:
		return CompanyBillee(*companyID), nil
	default:
		return CustomerBillee(customerName), nil
	}
}

// CompanyBillee returns a billee referencing a registered company.
func CompanyBillee(companyID uuid.UUID) Billee {
	return Billee{kind: BilleeCompany, companyID: companyID}
}

// CustomerBillee returns a billee for a free-text customer name.
func CustomerBillee(name string) Billee {
	if name == "" {
		return UnknownBillee()
	}
	return Billee{kind: BilleeCustomer, customerName: name}
}

// UnknownBillee returns the billee for rows that carry neither a company nor
// a customer name.
func UnknownBillee() Billee {
	return Billee{kind: BilleeUnknown}
}

// Kind returns the billee discriminator.
func (b Billee) Kind() BilleeKind {
	return b.kind
}

// CompanyID returns the referenced company ID and whether one is set.
func (b Billee) CompanyID() (uuid.UUID, bool) {
	return b.companyID, b.kind == BilleeCompany
}

// CustomerName returns the free-text customer name, empty unless the billee
// is a named customer.
func (b Billee) CustomerName() string {
	return b.customerName
}

// Key returns the grouping identity used when partitioning orders into
// invoices. Two orders with equal keys are billed on the same invoice.
func (b Billee) Key() string {
	switch b.kind {
	case BilleeCompany:
		return "company:" + b.companyID.String()
	case BilleeCustomer:
		return "customer:" + b.customerName
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable billee name. The company argument
// may be nil when the billee is not a company.
func (b Billee) DisplayName(company *Company) string {
	switch {
	case b.kind == BilleeCompany && company != nil:
		return company.Name
	case b.kind == BilleeCustomer:
		return b.customerName
	default:
		return UnknownBilleeName
	}
}
