package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/shared"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	shared.Repository[Order]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Order, error)
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)

	// AggregateByCompany computes the company's aggregates with a full scan of
	// its current orders. An empty order set yields zero stats.
	AggregateByCompany(ctx context.Context, companyID uuid.UUID) (OrderStats, error)

	// AggregateByDateRange computes the same aggregates over all orders whose
	// order date falls within [from, to].
	AggregateByDateRange(ctx context.Context, from, to time.Time) (OrderStats, error)
}

// LedgerUnitOfWork runs order and company mutations inside a single
// transaction so that an order save and its company recompute commit or roll
// back together.
type LedgerUnitOfWork interface {
	Execute(ctx context.Context, fn func(orders OrderRepository, companies CompanyRepository) error) error
}
