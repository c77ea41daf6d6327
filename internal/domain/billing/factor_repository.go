package billing

import (
	"context"
	"time"

	"github.com/printshop/backend/internal/domain/shared"
)

// FactorRepository defines the persistence operations for factors. Save
// assigns Number from the store's sequence on first insert.
type FactorRepository interface {
	shared.Repository[Factor]
	FindByNumber(ctx context.Context, number int64) (*Factor, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Factor, error)
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[Factor], error)
}

// BillingUnitOfWork runs factor mutations for one invoice batch inside a
// single transaction.
type BillingUnitOfWork interface {
	Execute(ctx context.Context, fn func(factors FactorRepository) error) error
}
