package ledger

import (
	"context"

	"github.com/printshop/backend/internal/domain/shared"
)

// CompanyRepository defines the persistence operations for companies.
type CompanyRepository interface {
	shared.Repository[Company]
	FindByName(ctx context.Context, name string) (*Company, error)
	FindPaginated(ctx context.Context, filter shared.Filter) (shared.Paginated[Company], error)
}
