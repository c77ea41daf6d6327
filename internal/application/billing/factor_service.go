package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	appledger "github.com/printshop/backend/internal/application/ledger"
	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
)

// FactorService handles factor bookkeeping after invoices are printed
type FactorService struct {
	factorRepo  billing.FactorRepository
	companyRepo ledger.CompanyRepository
}

// NewFactorService creates a new FactorService
func NewFactorService(factorRepo billing.FactorRepository, companyRepo ledger.CompanyRepository) *FactorService {
	return &FactorService{
		factorRepo:  factorRepo,
		companyRepo: companyRepo,
	}
}

// Get returns a single factor
func (s *FactorService) Get(ctx context.Context, id uuid.UUID) (*FactorResponse, error) {
	factor, err := s.factorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company, err := s.factorCompany(ctx, factor)
	if err != nil {
		return nil, err
	}

	resp := ToFactorResponse(factor, company)
	return &resp, nil
}

// List returns factors matching the query, paginated
func (s *FactorService) List(ctx context.Context, query ListFactorsQuery) (shared.Paginated[FactorResponse], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.OrderBy = "issued_at"

	if query.DateRange != "" {
		from, to, err := appledger.DateRangePreset(query.DateRange).Resolve(time.Now())
		if err != nil {
			return shared.Paginated[FactorResponse]{}, err
		}
		filter.Filters["issued_from"] = from
		filter.Filters["issued_to"] = to
	}

	page, err := s.factorRepo.FindPaginated(ctx, filter)
	if err != nil {
		return shared.Paginated[FactorResponse]{}, err
	}

	items := make([]FactorResponse, 0, len(page.Items))
	for i := range page.Items {
		factor := &page.Items[i]
		company, err := s.factorCompany(ctx, factor)
		if err != nil {
			return shared.Paginated[FactorResponse]{}, err
		}
		items = append(items, ToFactorResponse(factor, company))
	}

	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// RecordPayment records a payment received against a factor
func (s *FactorService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*FactorResponse, error) {
	factor, err := s.factorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := factor.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.factorRepo.Save(ctx, factor); err != nil {
		return nil, err
	}

	company, err := s.factorCompany(ctx, factor)
	if err != nil {
		return nil, err
	}

	resp := ToFactorResponse(factor, company)
	return &resp, nil
}

// Delete removes a factor record
func (s *FactorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.factorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.factorRepo.Delete(ctx, id)
}

func (s *FactorService) factorCompany(ctx context.Context, factor *billing.Factor) (*ledger.Company, error) {
	if factor.CompanyID == nil {
		return nil, nil
	}
	company, err := s.companyRepo.FindByID(ctx, *factor.CompanyID)
	if err == shared.ErrNotFound {
		// The company may have been deleted after the invoice was printed.
		return nil, nil
	}
	return company, err
}
