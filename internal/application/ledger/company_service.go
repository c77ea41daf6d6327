package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
)

// CompanyService handles company-related business operations
type CompanyService struct {
	companyRepo ledger.CompanyRepository
	orderRepo   ledger.OrderRepository
	uow         ledger.LedgerUnitOfWork
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(
	companyRepo ledger.CompanyRepository,
	orderRepo ledger.OrderRepository,
	uow ledger.LedgerUnitOfWork,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		orderRepo:   orderRepo,
		uow:         uow,
	}
}

// Create registers a new company
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	existing, err := s.companyRepo.FindByName(ctx, req.Name)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company with this name already exists")
	}

	company, err := ledger.NewCompany(req.Name, req.Address, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Update changes a company's editable fields. When the phone number changes,
// orders that inherited the old number keep it; inheritance happens at order
// save time only.
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := company.Name
	if req.Name != nil {
		name = *req.Name
	}
	address := company.Address
	if req.Address != nil {
		address = *req.Address
	}
	phone := company.PhoneNumber
	if req.PhoneNumber != nil {
		phone = *req.PhoneNumber
	}

	if err := company.Update(name, address, phone); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Get returns a single company
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// List returns companies matching the filter, paginated
func (s *CompanyService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CompanyResponse], error) {
	page, err := s.companyRepo.FindPaginated(ctx, filter)
	if err != nil {
		return shared.Paginated[CompanyResponse]{}, err
	}

	items := make([]CompanyResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCompanyResponse(&page.Items[i]))
	}

	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Delete removes a company. Companies that still own orders cannot be
// deleted; the orders must be deleted or rebilled first.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companyRepo.FindByID(ctx, id); err != nil {
		return err
	}

	stats, err := s.orderRepo.AggregateByCompany(ctx, id)
	if err != nil {
		return err
	}
	if stats.TotalOrders > 0 {
		return shared.NewDomainError("COMPANY_HAS_ORDERS",
			"Company still owns orders and cannot be deleted")
	}

	return s.companyRepo.Delete(ctx, id)
}

// Recompute re-derives a company's aggregates from a full scan of its orders
// and persists the result. Exposed for repairing rows after manual data
// fixes; normal order mutations recompute automatically.
func (s *CompanyService) Recompute(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	var company *ledger.Company

	err := s.uow.Execute(ctx, func(orders ledger.OrderRepository, companies ledger.CompanyRepository) error {
		var err error
		company, err = companies.FindByID(ctx, id)
		if err != nil {
			return err
		}

		stats, err := orders.AggregateByCompany(ctx, id)
		if err != nil {
			return err
		}

		company.Recalculate(stats)
		if err := company.Validate(); err != nil {
			return err
		}

		return companies.Save(ctx, company)
	})
	if err != nil {
		return nil, err
	}

	resp := ToCompanyResponse(company)
	return &resp, nil
}
