package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
)

// OrderService handles order-related business operations. Every mutation
// saves the order and recomputes the owning company's aggregates inside one
// transaction; if either step fails, nothing is written.
type OrderService struct {
	orderRepo   ledger.OrderRepository
	companyRepo ledger.CompanyRepository
	uow         ledger.LedgerUnitOfWork
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ledger.OrderRepository,
	companyRepo ledger.CompanyRepository,
	uow ledger.LedgerUnitOfWork,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		uow:         uow,
	}
}

// Create records a new order
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	billee, err := ledger.NewBillee(req.CompanyID, req.CustomerName)
	if err != nil {
		return nil, err
	}

	order, err := ledger.NewOrder(req.Title, billee)
	if err != nil {
		return nil, err
	}

	order.Description = req.Description
	order.PhoneNumber = req.PhoneNumber
	order.Width = req.Width
	order.Height = req.Height
	order.UnitCost = req.UnitCost
	order.Amount = req.Amount
	if req.Payment != nil {
		order.Payment = *req.Payment
	}
	order.Done = req.Done
	order.Paid = req.Paid
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}

	var company *ledger.Company
	err = s.uow.Execute(ctx, func(orders ledger.OrderRepository, companies ledger.CompanyRepository) error {
		var err error
		company, err = s.billeeCompany(ctx, companies, order.Billee)
		if err != nil {
			return err
		}

		order.Recalculate(company)
		if err := order.Validate(company); err != nil {
			return err
		}

		if err := orders.Save(ctx, order); err != nil {
			return err
		}

		return s.recomputeCompany(ctx, orders, companies, company)
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, company)
	return &resp, nil
}

// Update modifies an order and recomputes the affected companies. When the
// order moves between companies, both the old and the new company are
// recomputed in the same transaction.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var (
		order   *ledger.Order
		company *ledger.Company
	)

	err := s.uow.Execute(ctx, func(orders ledger.OrderRepository, companies ledger.CompanyRepository) error {
		var err error
		order, err = orders.FindByID(ctx, id)
		if err != nil {
			return err
		}

		previousBillee := order.Billee

		if req.CompanyID != nil || req.CustomerName != nil {
			customerName := ""
			if req.CustomerName != nil {
				customerName = *req.CustomerName
			}
			billee, err := ledger.NewBillee(req.CompanyID, customerName)
			if err != nil {
				return err
			}
			order.Billee = billee
		}

		if req.Title != nil {
			order.Title = *req.Title
		}
		if req.Description != nil {
			order.Description = *req.Description
		}
		if req.PhoneNumber != nil {
			order.PhoneNumber = *req.PhoneNumber
		}
		if req.Width != nil {
			order.Width = *req.Width
		}
		if req.Height != nil {
			order.Height = *req.Height
		}
		if req.UnitCost != nil {
			order.UnitCost = *req.UnitCost
		}
		if req.Amount != nil {
			order.Amount = *req.Amount
		}
		if req.Payment != nil {
			order.Payment = *req.Payment
		}
		if req.Done != nil {
			order.Done = *req.Done
		}
		if req.Paid != nil {
			order.Paid = *req.Paid
		}
		if req.OrderDate != nil {
			order.OrderDate = *req.OrderDate
		}

		company, err = s.billeeCompany(ctx, companies, order.Billee)
		if err != nil {
			return err
		}

		order.Recalculate(company)
		if err := order.Validate(company); err != nil {
			return err
		}

		if err := orders.Save(ctx, order); err != nil {
			return err
		}

		if err := s.recomputeCompany(ctx, orders, companies, company); err != nil {
			return err
		}

		// Rebilled away from a company: its aggregates shrink too.
		if prevID, ok := previousBillee.CompanyID(); ok {
			if curID, cur := order.Billee.CompanyID(); !cur || curID != prevID {
				previous, err := companies.FindByID(ctx, prevID)
				if err != nil {
					return err
				}
				if err := s.recomputeCompany(ctx, orders, companies, previous); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, company)
	return &resp, nil
}

// Delete removes an order and recomputes its company's aggregates
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Execute(ctx, func(orders ledger.OrderRepository, companies ledger.CompanyRepository) error {
		order, err := orders.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := orders.Delete(ctx, id); err != nil {
			return err
		}

		company, err := s.billeeCompany(ctx, companies, order.Billee)
		if err != nil {
			return err
		}

		return s.recomputeCompany(ctx, orders, companies, company)
	})
}

// Get returns a single order
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company, err := s.billeeCompany(ctx, s.companyRepo, order.Billee)
	if err != nil {
		return nil, err
	}

	resp := ToOrderResponse(order, company)
	return &resp, nil
}

// List returns orders matching the query, paginated
func (s *OrderService) List(ctx context.Context, query ListOrdersQuery) (shared.Paginated[OrderResponse], error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	page, err := s.orderRepo.FindPaginated(ctx, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	companies, err := s.loadCompanies(ctx, page.Items)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		order := &page.Items[i]
		var company *ledger.Company
		if id, ok := order.Billee.CompanyID(); ok {
			company = companies[id]
		}
		items = append(items, ToOrderResponse(order, company))
	}

	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// Summary aggregates all orders in a Jalali reporting window
func (s *OrderService) Summary(ctx context.Context, preset DateRangePreset) (*SummaryResponse, error) {
	if preset == "" {
		preset = PresetToday
	}

	from, to, err := preset.Resolve(time.Now())
	if err != nil {
		return nil, err
	}

	stats, err := s.orderRepo.AggregateByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		DateRange:        string(preset),
		From:             from,
		To:               to,
		TotalOrders:      stats.TotalOrders,
		TotalCosts:       stats.TotalCosts,
		TotalPayments:    stats.TotalPayments,
		RemainingPayment: stats.TotalCosts.Sub(stats.TotalPayments),
	}, nil
}

func (s *OrderService) buildFilter(query ListOrdersQuery) (shared.Filter, error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.Search = query.Search
	filter.OrderBy = "order_date"

	if query.CompanyID != nil {
		filter.Filters["company_id"] = *query.CompanyID
	}
	if query.Done != nil {
		filter.Filters["done"] = *query.Done
	}
	if query.Paid != nil {
		filter.Filters["paid"] = *query.Paid
	}
	if query.DateRange != "" {
		from, to, err := DateRangePreset(query.DateRange).Resolve(time.Now())
		if err != nil {
			return shared.Filter{}, err
		}
		filter.Filters["order_date_from"] = from
		filter.Filters["order_date_to"] = to
	}

	return filter, nil
}

// billeeCompany loads the company an order is billed to, or nil when the
// billee is not a company.
func (s *OrderService) billeeCompany(ctx context.Context, companies ledger.CompanyRepository, billee ledger.Billee) (*ledger.Company, error) {
	id, ok := billee.CompanyID()
	if !ok {
		return nil, nil
	}
	return companies.FindByID(ctx, id)
}

// recomputeCompany rescans the company's orders and persists the fresh
// aggregates. A nil company is a no-op.
func (s *OrderService) recomputeCompany(ctx context.Context, orders ledger.OrderRepository, companies ledger.CompanyRepository, company *ledger.Company) error {
	if company == nil {
		return nil
	}

	stats, err := orders.AggregateByCompany(ctx, company.ID)
	if err != nil {
		return err
	}

	company.Recalculate(stats)
	if err := company.Validate(); err != nil {
		return err
	}

	return companies.Save(ctx, company)
}

func (s *OrderService) loadCompanies(ctx context.Context, orders []ledger.Order) (map[uuid.UUID]*ledger.Company, error) {
	companies := make(map[uuid.UUID]*ledger.Company)
	for i := range orders {
		id, ok := orders[i].Billee.CompanyID()
		if !ok {
			continue
		}
		if _, loaded := companies[id]; loaded {
			continue
		}
		company, err := s.companyRepo.FindByID(ctx, id)
		if err != nil {
			if err == shared.ErrNotFound {
				continue
			}
			return nil, err
		}
		companies[id] = company
	}
	return companies, nil
}
