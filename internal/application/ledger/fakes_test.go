package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
)

// In-memory repositories backing the service tests.

type fakeOrderRepo struct {
	orders map[uuid.UUID]ledger.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]ledger.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &order, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.Order, error) {
	return r.sorted(), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ledger.Order) error {
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]ledger.Order, error) {
	var result []ledger.Order
	for _, id := range ids {
		if order, ok := r.orders[id]; ok {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) FindByCompany(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]ledger.Order, error) {
	var result []ledger.Order
	for _, order := range r.sorted() {
		if id, ok := order.Billee.CompanyID(); ok && id == companyID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) FindByDateRange(_ context.Context, from, to time.Time, _ shared.Filter) ([]ledger.Order, error) {
	var result []ledger.Order
	for _, order := range r.sorted() {
		if !order.OrderDate.Before(from) && !order.OrderDate.After(to) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) FindPaginated(_ context.Context, filter shared.Filter) (shared.Paginated[ledger.Order], error) {
	items := r.sorted()
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeOrderRepo) AggregateByCompany(_ context.Context, companyID uuid.UUID) (ledger.OrderStats, error) {
	stats := ledger.ZeroOrderStats()
	for _, order := range r.orders {
		if id, ok := order.Billee.CompanyID(); ok && id == companyID {
			stats.TotalOrders++
			stats.TotalCosts = stats.TotalCosts.Add(order.TotalCost)
			stats.TotalPayments = stats.TotalPayments.Add(order.Payment)
		}
	}
	return stats, nil
}

func (r *fakeOrderRepo) AggregateByDateRange(_ context.Context, from, to time.Time) (ledger.OrderStats, error) {
	stats := ledger.ZeroOrderStats()
	for _, order := range r.orders {
		if order.OrderDate.Before(from) || order.OrderDate.After(to) {
			continue
		}
		stats.TotalOrders++
		stats.TotalCosts = stats.TotalCosts.Add(order.TotalCost)
		stats.TotalPayments = stats.TotalPayments.Add(order.Payment)
	}
	return stats, nil
}

func (r *fakeOrderRepo) sorted() []ledger.Order {
	result := make([]ledger.Order, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

type fakeCompanyRepo struct {
	companies map[uuid.UUID]ledger.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[uuid.UUID]ledger.Company)}
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &company, nil
}

func (r *fakeCompanyRepo) FindAll(_ context.Context, _ shared.Filter) ([]ledger.Company, error) {
	result := make([]ledger.Company, 0, len(r.companies))
	for _, company := range r.companies {
		result = append(result, company)
	}
	return result, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, company *ledger.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.companies[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.companies)), nil
}

func (r *fakeCompanyRepo) FindByName(_ context.Context, name string) (*ledger.Company, error) {
	for _, company := range r.companies {
		if company.Name == name {
			c := company
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindPaginated(_ context.Context, filter shared.Filter) (shared.Paginated[ledger.Company], error) {
	items, _ := r.FindAll(context.Background(), filter)
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

// fakeUnitOfWork hands the same in-memory repositories to the callback; the
// tests assert on end state, not rollback behavior.
type fakeUnitOfWork struct {
	orders    *fakeOrderRepo
	companies *fakeCompanyRepo
}

func (u *fakeUnitOfWork) Execute(ctx context.Context, fn func(ledger.OrderRepository, ledger.CompanyRepository) error) error {
	return fn(u.orders, u.companies)
}

func newTestOrderService() (*OrderService, *fakeOrderRepo, *fakeCompanyRepo) {
	orders := newFakeOrderRepo()
	companies := newFakeCompanyRepo()
	uow := &fakeUnitOfWork{orders: orders, companies: companies}
	return NewOrderService(orders, companies, uow), orders, companies
}

func newTestCompanyService() (*CompanyService, *fakeOrderRepo, *fakeCompanyRepo) {
	orders := newFakeOrderRepo()
	companies := newFakeCompanyRepo()
	uow := &fakeUnitOfWork{orders: orders, companies: companies}
	return NewCompanyService(companies, orders, uow), orders, companies
}

func money(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
