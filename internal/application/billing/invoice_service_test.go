package billing

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/rendering"
)

// =============================================================================
// In-memory fakes
// =============================================================================

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
	return nil, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ledger.Order) error {
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
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

func (r *fakeOrderRepo) FindByCompany(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]ledger.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindByDateRange(_ context.Context, _, _ time.Time, _ shared.Filter) ([]ledger.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) FindPaginated(_ context.Context, filter shared.Filter) (shared.Paginated[ledger.Order], error) {
	return shared.NewPaginated([]ledger.Order{}, 0, filter.Page, filter.PageSize), nil
}

func (r *fakeOrderRepo) AggregateByCompany(_ context.Context, _ uuid.UUID) (ledger.OrderStats, error) {
	return ledger.ZeroOrderStats(), nil
}

func (r *fakeOrderRepo) AggregateByDateRange(_ context.Context, _, _ time.Time) (ledger.OrderStats, error) {
	return ledger.ZeroOrderStats(), nil
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
	return nil, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, company *ledger.Company) error {
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.companies)), nil
}

func (r *fakeCompanyRepo) FindByName(_ context.Context, _ string) (*ledger.Company, error) {
	return nil, shared.ErrNotFound
}

func (r *fakeCompanyRepo) FindPaginated(_ context.Context, filter shared.Filter) (shared.Paginated[ledger.Company], error) {
	return shared.NewPaginated([]ledger.Company{}, 0, filter.Page, filter.PageSize), nil
}

// fakeFactorRepo assigns sequential numbers on first save, like the database
// sequence does.
type fakeFactorRepo struct {
	factors map[uuid.UUID]billing.Factor
	nextNum int64
}

func newFakeFactorRepo() *fakeFactorRepo {
	return &fakeFactorRepo{factors: make(map[uuid.UUID]billing.Factor), nextNum: 1}
}

func (r *fakeFactorRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Factor, error) {
	factor, ok := r.factors[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &factor, nil
}

func (r *fakeFactorRepo) FindAll(_ context.Context, _ shared.Filter) ([]billing.Factor, error) {
	return r.sorted(), nil
}

func (r *fakeFactorRepo) Save(_ context.Context, factor *billing.Factor) error {
	if factor.Number == 0 {
		factor.Number = r.nextNum
		r.nextNum++
	}
	r.factors[factor.ID] = *factor
	return nil
}

func (r *fakeFactorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.factors[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.factors, id)
	return nil
}

func (r *fakeFactorRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.factors)), nil
}

func (r *fakeFactorRepo) FindByNumber(_ context.Context, number int64) (*billing.Factor, error) {
	for _, factor := range r.factors {
		if factor.Number == number {
			f := factor
			return &f, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFactorRepo) FindByDateRange(_ context.Context, _, _ time.Time, _ shared.Filter) ([]billing.Factor, error) {
	return r.sorted(), nil
}

func (r *fakeFactorRepo) FindPaginated(_ context.Context, filter shared.Filter) (shared.Paginated[billing.Factor], error) {
	items := r.sorted()
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeFactorRepo) sorted() []billing.Factor {
	result := make([]billing.Factor, 0, len(r.factors))
	for _, factor := range r.factors {
		result = append(result, factor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result
}

type fakeBillingUow struct {
	factors *fakeFactorRepo
}

func (u *fakeBillingUow) Execute(ctx context.Context, fn func(billing.FactorRepository) error) error {
	return fn(u.factors)
}

// fakeRenderer returns a fixed payload instead of launching a browser.
type fakeRenderer struct {
	lastHTML string
}

func (r *fakeRenderer) Render(_ context.Context, req *rendering.RenderRequest) (*rendering.RenderResult, error) {
	r.lastHTML = req.HTML
	return &rendering.RenderResult{PDFData: []byte("%PDF-fake")}, nil
}

func (r *fakeRenderer) Close() error { return nil }

// =============================================================================
// Helpers
// =============================================================================

func testInvoiceTemplate(t *testing.T) *rendering.InvoiceTemplate {
	t.Helper()
	fontPath := filepath.Join(t.TempDir(), "font.ttf")
	require.NoError(t, os.WriteFile(fontPath, []byte("fake ttf"), 0o644))

	tmpl, err := rendering.NewInvoiceTemplate(rendering.InvoiceTemplateConfig{
		ShopTitle: "کانون تبلیغاتی فرهنگی هنری",
		FontPath:  fontPath,
	})
	require.NoError(t, err)
	return tmpl
}

type invoiceFixture struct {
	svc      *InvoiceService
	orders   *fakeOrderRepo
	factors  *fakeFactorRepo
	renderer *fakeRenderer
	company  *ledger.Company
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	orders := newFakeOrderRepo()
	companies := newFakeCompanyRepo()
	factors := newFakeFactorRepo()
	renderer := &fakeRenderer{}

	company, err := ledger.NewCompany("چاپ آریا", "", "031-222")
	require.NoError(t, err)
	require.NoError(t, companies.Save(context.Background(), company))

	svc := NewInvoiceService(orders, companies,
		&fakeBillingUow{factors: factors},
		testInvoiceTemplate(t), renderer, zap.NewNop())

	return &invoiceFixture{
		svc:      svc,
		orders:   orders,
		factors:  factors,
		renderer: renderer,
		company:  company,
	}
}

func (f *invoiceFixture) addOrder(t *testing.T, billee ledger.Billee, cost, payment int64) uuid.UUID {
	t.Helper()
	order, err := ledger.NewOrder("بنر", billee)
	require.NoError(t, err)
	order.Width = 100
	order.Height = 50
	order.UnitCost = decimal.NewFromInt(cost)
	order.Payment = decimal.NewFromInt(payment)
	order.Recalculate(nil)
	require.NoError(t, f.orders.Save(context.Background(), order))
	return order.ID
}

// =============================================================================
// Tests
// =============================================================================

func TestInvoiceService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("one page per billee group", func(t *testing.T) {
		f := newInvoiceFixture(t)
		ids := []uuid.UUID{
			f.addOrder(t, ledger.CompanyBillee(f.company.ID), 350, 200),
			f.addOrder(t, ledger.CustomerBillee("سارا"), 850, 500),
			f.addOrder(t, ledger.CompanyBillee(f.company.ID), 650, 100),
		}

		result, err := f.svc.Generate(ctx, GenerateInvoicesRequest{OrderIDs: ids})
		require.NoError(t, err)

		assert.Equal(t, []byte("%PDF-fake"), result.PDF)
		require.Len(t, result.FactorNumbers, 2)

		// Factors carry per-group totals.
		first, err := f.factors.FindByNumber(ctx, result.FactorNumbers[0])
		require.NoError(t, err)
		assert.True(t, first.TotalCost.Equal(decimal.NewFromInt(1000)))
		assert.True(t, first.Payment.Equal(decimal.NewFromInt(300)))
		assert.True(t, first.RemainingPayment.Equal(decimal.NewFromInt(700)))
		require.NotNil(t, first.CompanyID)
		assert.Equal(t, f.company.ID, *first.CompanyID)

		second, err := f.factors.FindByNumber(ctx, result.FactorNumbers[1])
		require.NoError(t, err)
		assert.Equal(t, "سارا", second.CustomerName)
		assert.True(t, second.TotalCost.Equal(decimal.NewFromInt(850)))

		// The rendered document shows the company name and phone.
		assert.Contains(t, f.renderer.lastHTML, "چاپ آریا")
		assert.Contains(t, f.renderer.lastHTML, "سارا")
	})

	t.Run("filename carries factor numbers and jalali date", func(t *testing.T) {
		f := newInvoiceFixture(t)
		ids := []uuid.UUID{f.addOrder(t, ledger.CustomerBillee("سارا"), 100, 0)}

		result, err := f.svc.Generate(ctx, GenerateInvoicesRequest{OrderIDs: ids})
		require.NoError(t, err)

		expected := invoiceFilename(result.FactorNumbers, time.Now())
		assert.Equal(t, expected, result.Filename)
		assert.Regexp(t, `^factor_1_\d{4}-\d{2}-\d{2}\.pdf$`, result.Filename)
	})

	t.Run("oversized group aborts the whole batch", func(t *testing.T) {
		f := newInvoiceFixture(t)
		var ids []uuid.UUID
		for i := 0; i < 17; i++ {
			ids = append(ids, f.addOrder(t, ledger.CustomerBillee("سارا"), 100, 0))
		}
		ids = append(ids, f.addOrder(t, ledger.CustomerBillee("مینا"), 100, 0))

		_, err := f.svc.Generate(ctx, GenerateInvoicesRequest{OrderIDs: ids})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVOICE_TOO_LARGE", domainErr.Code)

		// No factor was written for any group.
		count, err := f.factors.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("missing order rejected", func(t *testing.T) {
		f := newInvoiceFixture(t)
		ids := []uuid.UUID{f.addOrder(t, ledger.CustomerBillee("سارا"), 100, 0), uuid.New()}

		_, err := f.svc.Generate(ctx, GenerateInvoicesRequest{OrderIDs: ids})
		require.Error(t, err)
	})

	t.Run("disabled without a template", func(t *testing.T) {
		f := newInvoiceFixture(t)
		svc := NewInvoiceService(f.orders, newFakeCompanyRepo(),
			&fakeBillingUow{factors: f.factors}, nil, f.renderer, nil)

		_, err := svc.Generate(ctx, GenerateInvoicesRequest{
			OrderIDs: []uuid.UUID{uuid.New()},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVOICE_DISABLED", domainErr.Code)
	})
}

func TestFactorService(t *testing.T) {
	ctx := context.Background()
	factors := newFakeFactorRepo()
	companies := newFakeCompanyRepo()
	svc := NewFactorService(factors, companies)

	factor := billing.NewFactor(ledger.CustomerBillee("سارا"), billing.GroupTotals{
		TotalCost:        decimal.NewFromInt(1000),
		TotalPayment:     decimal.NewFromInt(400),
		RemainingPayment: decimal.NewFromInt(600),
	})
	require.NoError(t, factors.Save(ctx, factor))

	t.Run("get", func(t *testing.T) {
		resp, err := svc.Get(ctx, factor.ID)
		require.NoError(t, err)
		assert.Equal(t, "سارا", resp.BilleeName)
		assert.False(t, resp.Settled)
	})

	t.Run("record payment", func(t *testing.T) {
		resp, err := svc.RecordPayment(ctx, factor.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(600),
		})
		require.NoError(t, err)
		assert.True(t, resp.Settled)
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, factor.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(1),
		})
		require.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, factor.ID))
		_, err := svc.Get(ctx, factor.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
