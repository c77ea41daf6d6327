package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/printshop/backend/internal/domain/shared"
)

func registerCompany(t *testing.T, companies *fakeCompanyRepo, name, phone string) *ledger.Company {
	t.Helper()
	company, err := ledger.NewCompany(name, "", phone)
	require.NoError(t, err)
	require.NoError(t, companies.Save(context.Background(), company))
	return company
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("customer order with derived fields", func(t *testing.T) {
		svc, _, _ := newTestOrderService()

		payment := money(200)
		resp, err := svc.Create(ctx, CreateOrderRequest{
			Title:        "بنر تبلیغاتی",
			CustomerName: "سارا",
			Width:        100,
			Height:       50,
			UnitCost:     money(350),
			Amount:       3,
			Payment:      &payment,
		})
		require.NoError(t, err)

		assert.True(t, resp.TotalCost.Equal(money(1050)))
		assert.True(t, resp.RemainingPayment.Equal(money(850)))
		assert.Equal(t, "سارا", resp.BilleeName)
	})

	t.Run("company order recomputes company aggregates", func(t *testing.T) {
		svc, _, companies := newTestOrderService()
		company := registerCompany(t, companies, "چاپ آریا", "031-222")

		payment := money(200)
		resp, err := svc.Create(ctx, CreateOrderRequest{
			Title:     "کارت ویزیت",
			CompanyID: &company.ID,
			Width:     9,
			Height:    5,
			UnitCost:  money(350),
			Amount:    1,
			Payment:   &payment,
		})
		require.NoError(t, err)

		// Empty phone was inherited from the company.
		assert.Equal(t, "031-222", resp.PhoneNumber)

		saved, err := companies.FindByID(ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.TotalOrders)
		assert.True(t, saved.TotalCosts.Equal(money(350)))
		assert.True(t, saved.TotalPayments.Equal(money(200)))
		assert.True(t, saved.RemainingPayments.Equal(money(150)))
	})

	t.Run("both billees rejected", func(t *testing.T) {
		svc, _, companies := newTestOrderService()
		company := registerCompany(t, companies, "چاپ آریا", "")

		_, err := svc.Create(ctx, CreateOrderRequest{
			Title:        "بنر",
			CompanyID:    &company.ID,
			CustomerName: "سارا",
			Width:        10,
			Height:       10,
			Amount:       1,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BILLEE_AMBIGUOUS", domainErr.Code)
	})

	t.Run("overpayment rejected and nothing persisted", func(t *testing.T) {
		svc, orders, _ := newTestOrderService()

		payment := money(2000)
		_, err := svc.Create(ctx, CreateOrderRequest{
			Title:        "بنر",
			CustomerName: "سارا",
			Width:        10,
			Height:       10,
			UnitCost:     money(350),
			Amount:       1,
			Payment:      &payment,
		})
		require.Error(t, err)

		count, err := orders.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown company rejected", func(t *testing.T) {
		svc, _, _ := newTestOrderService()
		company, err := ledger.NewCompany("ثبت نشده", "", "")
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateOrderRequest{
			Title:     "بنر",
			CompanyID: &company.ID,
			Width:     10,
			Height:    10,
			Amount:    1,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("payment change recomputes company", func(t *testing.T) {
		svc, _, companies := newTestOrderService()
		company := registerCompany(t, companies, "چاپ آریا", "")

		resp, err := svc.Create(ctx, CreateOrderRequest{
			Title:     "کارت ویزیت",
			CompanyID: &company.ID,
			Width:     9,
			Height:    5,
			UnitCost:  money(3000),
			Amount:    1,
		})
		require.NoError(t, err)

		payment := money(1500)
		updated, err := svc.Update(ctx, resp.ID, UpdateOrderRequest{Payment: &payment})
		require.NoError(t, err)
		assert.True(t, updated.RemainingPayment.Equal(money(1500)))

		saved, err := companies.FindByID(ctx, company.ID)
		require.NoError(t, err)
		assert.True(t, saved.TotalPayments.Equal(money(1500)))
		assert.True(t, saved.RemainingPayments.Equal(money(1500)))
	})

	t.Run("paid flag settles in full", func(t *testing.T) {
		svc, _, _ := newTestOrderService()

		payment := money(1500)
		resp, err := svc.Create(ctx, CreateOrderRequest{
			Title:        "بنر",
			CustomerName: "سارا",
			Width:        10,
			Height:       10,
			UnitCost:     money(3000),
			Amount:       1,
			Payment:      &payment,
		})
		require.NoError(t, err)

		paid := true
		updated, err := svc.Update(ctx, resp.ID, UpdateOrderRequest{Paid: &paid})
		require.NoError(t, err)
		assert.True(t, updated.Payment.Equal(money(3000)))
		assert.True(t, updated.RemainingPayment.IsZero())
	})

	t.Run("moving between companies recomputes both", func(t *testing.T) {
		svc, _, companies := newTestOrderService()
		first := registerCompany(t, companies, "چاپ آریا", "")
		second := registerCompany(t, companies, "چاپ نوین", "")

		resp, err := svc.Create(ctx, CreateOrderRequest{
			Title:     "بنر",
			CompanyID: &first.ID,
			Width:     10,
			Height:    10,
			UnitCost:  money(500),
			Amount:    1,
		})
		require.NoError(t, err)

		_, err = svc.Update(ctx, resp.ID, UpdateOrderRequest{CompanyID: &second.ID})
		require.NoError(t, err)

		oldCompany, err := companies.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), oldCompany.TotalOrders)
		assert.True(t, oldCompany.TotalCosts.IsZero())

		newCompany, err := companies.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), newCompany.TotalOrders)
		assert.True(t, newCompany.TotalCosts.Equal(money(500)))
	})

	t.Run("missing order", func(t *testing.T) {
		svc, _, _ := newTestOrderService()
		order, err := ledger.NewOrder("بنر", ledger.CustomerBillee("سارا"))
		require.NoError(t, err)

		_, err = svc.Update(ctx, order.ID, UpdateOrderRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, orders, companies := newTestOrderService()
	company := registerCompany(t, companies, "چاپ آریا", "")

	resp, err := svc.Create(ctx, CreateOrderRequest{
		Title:     "بنر",
		CompanyID: &company.ID,
		Width:     10,
		Height:    10,
		UnitCost:  money(500),
		Amount:    1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, resp.ID))

	_, err = orders.FindByID(ctx, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	saved, err := companies.FindByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), saved.TotalOrders)
	assert.True(t, saved.TotalCosts.IsZero())
	assert.True(t, saved.RemainingPayments.IsZero())
}

func TestOrderService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestOrderService()

	payment := money(200)
	_, err := svc.Create(ctx, CreateOrderRequest{
		Title:        "بنر",
		CustomerName: "سارا",
		Width:        10,
		Height:       10,
		UnitCost:     money(350),
		Amount:       1,
		Payment:      &payment,
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, PresetToday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalOrders)
	assert.True(t, summary.TotalCosts.Equal(money(350)))
	assert.True(t, summary.TotalPayments.Equal(money(200)))
	assert.True(t, summary.RemainingPayment.Equal(money(150)))

	_, err = svc.Summary(ctx, DateRangePreset("bogus"))
	assert.Error(t, err)
}
