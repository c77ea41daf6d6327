package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printshop/backend/internal/domain/shared"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("بنر تبلیغاتی", CustomerBillee("سارا"))
	require.NoError(t, err)
	order.Width = 100
	order.Height = 50
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		order, err := NewOrder("بنر تبلیغاتی", CustomerBillee("سارا"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), order.Amount)
		assert.True(t, order.TotalCost.IsZero())
		assert.False(t, order.OrderDate.IsZero())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewOrder("", CustomerBillee("سارا"))
		require.Error(t, err)
	})

	t.Run("unknown billee", func(t *testing.T) {
		_, err := NewOrder("بنر", UnknownBillee())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BILLEE_MISSING", domainErr.Code)
	})
}

func TestOrder_Recalculate(t *testing.T) {
	t.Run("total and remaining are derived", func(t *testing.T) {
		order := createTestOrder(t)
		order.UnitCost = decimal.NewFromInt(350)
		order.Amount = 3
		order.Payment = decimal.NewFromInt(200)

		order.Recalculate(nil)

		assert.True(t, order.TotalCost.Equal(decimal.NewFromInt(1050)))
		assert.True(t, order.RemainingPayment.Equal(decimal.NewFromInt(850)))
	})

	t.Run("stale derived values are overwritten", func(t *testing.T) {
		order := createTestOrder(t)
		order.UnitCost = decimal.NewFromInt(350)
		order.Amount = 1
		order.Payment = decimal.NewFromInt(200)
		order.TotalCost = decimal.NewFromInt(99999)
		order.RemainingPayment = decimal.NewFromInt(99999)

		order.Recalculate(nil)

		assert.True(t, order.TotalCost.Equal(decimal.NewFromInt(350)))
		assert.True(t, order.RemainingPayment.Equal(decimal.NewFromInt(150)))
	})

	t.Run("paid flag settles the order", func(t *testing.T) {
		order := createTestOrder(t)
		order.UnitCost = decimal.NewFromInt(3000)
		order.Amount = 1
		order.Payment = decimal.NewFromInt(1500)
		order.Paid = true

		order.Recalculate(nil)

		assert.True(t, order.Payment.Equal(decimal.NewFromInt(3000)))
		assert.True(t, order.RemainingPayment.IsZero())
		assert.True(t, order.SettledInFull())
	})

	t.Run("empty phone inherits from company", func(t *testing.T) {
		company, err := NewCompany("چاپ آریا", "", "031-222")
		require.NoError(t, err)

		order := createTestOrder(t)
		order.Billee = CompanyBillee(company.ID)
		order.PhoneNumber = ""
		order.Recalculate(company)

		assert.Equal(t, "031-222", order.PhoneNumber)
	})

	t.Run("explicit phone is kept", func(t *testing.T) {
		company, err := NewCompany("چاپ آریا", "", "031-222")
		require.NoError(t, err)

		order := createTestOrder(t)
		order.PhoneNumber = "0912-000"
		order.Recalculate(company)

		assert.Equal(t, "0912-000", order.PhoneNumber)
	})
}

func TestOrder_Validate(t *testing.T) {
	validOrder := func(t *testing.T) *Order {
		order := createTestOrder(t)
		order.UnitCost = decimal.NewFromInt(350)
		order.Amount = 3
		order.Payment = decimal.NewFromInt(200)
		order.Recalculate(nil)
		return order
	}

	t.Run("valid order passes", func(t *testing.T) {
		assert.NoError(t, validOrder(t).Validate(nil))
	})

	t.Run("non-positive dimensions", func(t *testing.T) {
		order := validOrder(t)
		order.Width = 0
		err := order.Validate(nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DIMENSIONS", domainErr.Code)
	})

	t.Run("payment above total", func(t *testing.T) {
		order := validOrder(t)
		order.Payment = decimal.NewFromInt(2000)
		order.Recalculate(nil)
		err := order.Validate(nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
	})

	t.Run("paid order never overpays", func(t *testing.T) {
		order := validOrder(t)
		order.Payment = decimal.NewFromInt(2000)
		order.Paid = true
		order.Recalculate(nil)
		assert.NoError(t, order.Validate(nil))
	})

	t.Run("phone mismatch with linked company", func(t *testing.T) {
		company, err := NewCompany("چاپ آریا", "", "031-222")
		require.NoError(t, err)

		order := validOrder(t)
		order.Billee = CompanyBillee(company.ID)
		order.PhoneNumber = "0912-000"
		err = order.Validate(company)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PHONE_MISMATCH", domainErr.Code)
	})

	t.Run("matching phone passes", func(t *testing.T) {
		company, err := NewCompany("چاپ آریا", "", "031-222")
		require.NoError(t, err)

		order := validOrder(t)
		order.Billee = CompanyBillee(company.ID)
		order.PhoneNumber = "031-222"
		assert.NoError(t, order.Validate(company))
	})
}

func TestOrder_Dimensions(t *testing.T) {
	order := createTestOrder(t)
	assert.Equal(t, "100 * 50", order.Dimensions())
}
