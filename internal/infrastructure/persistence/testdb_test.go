package persistence

import (
	"testing"

	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE companies (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			name TEXT NOT NULL UNIQUE,
			address TEXT,
			phone_number TEXT,
			total_orders INTEGER NOT NULL DEFAULT 0,
			total_costs DECIMAL(18,0) NOT NULL DEFAULT 0,
			total_payments DECIMAL(18,0) NOT NULL DEFAULT 0,
			remaining_payments DECIMAL(18,0) NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			title TEXT NOT NULL,
			description TEXT,
			company_id TEXT,
			customer_name TEXT,
			phone_number TEXT,
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			unit_cost DECIMAL(18,0) NOT NULL DEFAULT 0,
			amount INTEGER NOT NULL DEFAULT 1,
			total_cost DECIMAL(18,0) NOT NULL DEFAULT 0,
			payment DECIMAL(18,0) NOT NULL DEFAULT 0,
			remaining_payment DECIMAL(18,0) NOT NULL DEFAULT 0,
			done INTEGER NOT NULL DEFAULT 0,
			paid INTEGER NOT NULL DEFAULT 0,
			order_date DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE factors (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			number INTEGER NOT NULL UNIQUE,
			company_id TEXT,
			customer_name TEXT,
			total_cost DECIMAL(18,0) NOT NULL DEFAULT 0,
			payment DECIMAL(18,0) NOT NULL DEFAULT 0,
			remaining_payment DECIMAL(18,0) NOT NULL DEFAULT 0,
			issued_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

// newTestOrder builds a valid order with derived fields recomputed
func newTestOrder(t *testing.T, title string, billee ledger.Billee, unitCost int64, amount int64, payment int64) *ledger.Order {
	order, err := ledger.NewOrder(title, billee)
	require.NoError(t, err)

	order.UnitCost = decimal.NewFromInt(unitCost)
	order.Amount = amount
	order.Payment = decimal.NewFromInt(payment)
	order.Recalculate(nil)
	return order
}
