package persistence

import (
	"context"

	"github.com/printshop/backend/internal/domain/billing"
	"github.com/printshop/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormLedgerUnitOfWork runs order and company mutations inside one database
// transaction. The repositories handed to the callback are bound to the
// transaction, so an order save and its company recompute commit together.
type GormLedgerUnitOfWork struct {
	db *gorm.DB
}

// NewGormLedgerUnitOfWork creates a new GormLedgerUnitOfWork
func NewGormLedgerUnitOfWork(db *gorm.DB) *GormLedgerUnitOfWork {
	return &GormLedgerUnitOfWork{db: db}
}

// Execute runs fn within a transaction and rolls back when fn returns an error
func (u *GormLedgerUnitOfWork) Execute(ctx context.Context, fn func(orders ledger.OrderRepository, companies ledger.CompanyRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormOrderRepository(tx), NewGormCompanyRepository(tx))
	})
}

// GormBillingUnitOfWork runs factor mutations for one invoice batch inside a
// single transaction, so a rejected batch leaves no factors behind.
type GormBillingUnitOfWork struct {
	db *gorm.DB
}

// NewGormBillingUnitOfWork creates a new GormBillingUnitOfWork
func NewGormBillingUnitOfWork(db *gorm.DB) *GormBillingUnitOfWork {
	return &GormBillingUnitOfWork{db: db}
}

// Execute runs fn within a transaction and rolls back when fn returns an error
func (u *GormBillingUnitOfWork) Execute(ctx context.Context, fn func(factors billing.FactorRepository) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormFactorRepository(tx))
	})
}

// Ensure the units of work implement their domain interfaces
var (
	_ ledger.LedgerUnitOfWork   = (*GormLedgerUnitOfWork)(nil)
	_ billing.BillingUnitOfWork = (*GormBillingUnitOfWork)(nil)
)
