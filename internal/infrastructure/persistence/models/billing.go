package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// FactorModel is the persistence model for the Factor domain entity.
type FactorModel struct {
	AggregateModel
	Number       int64      `gorm:"not null;uniqueIndex"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"type:varchar(200)"`

	TotalCost        decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	Payment          decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	RemainingPayment decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`

	IssuedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (FactorModel) TableName() string {
	return "factors"
}

// ToDomain converts the persistence model to a domain Factor entity.
func (m *FactorModel) ToDomain() *billing.Factor {
	return &billing.Factor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CompanyID:         m.CompanyID,
		CustomerName:      m.CustomerName,
		TotalCost:         m.TotalCost,
		Payment:           m.Payment,
		RemainingPayment:  m.RemainingPayment,
		IssuedAt:          m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain Factor entity.
func (m *FactorModel) FromDomain(f *billing.Factor) {
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	m.Number = f.Number
	m.CompanyID = f.CompanyID
	m.CustomerName = f.CustomerName
	m.TotalCost = f.TotalCost
	m.Payment = f.Payment
	m.RemainingPayment = f.RemainingPayment
	m.IssuedAt = f.IssuedAt
}

// FactorModelFromDomain creates a new persistence model from a domain Factor entity.
func FactorModelFromDomain(f *billing.Factor) *FactorModel {
	m := &FactorModel{}
	m.FromDomain(f)
	return m
}
