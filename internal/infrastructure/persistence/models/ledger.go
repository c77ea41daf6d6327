package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address     string `gorm:"type:text"`
	PhoneNumber string `gorm:"type:varchar(50)"`

	TotalOrders       int64           `gorm:"not null;default:0"`
	TotalCosts        decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	TotalPayments     decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	RemainingPayments decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *ledger.Company {
	return &ledger.Company{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		PhoneNumber:       m.PhoneNumber,
		TotalOrders:       m.TotalOrders,
		TotalCosts:        m.TotalCosts,
		TotalPayments:     m.TotalPayments,
		RemainingPayments: m.RemainingPayments,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *ledger.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Address = c.Address
	m.PhoneNumber = c.PhoneNumber
	m.TotalOrders = c.TotalOrders
	m.TotalCosts = c.TotalCosts
	m.TotalPayments = c.TotalPayments
	m.RemainingPayments = c.RemainingPayments
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *ledger.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// OrderModel is the persistence model for the Order domain entity. The billee
// is flattened into two nullable columns; at most one of them is set.
type OrderModel struct {
	AggregateModel
	Title        string     `gorm:"type:varchar(200);not null"`
	Description  string     `gorm:"type:text"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string     `gorm:"type:varchar(200);index"`
	PhoneNumber  string     `gorm:"type:varchar(50)"`

	Width  int `gorm:"not null;default:0"`
	Height int `gorm:"not null;default:0"`

	UnitCost         decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	Amount           int64           `gorm:"not null;default:1"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	Payment          decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`
	RemainingPayment decimal.Decimal `gorm:"type:decimal(18,0);not null;default:0"`

	Done bool `gorm:"not null;default:false"`
	Paid bool `gorm:"not null;default:false"`

	OrderDate time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ledger.Order {
	var billee ledger.Billee
	switch {
	case m.CompanyID != nil:
		billee = ledger.CompanyBillee(*m.CompanyID)
	case m.CustomerName != "":
		billee = ledger.CustomerBillee(m.CustomerName)
	default:
		billee = ledger.UnknownBillee()
	}

	return &ledger.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Description:       m.Description,
		Billee:            billee,
		PhoneNumber:       m.PhoneNumber,
		Width:             m.Width,
		Height:            m.Height,
		UnitCost:          m.UnitCost,
		Amount:            m.Amount,
		TotalCost:         m.TotalCost,
		Payment:           m.Payment,
		RemainingPayment:  m.RemainingPayment,
		Done:              m.Done,
		Paid:              m.Paid,
		OrderDate:         m.OrderDate,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *ledger.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Title = o.Title
	m.Description = o.Description
	m.PhoneNumber = o.PhoneNumber
	m.Width = o.Width
	m.Height = o.Height
	m.UnitCost = o.UnitCost
	m.Amount = o.Amount
	m.TotalCost = o.TotalCost
	m.Payment = o.Payment
	m.RemainingPayment = o.RemainingPayment
	m.Done = o.Done
	m.Paid = o.Paid
	m.OrderDate = o.OrderDate

	m.CompanyID = nil
	m.CustomerName = ""
	if id, ok := o.Billee.CompanyID(); ok {
		m.CompanyID = &id
	} else {
		m.CustomerName = o.Billee.CustomerName()
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *ledger.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
