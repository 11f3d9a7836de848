package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/finance"
)

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	BaseModel
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Memo   string          `gorm:"type:text"`
}

// TableName specifies the table name
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the model to a domain Expense
func (m *ExpenseModel) ToDomain() *finance.Expense {
	return &finance.Expense{
		BaseEntity: m.BaseModel.ToDomain(),
		Amount:     m.Amount,
		Memo:       m.Memo,
	}
}

// FromDomain populates the model from a domain Expense
func (m *ExpenseModel) FromDomain(e *finance.Expense) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Amount = e.Amount
	m.Memo = e.Memo
}

// DailyClosingModel is the persistence model for daily closings. The unique
// index on date enforces the one-closing-per-day invariant.
type DailyClosingModel struct {
	BaseModel
	Date         time.Time       `gorm:"type:date;not null;uniqueIndex"`
	TotalRevenue decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalExpense decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NetBalance   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName specifies the table name
func (DailyClosingModel) TableName() string {
	return "daily_closings"
}

// ToDomain converts the model to a domain DailyClosing
func (m *DailyClosingModel) ToDomain() *finance.DailyClosing {
	return &finance.DailyClosing{
		BaseEntity:   m.BaseModel.ToDomain(),
		Date:         m.Date,
		TotalRevenue: m.TotalRevenue,
		TotalExpense: m.TotalExpense,
		NetBalance:   m.NetBalance,
	}
}

// FromDomain populates the model from a domain DailyClosing
func (m *DailyClosingModel) FromDomain(c *finance.DailyClosing) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Date = c.Date
	m.TotalRevenue = c.TotalRevenue
	m.TotalExpense = c.TotalExpense
	m.NetBalance = c.NetBalance
}
