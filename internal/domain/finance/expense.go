package finance

import (
	"github.com/shopspring/decimal"
	"github.com/taller/backend/internal/domain/shared"
	"github.com/taller/backend/internal/domain/shared/valueobject"
)

// Expense is a flat monetary outflow record with a free-text memo
type Expense struct {
	shared.BaseEntity
	Amount decimal.Decimal
	Memo   string
}

// NewExpense creates a new expense record
func NewExpense(amount decimal.Decimal, memo string) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	return &Expense{
		BaseEntity: shared.NewBaseEntity(),
		Amount:     amount,
		Memo:       memo,
	}, nil
}

// Update patches the amount and/or memo
func (e *Expense) Update(amount *decimal.Decimal, memo *string) error {
	if amount != nil {
		if !amount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
		}
		e.Amount = *amount
	}
	if memo != nil {
		e.Memo = *memo
	}
	e.Touch()
	return nil
}

// AmountMoney returns the amount as Money
func (e *Expense) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyCRC(e.Amount)
}

// TotalExpenses sums expense amounts, rounded to two decimals
func TotalExpenses(expenses []Expense) decimal.Decimal {
	total := valueobject.ZeroCRC()
	for i := range expenses {
		// expense amounts are all CRC, Add cannot mismatch
		total, _ = total.Add(expenses[i].AmountMoney())
	}
	return total.Round().Amount()
}

// Description returns the memo, or a placeholder when absent
func (e *Expense) Description() string {
	if e.Memo == "" {
		return "Sin descripción"
	}
	return e.Memo
}
