package models

import (
	"strings"
	"time"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense record.
//
// Transactions are soft-deleted, never removed. After settlement only the
// note and category may be corrected, the monetary fields stay untouched.
type Transaction struct {
	DefaultModel
	Date       time.Time
	Month      types.Month `gorm:"index"` // Derived from Date, always the first of the month in UTC
	Type       TransactionType
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency   types.Currency
	Note       string
	AccountID  uuid.UUID `gorm:"index"`
	Account    Account   `json:"-"`
	CategoryID uuid.UUID `gorm:"index"`
	Category   Category  `json:"-"`
	Reconciled bool
}

// BeforeSave normalizes the date to UTC and derives the month key.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}
	t.Month = types.MonthOf(t.Date)

	t.Note = strings.TrimSpace(t.Note)

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if !t.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}
