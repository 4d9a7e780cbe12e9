package models

import (
	"strings"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringIncome is an income that arrives every month, for example a
// salary. It is used as the income signal for projections when no goal
// exists for the month.
type RecurringIncome struct {
	DefaultModel
	Name      string
	AccountID uuid.UUID `gorm:"index"`
	Account   Account   `json:"-"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency  types.Currency
	Active    bool `gorm:"default:true"`
}

func (r *RecurringIncome) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)

	if !r.Amount.IsPositive() {
		return ErrRecurringIncomeNotPositive
	}

	if !r.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}
