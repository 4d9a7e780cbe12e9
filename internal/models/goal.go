package models

import (
	"strings"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is an explicit income target for one account and month.
//
// When a goal exists it is the most specific income signal for
// projections and takes precedence over recurring income.
type Goal struct {
	DefaultModel
	Name      string
	Note      string
	AccountID uuid.UUID   `gorm:"uniqueIndex:goal_scope"`
	Account   Account     `json:"-"`
	Month     types.Month `gorm:"uniqueIndex:goal_scope"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency  types.Currency
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	if !g.Amount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	if !g.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}
