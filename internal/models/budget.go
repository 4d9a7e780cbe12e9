package models

import (
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Budget is the planned amount for one account, category and month.
//
// There is at most one budget per (account, category, month). Writes go
// through UpsertBudget so that repeated planning for the same scope
// updates the existing row instead of failing.
type Budget struct {
	DefaultModel
	AccountID  uuid.UUID   `gorm:"uniqueIndex:budget_scope"`
	Account    Account     `json:"-"`
	CategoryID uuid.UUID   `gorm:"uniqueIndex:budget_scope"`
	Category   Category    `json:"-"`
	Month      types.Month `gorm:"uniqueIndex:budget_scope"`
	Planned    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency   types.Currency
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Planned.IsNegative() {
		return ErrBudgetPlannedNegative
	}

	if !b.Currency.Valid() {
		return types.ErrUnsupportedCurrency
	}

	return nil
}

// UpsertBudget creates the budget or, if one already exists for the same
// account, category and month, updates its planned amount and currency.
func UpsertBudget(db *gorm.DB, budget *Budget) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned", "currency", "updated_at"}),
	}).Create(budget).Error
}
