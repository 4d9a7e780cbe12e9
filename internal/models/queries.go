package models

import (
	"fmt"

	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionsForRange returns all transactions with a month between
// from and to (inclusive), optionally limited to one account.
func TransactionsForRange(db *gorm.DB, from, to types.Month, accountID *uuid.UUID) ([]Transaction, error) {
	var transactions []Transaction

	q := db.Where("month >= ? AND month <= ?", from, to)
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}

	err := q.Order("date ASC").Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("getting transactions between %s and %s failed: %w", from, to, err)
	}

	return transactions, nil
}

// BudgetsForMonth returns all budgets for the month with their
// categories preloaded, optionally limited to one account.
func BudgetsForMonth(db *gorm.DB, month types.Month, accountID *uuid.UUID) ([]Budget, error) {
	var budgets []Budget

	q := db.Preload("Category").Where("month = ?", month)
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}

	err := q.Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("getting budgets for %s failed: %w", month, err)
	}

	return budgets, nil
}

// HoldingsForScope returns all holdings, optionally limited to one account.
func HoldingsForScope(db *gorm.DB, accountID *uuid.UUID) ([]Holding, error) {
	var holdings []Holding

	q := db.Order("symbol ASC")
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	}

	err := q.Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("getting holdings failed: %w", err)
	}

	return holdings, nil
}
