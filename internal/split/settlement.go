package split

import (
	"context"
	"fmt"
	"sort"

	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balance is the netted position between the user and one counterpart
// in one currency. Balances in different currencies never merge.
type Balance struct {
	UserID          uuid.UUID       `json:"userId"`
	UserEmail       string          `json:"userEmail"`
	UserDisplayName string          `json:"userDisplayName"`
	Currency        types.Currency  `json:"currency"`
	YouOwe          decimal.Decimal `json:"youOwe"`
	TheyOwe         decimal.Decimal `json:"theyOwe"`
	NetBalance      decimal.Decimal `json:"netBalance"`
}

// Engine computes settlement balances from persisted shared expenses.
type Engine struct {
	db *gorm.DB
}

// NewEngine returns an Engine reading from db.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// balanceKey identifies one (counterpart, currency) pair.
type balanceKey struct {
	userID   uuid.UUID
	currency types.Currency
}

type shareRow struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Currency    types.Currency
	Amount      decimal.Decimal
}

// SettlementBalances nets what the user owes and is owed per
// counterpart and currency, sorted by absolute net balance descending.
//
// Only pending shares count: paid shares are settled and declined
// shares were rejected. A user without any shared expenses gets an
// empty slice, since "no balance" is a valid state, not an error.
func (e *Engine) SettlementBalances(ctx context.Context, userID uuid.UUID) ([]Balance, error) {
	balances := make(map[balanceKey]*Balance)

	ensure := func(row shareRow) *Balance {
		key := balanceKey{userID: row.UserID, currency: row.Currency}
		balance, ok := balances[key]
		if !ok {
			balance = &Balance{
				UserID:          row.UserID,
				UserEmail:       row.Email,
				UserDisplayName: row.DisplayName,
				Currency:        row.Currency,
			}
			balances[key] = balance
		}

		return balance
	}

	// Shares on expenses the user owns: counterparts owe the user
	var owedToUser []shareRow
	err := e.db.WithContext(ctx).
		Table("expense_participants").
		Select("expense_participants.user_id AS user_id, users.email AS email, users.display_name AS display_name, shared_expenses.currency AS currency, expense_participants.share_amount AS amount").
		Joins("JOIN shared_expenses ON shared_expenses.id = expense_participants.shared_expense_id").
		Joins("JOIN users ON users.id = expense_participants.user_id").
		Where("shared_expenses.owner_id = ?", userID).
		Where("expense_participants.status = ?", models.ParticipantStatusPending).
		Where("expense_participants.deleted_at IS NULL").
		Where("shared_expenses.deleted_at IS NULL").
		Scan(&owedToUser).Error
	if err != nil {
		return nil, fmt.Errorf("loading owed shares failed: %w", err)
	}

	for _, row := range owedToUser {
		balance := ensure(row)
		balance.TheyOwe = balance.TheyOwe.Add(row.Amount).Round(2)
	}

	// Shares of the user on expenses owned by others: the user owes
	var userOwes []shareRow
	err = e.db.WithContext(ctx).
		Table("expense_participants").
		Select("shared_expenses.owner_id AS user_id, users.email AS email, users.display_name AS display_name, shared_expenses.currency AS currency, expense_participants.share_amount AS amount").
		Joins("JOIN shared_expenses ON shared_expenses.id = expense_participants.shared_expense_id").
		Joins("JOIN users ON users.id = shared_expenses.owner_id").
		Where("expense_participants.user_id = ?", userID).
		Where("expense_participants.status = ?", models.ParticipantStatusPending).
		Where("expense_participants.deleted_at IS NULL").
		Where("shared_expenses.deleted_at IS NULL").
		Scan(&userOwes).Error
	if err != nil {
		return nil, fmt.Errorf("loading owing shares failed: %w", err)
	}

	for _, row := range userOwes {
		balance := ensure(row)
		balance.YouOwe = balance.YouOwe.Add(row.Amount).Round(2)
	}

	result := make([]Balance, 0, len(balances))
	for _, balance := range balances {
		balance.NetBalance = balance.TheyOwe.Sub(balance.YouOwe).Round(2)
		result = append(result, *balance)
	}

	// Largest exposure first
	sort.Slice(result, func(i, j int) bool {
		return result[i].NetBalance.Abs().GreaterThan(result[j].NetBalance.Abs())
	})

	return result, nil
}
