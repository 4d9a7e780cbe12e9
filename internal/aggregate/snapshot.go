package aggregate

import (
	"github.com/fintrack-app/backend/internal/holdings"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Input selects what to aggregate.
type Input struct {
	Month     types.Month    // The month to aggregate
	AccountID *uuid.UUID     // nil means all accounts
	Preferred types.Currency // Currency all amounts are expressed in
}

// StatVariant hints the UI about how to render a stat.
type StatVariant string

const (
	StatPositive StatVariant = "positive"
	StatNegative StatVariant = "negative"
)

// IncomeSource tags where the planned income signal for a stat came
// from. A goal is the most specific signal, then recurring income.
type IncomeSource string

const (
	IncomeSourceNone      IncomeSource = "none"
	IncomeSourceRecurring IncomeSource = "recurring"
	IncomeSourceGoal      IncomeSource = "goal"
)

// CategoryBreakdown is the per-category drill-down of a stat.
type CategoryBreakdown struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Planned      decimal.Decimal `json:"planned"`
	Actual       decimal.Decimal `json:"actual"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// Breakdown carries the drill-down data of a stat. Which fields are set
// depends on the stat.
type Breakdown struct {
	Categories     []CategoryBreakdown `json:"categories,omitempty"`
	IncomeSource   IncomeSource        `json:"incomeSource,omitempty"`
	PlannedIncome  decimal.Decimal     `json:"plannedIncome"`
	PlannedExpense decimal.Decimal     `json:"plannedExpense"`
	ActualIncome   decimal.Decimal     `json:"actualIncome"`
	ActualExpense  decimal.Decimal     `json:"actualExpense"`
}

// Stat is one top-line number of the dashboard.
type Stat struct {
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Variant   StatVariant     `json:"variant"`
	Breakdown Breakdown       `json:"breakdown"`
}

// BudgetRow is the budget-vs-actual for one category.
//
// Remaining may be negative, which signals overspend and is not an
// error.
type BudgetRow struct {
	BudgetID     uuid.UUID           `json:"budgetId"`
	CategoryID   uuid.UUID           `json:"categoryId"`
	CategoryName string              `json:"categoryName"`
	CategoryType models.CategoryType `json:"categoryType"`
	Planned      decimal.Decimal     `json:"planned"`
	Actual       decimal.Decimal     `json:"actual"`
	Remaining    decimal.Decimal     `json:"remaining"`
	Progress     decimal.Decimal     `json:"progress"`
}

// Comparison relates the month to the one before it.
type Comparison struct {
	PreviousMonth types.Month     `json:"previousMonth"`
	PreviousNet   decimal.Decimal `json:"previousNet"`
	Change        decimal.Decimal `json:"change"`
}

// HistoryEntry is one month of the rolling history window.
type HistoryEntry struct {
	Month   types.Month     `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// Snapshot is the full aggregation result for one month and scope.
type Snapshot struct {
	Month             types.Month          `json:"month"`
	Stats             []Stat               `json:"stats"`
	Budgets           []BudgetRow          `json:"budgets"`
	Comparison        Comparison           `json:"comparison"`
	History           []HistoryEntry       `json:"history"` // Always HistoryMonths entries, oldest first
	Holdings          []holdings.Valuation `json:"holdings"`
	PreferredCurrency types.Currency       `json:"preferredCurrency"`
}
