// Package aggregate recomputes month-scoped financial summaries from
// raw transaction and budget rows.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fintrack-app/backend/internal/fx"
	"github.com/fintrack-app/backend/internal/holdings"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HistoryMonths is the size of the rolling history window.
const HistoryMonths = 6

// Stat labels, kept stable for API consumers.
const (
	LabelActualNet        = "Actual net"
	LabelProjectedNet     = "Projected net"
	LabelRemainingToSpend = "Remaining to spend"
	LabelPlannedNet       = "Planned net"
)

// Aggregator computes dashboard snapshots.
type Aggregator struct {
	db       *gorm.DB
	fx       *fx.Service
	valuator *holdings.Valuator
}

// New returns an Aggregator reading from db and converting through the
// given services.
func New(db *gorm.DB, fxService *fx.Service, valuator *holdings.Valuator) *Aggregator {
	return &Aggregator{db: db, fx: fxService, valuator: valuator}
}

// monthBucket accumulates converted amounts for one month.
type monthBucket struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

// Compute aggregates the month for the given scope, with every amount
// converted to the preferred currency before summing.
func (a *Aggregator) Compute(ctx context.Context, in Input) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	preferred := in.Preferred
	if !preferred.Valid() {
		preferred = types.DefaultCurrency
	}

	table, err := a.fx.BatchLoadRates(ctx, in.Month.FirstDay())
	if err != nil {
		// BatchLoadRates degrades internally; an error here means the
		// context is gone
		return Snapshot{}, err
	}

	windowStart := in.Month.AddDate(0, -(HistoryMonths - 1))
	transactions, err := models.TransactionsForRange(a.db, windowStart, in.Month, in.AccountID)
	if err != nil {
		return Snapshot{}, err
	}

	// Convert per row before aggregating, then bucket per month and,
	// for the current month, per category
	buckets := make(map[string]*monthBucket, HistoryMonths)
	actualByCategory := make(map[uuid.UUID]decimal.Decimal)

	var actualIncome, actualExpense decimal.Decimal
	for _, t := range transactions {
		amount := fx.Convert(t.Amount, t.Currency, preferred, table)

		key := t.Month.String()
		bucket, ok := buckets[key]
		if !ok {
			bucket = &monthBucket{}
			buckets[key] = bucket
		}

		switch t.Type {
		case models.TransactionTypeIncome:
			bucket.income = bucket.income.Add(amount)
		case models.TransactionTypeExpense:
			bucket.expense = bucket.expense.Add(amount)
		}

		if t.Month.Equal(in.Month) {
			actualByCategory[t.CategoryID] = actualByCategory[t.CategoryID].Add(amount)

			switch t.Type {
			case models.TransactionTypeIncome:
				actualIncome = actualIncome.Add(amount)
			case models.TransactionTypeExpense:
				actualExpense = actualExpense.Add(amount)
			}
		}
	}
	actualIncome = actualIncome.Round(2)
	actualExpense = actualExpense.Round(2)

	budgets, err := models.BudgetsForMonth(a.db, in.Month, in.AccountID)
	if err != nil {
		return Snapshot{}, err
	}

	budgetRows, categoryBreakdowns, plannedIncome, plannedExpense, remainingToSpend := a.budgetRows(budgets, actualByCategory, preferred, table)

	incomeSignal, incomeSource, err := a.incomeSignal(in, preferred, table, plannedIncome)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		Month:             in.Month,
		Budgets:           budgetRows,
		PreferredCurrency: preferred,
	}

	// Top-line stats
	actualNet := actualIncome.Sub(actualExpense).Round(2)
	plannedNet := incomeSignal.Sub(plannedExpense).Round(2)
	projectedNet := a.projectedNet(incomeSignal, actualIncome, budgets, actualByCategory, preferred, table)

	netBreakdown := Breakdown{
		IncomeSource:   incomeSource,
		PlannedIncome:  incomeSignal,
		PlannedExpense: plannedExpense,
		ActualIncome:   actualIncome,
		ActualExpense:  actualExpense,
	}

	snapshot.Stats = []Stat{
		{
			Label:   LabelActualNet,
			Amount:  actualNet,
			Variant: variant(actualNet),
			Breakdown: Breakdown{
				ActualIncome:  actualIncome,
				ActualExpense: actualExpense,
			},
		},
		{
			Label:     LabelProjectedNet,
			Amount:    projectedNet,
			Variant:   variant(projectedNet),
			Breakdown: netBreakdown,
		},
		{
			Label:   LabelRemainingToSpend,
			Amount:  remainingToSpend,
			Variant: StatPositive,
			Breakdown: Breakdown{
				Categories:     categoryBreakdowns,
				PlannedExpense: plannedExpense,
				ActualExpense:  actualExpense,
			},
		},
		{
			Label:     LabelPlannedNet,
			Amount:    plannedNet,
			Variant:   variant(plannedNet),
			Breakdown: netBreakdown,
		},
	}

	// Previous-month comparison, zero when there is no previous data
	previousMonth := in.Month.AddDate(0, -1)
	previousNet := decimal.Zero
	if bucket, ok := buckets[previousMonth.String()]; ok {
		previousNet = bucket.income.Sub(bucket.expense).Round(2)
	}
	snapshot.Comparison = Comparison{
		PreviousMonth: previousMonth,
		PreviousNet:   previousNet,
		Change:        actualNet.Sub(previousNet).Round(2),
	}

	// Rolling history, every month seeded so charts never show gaps
	snapshot.History = make([]HistoryEntry, 0, HistoryMonths)
	for i := HistoryMonths - 1; i >= 0; i-- {
		month := in.Month.AddDate(0, -i)
		entry := HistoryEntry{
			Month:   month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Net:     decimal.Zero,
		}

		if bucket, ok := buckets[month.String()]; ok {
			entry.Income = bucket.income.Round(2)
			entry.Expense = bucket.expense.Round(2)
			entry.Net = entry.Income.Sub(entry.Expense)
		}

		snapshot.History = append(snapshot.History, entry)
	}

	// Holdings valuation
	rows, err := models.HoldingsForScope(a.db, in.AccountID)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Holdings = a.valuator.ValuateAll(ctx, rows, preferred)

	return snapshot, nil
}

// budgetRows builds the per-category budget view and the sums derived
// from it.
func (a *Aggregator) budgetRows(
	budgets []models.Budget,
	actualByCategory map[uuid.UUID]decimal.Decimal,
	preferred types.Currency,
	table fx.RateTable,
) (rows []BudgetRow, breakdowns []CategoryBreakdown, plannedIncome, plannedExpense, remainingToSpend decimal.Decimal) {
	rows = make([]BudgetRow, 0, len(budgets))
	breakdowns = make([]CategoryBreakdown, 0, len(budgets))

	for _, budget := range budgets {
		planned := fx.Convert(budget.Planned, budget.Currency, preferred, table)
		actual := actualByCategory[budget.CategoryID].Round(2)
		remaining := planned.Sub(actual).Round(2)

		rows = append(rows, BudgetRow{
			BudgetID:     budget.ID,
			CategoryID:   budget.CategoryID,
			CategoryName: budget.Category.Name,
			CategoryType: budget.Category.Type,
			Planned:      planned,
			Actual:       actual,
			Remaining:    remaining,
			Progress:     Progress(planned, actual),
		})

		switch budget.Category.Type {
		case models.CategoryTypeIncome:
			plannedIncome = plannedIncome.Add(planned)
		case models.CategoryTypeExpense:
			plannedExpense = plannedExpense.Add(planned)

			breakdowns = append(breakdowns, CategoryBreakdown{
				CategoryID:   budget.CategoryID,
				CategoryName: budget.Category.Name,
				Planned:      planned,
				Actual:       actual,
				Remaining:    remaining,
			})

			if remaining.IsPositive() {
				remainingToSpend = remainingToSpend.Add(remaining)
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CategoryName < rows[j].CategoryName
	})
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].CategoryName < breakdowns[j].CategoryName
	})

	return rows, breakdowns, plannedIncome.Round(2), plannedExpense.Round(2), remainingToSpend.Round(2)
}

// incomeSignal selects the planned income used for projections: a goal
// for the month beats recurring income beats planned income budgets.
func (a *Aggregator) incomeSignal(in Input, preferred types.Currency, table fx.RateTable, plannedIncome decimal.Decimal) (decimal.Decimal, IncomeSource, error) {
	var goal models.Goal
	q := a.db.Where("month = ?", in.Month)
	if in.AccountID != nil {
		q = q.Where("account_id = ?", *in.AccountID)
	}

	err := q.First(&goal).Error
	if err == nil {
		return fx.Convert(goal.Amount, goal.Currency, preferred, table), IncomeSourceGoal, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, models.ErrResourceNotFound) {
		return decimal.Zero, IncomeSourceNone, fmt.Errorf("loading goal failed: %w", err)
	}

	var recurring []models.RecurringIncome
	q = a.db.Where("active = ?", true)
	if in.AccountID != nil {
		q = q.Where("account_id = ?", *in.AccountID)
	}

	err = q.Find(&recurring).Error
	if err != nil {
		return decimal.Zero, IncomeSourceNone, fmt.Errorf("loading recurring income failed: %w", err)
	}

	if len(recurring) > 0 {
		sum := decimal.Zero
		for _, r := range recurring {
			sum = sum.Add(fx.Convert(r.Amount, r.Currency, preferred, table))
		}
		return sum.Round(2), IncomeSourceRecurring, nil
	}

	return plannedIncome, IncomeSourceNone, nil
}

// projectedNet estimates where the month will land: expected income
// minus, per category, the larger of planned and already-spent amounts.
// Spending in categories without a budget counts in full, so unplanned
// overspend is never hidden.
func (a *Aggregator) projectedNet(
	incomeSignal, actualIncome decimal.Decimal,
	budgets []models.Budget,
	actualByCategory map[uuid.UUID]decimal.Decimal,
	preferred types.Currency,
	table fx.RateTable,
) decimal.Decimal {
	projectedIncome := decimal.Max(incomeSignal, actualIncome)

	budgeted := make(map[uuid.UUID]bool, len(budgets))
	projectedExpense := decimal.Zero
	for _, budget := range budgets {
		if budget.Category.Type != models.CategoryTypeExpense {
			continue
		}

		budgeted[budget.CategoryID] = true
		planned := fx.Convert(budget.Planned, budget.Currency, preferred, table)
		projectedExpense = projectedExpense.Add(decimal.Max(planned, actualByCategory[budget.CategoryID]))
	}

	// Spending in unbudgeted expense categories counts in full
	for categoryID, actual := range actualByCategory {
		if budgeted[categoryID] {
			continue
		}

		var category models.Category
		if err := a.db.First(&category, "id = ?", categoryID).Error; err == nil && category.Type == models.CategoryTypeExpense {
			projectedExpense = projectedExpense.Add(actual)
		}
	}

	return projectedIncome.Sub(projectedExpense).Round(2)
}

// Progress is how far along a budget is.
//
// A zero or negative plan counts as fully used once anything is spent
// at all.
func Progress(planned, actual decimal.Decimal) decimal.Decimal {
	if planned.IsPositive() {
		progress := actual.Div(planned)
		if progress.IsNegative() {
			return decimal.Zero
		}
		if progress.GreaterThan(decimal.NewFromInt(1)) {
			return decimal.NewFromInt(1)
		}
		return progress.Round(4)
	}

	if actual.IsPositive() {
		return decimal.NewFromInt(1)
	}

	return decimal.Zero
}

func variant(amount decimal.Decimal) StatVariant {
	if amount.IsNegative() {
		return StatNegative
	}

	return StatPositive
}
