package aggregate_test

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/fintrack-app/backend/internal/aggregate"
	"github.com/fintrack-app/backend/internal/fx"
	"github.com/fintrack-app/backend/internal/holdings"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/fintrack-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TestSuiteStandard struct {
	suite.Suite
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(TestSuiteStandard))
}

func (suite *TestSuiteStandard) SetupTest() {
	err := models.Connect(test.TmpFile(suite.T()))
	if err != nil {
		log.Fatalf("Database connection failed with: %#v", err)
	}
}

func (suite *TestSuiteStandard) TearDownTest() {
	sqlDB, _ := models.DB.DB()
	sqlDB.Close()
}

// newAggregator builds an aggregator with fixed rates so conversions
// are deterministic: 1 EUR = 1.10 USD.
func newAggregator() *aggregate.Aggregator {
	fxService := fx.New(models.DB, fx.ProviderFunc{
		Fetch: func(_ context.Context, base types.Currency, _ time.Time) (map[types.Currency]decimal.Decimal, error) {
			if base == types.CurrencyEUR {
				return map[types.Currency]decimal.Decimal{
					types.CurrencyUSD: decimal.NewFromFloat(1.1),
				}, nil
			}
			return map[types.Currency]decimal.Decimal{}, nil
		},
	})

	return aggregate.New(models.DB, fxService, holdings.New(fxService, nil))
}

func (suite *TestSuiteStandard) mustCreate(resource any) {
	err := models.DB.Create(resource).Error
	if err != nil {
		suite.Require().FailNow("resource could not be saved", "Error: %s, resource: %#v", err, resource)
	}
}

func (suite *TestSuiteStandard) statByLabel(snapshot aggregate.Snapshot, label string) aggregate.Stat {
	for _, stat := range snapshot.Stats {
		if stat.Label == label {
			return stat
		}
	}

	suite.Require().FailNowf("stat not found", "no stat with label %q", label)
	return aggregate.Stat{}
}

func (suite *TestSuiteStandard) TestComputeEmpty() {
	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     types.NewMonth(2026, 8),
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	suite.Assert().Len(snapshot.Stats, 4)
	suite.Assert().Len(snapshot.History, aggregate.HistoryMonths)
	suite.Assert().Empty(snapshot.Budgets)
	suite.Assert().Empty(snapshot.Holdings)

	// Every history month is seeded even without data, oldest first.
	suite.Assert().Equal(types.NewMonth(2026, 3), snapshot.History[0].Month)
	suite.Assert().Equal(types.NewMonth(2026, 8), snapshot.History[5].Month)
	for _, entry := range snapshot.History {
		suite.Assert().True(entry.Net.IsZero())
	}

	// No previous data means a zero comparison baseline.
	suite.Assert().Equal(types.NewMonth(2026, 7), snapshot.Comparison.PreviousMonth)
	suite.Assert().True(snapshot.Comparison.PreviousNet.IsZero())
	suite.Assert().True(snapshot.Comparison.Change.IsZero())
}

func (suite *TestSuiteStandard) TestComputeMonth() {
	account := models.Account{Name: "Checking"}
	suite.mustCreate(&account)

	groceries := models.Category{Name: "Groceries", Type: models.CategoryTypeExpense}
	suite.mustCreate(&groceries)
	salary := models.Category{Name: "Salary", Type: models.CategoryTypeIncome}
	suite.mustCreate(&salary)

	month := types.NewMonth(2026, 8)

	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay().AddDate(0, 0, 2),
		Type:       models.TransactionTypeIncome,
		Amount:     decimal.NewFromFloat(3000),
		Currency:   types.CurrencyUSD,
		AccountID:  account.ID,
		CategoryID: salary.ID,
	})
	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay().AddDate(0, 0, 5),
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(120.50),
		Currency:   types.CurrencyUSD,
		AccountID:  account.ID,
		CategoryID: groceries.ID,
	})

	// Previous month for the comparison: net 1000
	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay().AddDate(0, -1, 3),
		Type:       models.TransactionTypeIncome,
		Amount:     decimal.NewFromFloat(1000),
		Currency:   types.CurrencyUSD,
		AccountID:  account.ID,
		CategoryID: salary.ID,
	})

	budget := models.Budget{
		AccountID:  account.ID,
		CategoryID: groceries.ID,
		Month:      month,
		Planned:    decimal.NewFromFloat(400),
		Currency:   types.CurrencyUSD,
	}
	suite.mustCreate(&budget)

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     month,
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	actualNet := suite.statByLabel(snapshot, aggregate.LabelActualNet)
	suite.Assert().True(actualNet.Amount.Equal(decimal.NewFromFloat(2879.50)), "actual net is %s", actualNet.Amount)
	suite.Assert().Equal(aggregate.StatPositive, actualNet.Variant)

	remaining := suite.statByLabel(snapshot, aggregate.LabelRemainingToSpend)
	suite.Assert().True(remaining.Amount.Equal(decimal.NewFromFloat(279.50)), "remaining is %s", remaining.Amount)
	suite.Require().Len(remaining.Breakdown.Categories, 1)
	suite.Assert().Equal("Groceries", remaining.Breakdown.Categories[0].CategoryName)

	// No goal and no recurring income: provenance is none, planned
	// income falls back to the income budgets (there are none).
	projected := suite.statByLabel(snapshot, aggregate.LabelProjectedNet)
	suite.Assert().Equal(aggregate.IncomeSourceNone, projected.Breakdown.IncomeSource)
	// max(income signal, actual income) - max(planned, spent) = 3000 - 400
	suite.Assert().True(projected.Amount.Equal(decimal.NewFromFloat(2600)), "projected net is %s", projected.Amount)

	suite.Require().Len(snapshot.Budgets, 1)
	row := snapshot.Budgets[0]
	suite.Assert().True(row.Remaining.Equal(decimal.NewFromFloat(279.50)))
	suite.Assert().True(row.Progress.Equal(decimal.NewFromFloat(0.3013)), "progress is %s", row.Progress)

	suite.Assert().True(snapshot.Comparison.PreviousNet.Equal(decimal.NewFromFloat(1000)))
	suite.Assert().True(snapshot.Comparison.Change.Equal(decimal.NewFromFloat(1879.50)))

	// History: previous month net 1000, current month net 2879.50
	suite.Require().Len(snapshot.History, aggregate.HistoryMonths)
	suite.Assert().True(snapshot.History[4].Net.Equal(decimal.NewFromFloat(1000)))
	suite.Assert().True(snapshot.History[5].Net.Equal(decimal.NewFromFloat(2879.50)))
}

func (suite *TestSuiteStandard) TestComputeOverspentBudget() {
	account := models.Account{Name: "Checking"}
	suite.mustCreate(&account)
	dining := models.Category{Name: "Dining", Type: models.CategoryTypeExpense}
	suite.mustCreate(&dining)

	month := types.NewMonth(2026, 8)

	suite.mustCreate(&models.Budget{
		AccountID:  account.ID,
		CategoryID: dining.ID,
		Month:      month,
		Planned:    decimal.NewFromFloat(100),
		Currency:   types.CurrencyUSD,
	})
	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay(),
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(150),
		Currency:   types.CurrencyUSD,
		AccountID:  account.ID,
		CategoryID: dining.ID,
	})

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     month,
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	suite.Require().Len(snapshot.Budgets, 1)
	row := snapshot.Budgets[0]

	// Overspend is data, not an error: remaining goes negative and the
	// progress is capped at 1.
	suite.Assert().True(row.Remaining.Equal(decimal.NewFromFloat(-50)), "remaining is %s", row.Remaining)
	suite.Assert().True(row.Progress.Equal(decimal.NewFromInt(1)))

	// Overspent categories do not contribute to remaining to spend.
	remaining := suite.statByLabel(snapshot, aggregate.LabelRemainingToSpend)
	suite.Assert().True(remaining.Amount.IsZero())
}

func (suite *TestSuiteStandard) TestIncomeSignalGoalBeatsRecurring() {
	account := models.Account{Name: "Checking"}
	suite.mustCreate(&account)

	month := types.NewMonth(2026, 8)

	suite.mustCreate(&models.RecurringIncome{
		Name:      "Salary",
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(4000),
		Currency:  types.CurrencyUSD,
		Active:    true,
	})
	suite.mustCreate(&models.Goal{
		Name:      "Freelance month",
		AccountID: account.ID,
		Month:     month,
		Amount:    decimal.NewFromFloat(6000),
		Currency:  types.CurrencyUSD,
	})

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     month,
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	projected := suite.statByLabel(snapshot, aggregate.LabelProjectedNet)
	suite.Assert().Equal(aggregate.IncomeSourceGoal, projected.Breakdown.IncomeSource)
	suite.Assert().True(projected.Breakdown.PlannedIncome.Equal(decimal.NewFromFloat(6000)))
}

func (suite *TestSuiteStandard) TestIncomeSignalRecurring() {
	account := models.Account{Name: "Checking"}
	suite.mustCreate(&account)

	suite.mustCreate(&models.RecurringIncome{
		Name:      "Salary",
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(4000),
		Currency:  types.CurrencyUSD,
		Active:    true,
	})
	suite.mustCreate(&models.RecurringIncome{
		Name:      "Old job",
		AccountID: account.ID,
		Amount:    decimal.NewFromFloat(9999),
		Currency:  types.CurrencyUSD,
		Active:    false,
	})

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     types.NewMonth(2026, 8),
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	// Only active recurring incomes count.
	projected := suite.statByLabel(snapshot, aggregate.LabelProjectedNet)
	suite.Assert().Equal(aggregate.IncomeSourceRecurring, projected.Breakdown.IncomeSource)
	suite.Assert().True(projected.Breakdown.PlannedIncome.Equal(decimal.NewFromFloat(4000)))
}

func (suite *TestSuiteStandard) TestComputeConvertsCurrencies() {
	account := models.Account{Name: "Checking"}
	suite.mustCreate(&account)
	category := models.Category{Name: "Travel", Type: models.CategoryTypeExpense}
	suite.mustCreate(&category)

	month := types.NewMonth(2026, 8)

	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay(),
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(100),
		Currency:   types.CurrencyEUR,
		AccountID:  account.ID,
		CategoryID: category.ID,
	})

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     month,
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	actualNet := suite.statByLabel(snapshot, aggregate.LabelActualNet)
	suite.Assert().True(actualNet.Amount.Equal(decimal.NewFromFloat(-110)), "actual net is %s", actualNet.Amount)
	suite.Assert().Equal(aggregate.StatNegative, actualNet.Variant)
}

func (suite *TestSuiteStandard) TestComputeAccountScope() {
	checking := models.Account{Name: "Checking"}
	suite.mustCreate(&checking)
	savings := models.Account{Name: "Savings"}
	suite.mustCreate(&savings)
	category := models.Category{Name: "Misc", Type: models.CategoryTypeExpense}
	suite.mustCreate(&category)

	month := types.NewMonth(2026, 8)

	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay(),
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(10),
		Currency:   types.CurrencyUSD,
		AccountID:  checking.ID,
		CategoryID: category.ID,
	})
	suite.mustCreate(&models.Transaction{
		Date:       month.FirstDay(),
		Type:       models.TransactionTypeExpense,
		Amount:     decimal.NewFromFloat(20),
		Currency:   types.CurrencyUSD,
		AccountID:  savings.ID,
		CategoryID: category.ID,
	})

	snapshot, err := newAggregator().Compute(context.Background(), aggregate.Input{
		Month:     month,
		AccountID: &checking.ID,
		Preferred: types.CurrencyUSD,
	})
	suite.Require().Nil(err)

	actualNet := suite.statByLabel(snapshot, aggregate.LabelActualNet)
	suite.Assert().True(actualNet.Amount.Equal(decimal.NewFromFloat(-10)), "actual net is %s", actualNet.Amount)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		planned  float64
		actual   float64
		expected float64
	}{
		{"partial", 400, 100, 0.25},
		{"complete", 400, 400, 1},
		{"overspent capped", 400, 600, 1},
		{"nothing spent", 400, 0, 0},
		{"zero plan nothing spent", 0, 0, 0},
		{"zero plan spent", 0, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := aggregate.Progress(decimal.NewFromFloat(tt.planned), decimal.NewFromFloat(tt.actual))
			assert.True(t, progress.Equal(decimal.NewFromFloat(tt.expected)), "progress is %s", progress)
		})
	}
}
