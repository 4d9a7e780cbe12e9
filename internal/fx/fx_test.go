package fx_test

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/fintrack-app/backend/internal/fx"
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

// staticProvider returns fixed rates and counts how often it is asked.
type staticProvider struct {
	rates map[types.Currency]map[types.Currency]decimal.Decimal
	err   error
	calls int
}

func (p *staticProvider) FetchRates(_ context.Context, base types.Currency, _ time.Time) (map[types.Currency]decimal.Decimal, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.rates[base], nil
}

func (p *staticProvider) Name() string {
	return "static"
}

func usdEurProvider(rate float64) *staticProvider {
	return &staticProvider{
		rates: map[types.Currency]map[types.Currency]decimal.Decimal{
			types.CurrencyUSD: {types.CurrencyEUR: decimal.NewFromFloat(rate)},
		},
	}
}

func TestConvert(t *testing.T) {
	table := fx.RateTable{
		fx.PairKey(types.CurrencyUSD, types.CurrencyEUR): decimal.NewFromFloat(0.9),
	}

	converted := fx.Convert(decimal.NewFromFloat(10), types.CurrencyUSD, types.CurrencyEUR, table)
	assert.True(t, converted.Equal(decimal.NewFromFloat(9)), "converted amount is %s", converted)

	// Same currency and missing pairs return the amount unchanged.
	same := fx.Convert(decimal.NewFromFloat(10), types.CurrencyUSD, types.CurrencyUSD, table)
	assert.True(t, same.Equal(decimal.NewFromFloat(10)))

	missing := fx.Convert(decimal.NewFromFloat(10), types.CurrencyEUR, types.CurrencyILS, table)
	assert.True(t, missing.Equal(decimal.NewFromFloat(10)))
}

func TestConvertRounds(t *testing.T) {
	table := fx.RateTable{
		fx.PairKey(types.CurrencyUSD, types.CurrencyEUR): decimal.NewFromFloat(0.8567),
	}

	converted := fx.Convert(decimal.NewFromFloat(10), types.CurrencyUSD, types.CurrencyEUR, table)
	assert.True(t, converted.Equal(decimal.NewFromFloat(8.57)), "converted amount is %s", converted)
}

func (suite *TestSuiteStandard) TestConvertWithFallbackSameCurrency() {
	service := fx.New(models.DB, &staticProvider{err: errors.New("down")})

	result := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(42), types.CurrencyUSD, types.CurrencyUSD)

	suite.Assert().Equal(fx.StatusFresh, result.Status)
	suite.Assert().True(result.Amount.Equal(decimal.NewFromFloat(42)))
	suite.Assert().True(result.Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *TestSuiteStandard) TestConvertWithFallbackFresh() {
	provider := usdEurProvider(0.9)
	service := fx.New(models.DB, provider)

	result := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(100), types.CurrencyUSD, types.CurrencyEUR)

	suite.Assert().Equal(fx.StatusFresh, result.Status)
	suite.Assert().True(result.Amount.Equal(decimal.NewFromFloat(90)), "amount is %s", result.Amount)

	// The second conversion is served from memory.
	_ = service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(50), types.CurrencyUSD, types.CurrencyEUR)
	suite.Assert().Equal(1, provider.calls)
}

func (suite *TestSuiteStandard) TestConvertWithFallbackStaleMemory() {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	provider := usdEurProvider(0.9)
	service := fx.New(models.DB, provider, fx.WithClock(func() time.Time { return now }))

	first := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(100), types.CurrencyUSD, types.CurrencyEUR)
	suite.Require().Equal(fx.StatusFresh, first.Status)

	// Rate expires, provider goes down: the expired rate is used.
	now = now.Add(25 * time.Hour)
	provider.err = errors.New("connection refused")

	second := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(100), types.CurrencyUSD, types.CurrencyEUR)
	suite.Assert().Equal(fx.StatusStale, second.Status)
	suite.Assert().True(second.Amount.Equal(decimal.NewFromFloat(90)), "amount is %s", second.Amount)
}

func (suite *TestSuiteStandard) TestConvertWithFallbackPersisted() {
	err := models.UpsertFXRate(models.DB, &models.FXRate{
		Base:   types.CurrencyUSD,
		Quote:  types.CurrencyEUR,
		Rate:   decimal.NewFromFloat(0.85),
		Date:   time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC),
		Source: "test",
	})
	suite.Require().Nil(err)

	service := fx.New(models.DB, &staticProvider{err: errors.New("down")})

	result := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(100), types.CurrencyUSD, types.CurrencyEUR)
	suite.Assert().Equal(fx.StatusStale, result.Status)
	suite.Assert().True(result.Amount.Equal(decimal.NewFromFloat(85)), "amount is %s", result.Amount)
}

func (suite *TestSuiteStandard) TestConvertWithFallbackUnconverted() {
	service := fx.New(models.DB, &staticProvider{err: errors.New("down")})

	result := service.ConvertWithFallback(context.Background(), decimal.NewFromFloat(100), types.CurrencyUSD, types.CurrencyEUR)
	suite.Assert().Equal(fx.StatusUnconverted, result.Status)
	suite.Assert().True(result.Amount.Equal(decimal.NewFromFloat(100)))
	suite.Assert().True(result.Rate.IsZero())
}

func (suite *TestSuiteStandard) TestBatchLoadRates() {
	provider := &staticProvider{
		rates: map[types.Currency]map[types.Currency]decimal.Decimal{
			types.CurrencyUSD: {
				types.CurrencyEUR: decimal.NewFromFloat(0.9),
				types.CurrencyILS: decimal.NewFromFloat(3.7),
			},
			types.CurrencyEUR: {
				types.CurrencyUSD: decimal.NewFromFloat(1.11),
				types.CurrencyILS: decimal.NewFromFloat(4.1),
			},
			types.CurrencyILS: {
				types.CurrencyUSD: decimal.NewFromFloat(0.27),
				types.CurrencyEUR: decimal.NewFromFloat(0.24),
			},
		},
	}
	service := fx.New(models.DB, provider)

	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	table, err := service.BatchLoadRates(context.Background(), date)
	suite.Require().Nil(err)
	suite.Assert().Len(table, 6)

	rate, ok := table[fx.PairKey(types.CurrencyUSD, types.CurrencyILS)]
	suite.Require().True(ok)
	suite.Assert().True(rate.Equal(decimal.NewFromFloat(3.7)))

	// The table for a date is loaded once.
	calls := provider.calls
	_, err = service.BatchLoadRates(context.Background(), date)
	suite.Require().Nil(err)
	suite.Assert().Equal(calls, provider.calls)
}

func (suite *TestSuiteStandard) TestBatchLoadRatesPersistedFallback() {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	err := models.UpsertFXRate(models.DB, &models.FXRate{
		Base:   types.CurrencyUSD,
		Quote:  types.CurrencyEUR,
		Rate:   decimal.NewFromFloat(0.88),
		Date:   date.AddDate(0, 0, -2),
		Source: "test",
	})
	suite.Require().Nil(err)

	service := fx.New(models.DB, &staticProvider{err: errors.New("down")})

	table, err := service.BatchLoadRates(context.Background(), date)
	suite.Require().Nil(err)

	rate, ok := table[fx.PairKey(types.CurrencyUSD, types.CurrencyEUR)]
	suite.Require().True(ok)
	suite.Assert().True(rate.Equal(decimal.NewFromFloat(0.88)))

	// Pairs without a persisted fallback are absent.
	_, ok = table[fx.PairKey(types.CurrencyEUR, types.CurrencyILS)]
	suite.Assert().False(ok)
}
