package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fintrack-app/backend/internal/aggregate"
	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/fintrack-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDashboardGet() {
	t := suite.T()

	_ = suite.createTestTransaction(t, v1.TransactionEditable{
		Date:   time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromFloat(50),
	})

	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/dashboard?month=2026-08&currency=USD", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, types.NewMonth(2026, 8), response.Data.Month)
	assert.Equal(t, types.CurrencyUSD, response.Data.PreferredCurrency)
	assert.Len(t, response.Data.Stats, 4)
	assert.Len(t, response.Data.History, aggregate.HistoryMonths)
}

func (suite *TestSuiteStandard) TestDashboardGetInvalid() {
	t := suite.T()

	tests := []struct {
		name string
		url  string
	}{
		{"Invalid month", "http://example.com/v1/dashboard?month=August"},
		{"Invalid account", "http://example.com/v1/dashboard?account=NotAUUID"},
		{"Unsupported currency", "http://example.com/v1/dashboard?currency=GBP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodGet, tt.url, nil)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestDashboardCacheStats() {
	t := suite.T()

	url := "http://example.com/v1/dashboard?month=2026-08"

	// First request misses, the second hits.
	r := test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/dashboard/cache/stats", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var stats v1.DashboardCacheStatsResponse
	test.DecodeResponse(t, &r, &stats)
	assert.Equal(t, int64(1), stats.Data.Hits)
	assert.Equal(t, int64(1), stats.Data.Misses)
	assert.Equal(t, 0.5, stats.Data.HitRate)

	// Resetting zeroes the counters.
	r = test.Request(t, suite.controller, http.MethodDelete, "http://example.com/v1/dashboard/cache/stats", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/dashboard/cache/stats", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	test.DecodeResponse(t, &r, &stats)
	assert.Equal(t, int64(0), stats.Data.Hits)
	assert.Equal(t, int64(0), stats.Data.Misses)
}

func (suite *TestSuiteStandard) TestDashboardCacheInvalidate() {
	t := suite.T()

	url := "http://example.com/v1/dashboard?month=2026-08"

	r := test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, suite.controller, http.MethodDelete, "http://example.com/v1/dashboard/cache?month=2026-08", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	// The entry is gone, so the next request misses again.
	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/dashboard/cache/stats", nil)
	var stats v1.DashboardCacheStatsResponse
	test.DecodeResponse(t, &r, &stats)
	assert.Equal(t, int64(2), stats.Data.Misses)
	assert.Equal(t, int64(0), stats.Data.Hits)
}

func (suite *TestSuiteStandard) TestDashboardCacheInvalidateInvalid() {
	t := suite.T()

	r := test.Request(t, suite.controller, http.MethodDelete, "http://example.com/v1/dashboard/cache?month=NotAMonth", nil)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	r = test.Request(t, suite.controller, http.MethodDelete, "http://example.com/v1/dashboard/cache?account=NotAUUID", nil)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDashboardInvalidatedByMutation() {
	t := suite.T()

	url := "http://example.com/v1/dashboard?month=2026-08"

	r := test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var before v1.DashboardResponse
	test.DecodeResponse(t, &r, &before)
	actualBefore := statAmount(t, before.Data, aggregate.LabelActualNet)
	assert.True(t, actualBefore.IsZero())

	// A new transaction in the month drops the cached snapshot.
	_ = suite.createTestTransaction(t, v1.TransactionEditable{
		Date:   time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromFloat(25),
	})

	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var after v1.DashboardResponse
	test.DecodeResponse(t, &r, &after)
	actualAfter := statAmount(t, after.Data, aggregate.LabelActualNet)
	assert.True(t, actualAfter.Equal(decimal.NewFromFloat(-25)), "actual net is %s", actualAfter)
}

func statAmount(t *testing.T, snapshot aggregate.Snapshot, label string) decimal.Decimal {
	for _, stat := range snapshot.Stats {
		if stat.Label == label {
			return stat.Amount
		}
	}

	require.FailNowf(t, "stat not found", "no stat with label %q", label)
	return decimal.Zero
}

func (suite *TestSuiteStandard) TestDashboardOptions() {
	t := suite.T()

	tests := []struct {
		url   string
		allow string
	}{
		{"http://example.com/v1/dashboard", "OPTIONS, GET"},
		{"http://example.com/v1/dashboard/cache", "OPTIONS, DELETE"},
		{"http://example.com/v1/dashboard/cache/stats", "OPTIONS, GET, DELETE"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodOptions, tt.url, nil)
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
