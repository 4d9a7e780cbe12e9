package v1

import (
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/aggregate"
	"github.com/fintrack-app/backend/internal/dashboard"
	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsDashboard)
		r.GET("", co.GetDashboard)
	}
	{
		r.OPTIONS("/cache", OptionsDashboardCache)
		r.DELETE("/cache", co.DeleteDashboardCache)
	}
	{
		r.OPTIONS("/cache/stats", OptionsDashboardCacheStats)
		r.GET("/cache/stats", co.GetDashboardCacheStats)
		r.DELETE("/cache/stats", co.DeleteDashboardCacheStats)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard/cache [options]
func OptionsDashboardCache(c *gin.Context) {
	httputil.OptionsDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard/cache/stats [options]
func OptionsDashboardCacheStats(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

type DashboardResponse struct {
	Data aggregate.Snapshot `json:"data"` // The dashboard snapshot
}

// @Summary		Get dashboard
// @Description	Returns the aggregated dashboard for a month, an optional account and a display currency
// @Tags			Dashboard
// @Produce		json
// @Success		200			{object}	DashboardResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			month		query		string	false	"Month in YYYY-MM format, defaults to the current month"
// @Param			account		query		string	false	"Account ID to restrict the dashboard to"
// @Param			currency	query		string	false	"Display currency, defaults to USD"
// @Router			/v1/dashboard [get]
func (co Controller) GetDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	in, ok := dashboardInput(c, query)
	if !ok {
		return
	}

	snapshot, err := co.Cache.Get(c.Request.Context(), in)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: snapshot})
}

// @Summary		Invalidate dashboard cache
// @Description	Drops cached dashboard snapshots. Without parameters everything is dropped.
// @Tags			Dashboard
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	false	"Only drop entries for this month, in YYYY-MM format"
// @Param			account	query		string	false	"Only drop entries for this account"
// @Router			/v1/dashboard/cache [delete]
func (co Controller) DeleteDashboardCache(c *gin.Context) {
	var query InvalidateQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var in dashboard.InvalidateInput

	if query.Month != "" {
		month, err := types.ParseMonth(query.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errMonthInvalid.Error()})
			return
		}
		in.Month = &month
	}

	if query.Account != "" {
		id, err := uuid.Parse(query.Account)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errAccountInvalid.Error()})
			return
		}
		in.AccountID = &id
	}

	if err := co.Cache.Invalidate(c.Request.Context(), in); err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

type DashboardCacheStatsResponse struct {
	Data dashboard.MetricsSnapshot `json:"data"` // Hit, miss and error counters
}

// @Summary		Get cache statistics
// @Description	Returns hit, miss and error counters for the dashboard cache
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardCacheStatsResponse
// @Router			/v1/dashboard/cache/stats [get]
func (co Controller) GetDashboardCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, DashboardCacheStatsResponse{Data: co.Cache.Stats()})
}

// @Summary		Reset cache statistics
// @Description	Zeroes the hit, miss and error counters
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard/cache/stats [delete]
func (co Controller) DeleteDashboardCacheStats(c *gin.Context) {
	co.Cache.Reset()
	c.Status(http.StatusNoContent)
}

// dashboardInput parses the dashboard query into an aggregation input.
func dashboardInput(c *gin.Context, query DashboardQuery) (aggregate.Input, bool) {
	in := aggregate.Input{
		Month: types.MonthOf(time.Now().In(time.UTC)),
	}

	if query.Month != "" {
		month, err := types.ParseMonth(query.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errMonthInvalid.Error()})
			return aggregate.Input{}, false
		}
		in.Month = month
	}

	if query.Account != "" {
		id, err := uuid.Parse(query.Account)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errAccountInvalid.Error()})
			return aggregate.Input{}, false
		}
		in.AccountID = &id
	}

	currency, err := types.ParseCurrency(query.Currency)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return aggregate.Input{}, false
	}
	in.Preferred = currency

	return in, true
}
