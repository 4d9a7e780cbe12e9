package v1

import (
	"github.com/fintrack-app/backend/internal/dashboard"
	"github.com/fintrack-app/backend/internal/split"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Controller carries the services the handlers need. The database is
// accessed through the models package.
type Controller struct {
	Cache       *dashboard.Cache
	Settlements *split.Engine
}

// RegisterRoutes attaches all v1 routes to the group passed in.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterDashboardRoutes(r.Group("/dashboard"))
	co.RegisterAccountRoutes(r.Group("/accounts"))
	co.RegisterCategoryRoutes(r.Group("/categories"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterGoalRoutes(r.Group("/goals"))
	co.RegisterRecurringIncomeRoutes(r.Group("/recurring-incomes"))
	co.RegisterHoldingRoutes(r.Group("/holdings"))
	co.RegisterUserRoutes(r.Group("/users"))
	co.RegisterSharedExpenseRoutes(r.Group("/shared-expenses"))
	co.RegisterSettlementRoutes(r.Group("/settlements"))
}

// invalidate drops the dashboard cache entries a mutation touched.
// Failures are logged, the mutation itself already succeeded.
func (co Controller) invalidate(c *gin.Context, month *types.Month, accountID *uuid.UUID) {
	if co.Cache == nil {
		return
	}

	err := co.Cache.Invalidate(c.Request.Context(), dashboard.InvalidateInput{
		Month:     month,
		AccountID: accountID,
	})
	if err != nil {
		log.Error().Err(err).Str("request-id", requestid.Get(c)).Msg("dashboard cache invalidation failed")
	}
}
