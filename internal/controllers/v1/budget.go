package v1

import (
	"net/http"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	AccountID  uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // ID of the account
	CategoryID uuid.UUID       `json:"categoryId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the category
	Month      types.Month     `json:"month" example:"2026-07"`                                   // The month the planned amount applies to
	Planned    decimal.Decimal `json:"planned" example:"350" minimum:"0"`                         // Planned amount, zero or more
	Currency   types.Currency  `json:"currency" example:"EUR"`                                    // Currency of the planned amount
}

// model returns the database resource for the editable fields
func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		AccountID:  editable.AccountID,
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Planned:    editable.Planned,
		Currency:   editable.Currency,
	}
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
}

func newBudget(model models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			AccountID:  model.AccountID,
			CategoryID: model.CategoryID,
			Month:      model.Month,
			Planned:    model.Planned,
			Currency:   model.Currency,
		},
	}
}

type BudgetResponse struct {
	Data Budget `json:"data"`
}

type BudgetListResponse struct {
	Data []Budget `json:"data"`
}

// BudgetQuery filters the budget list.
type BudgetQuery struct {
	Month   string `form:"month" example:"2026-07"` // Only budgets for this month
	Account string `form:"account" format:"UUID"`   // Only budgets for this account
}

func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Budget{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Set budget
// @Description	Creates the budget or, if one already exists for the same account, category and month, updates its planned amount
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	budget := editable.model()
	if err := models.UpsertBudget(models.DB, &budget); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &budget.Month, &budget.AccountID)
	c.JSON(http.StatusCreated, BudgetResponse{Data: newBudget(budget)})
}

// @Summary		List budgets
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetListResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	false	"Only budgets for this month, YYYY-MM format"
// @Param			account	query		string	false	"Only budgets for this account"
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var query BudgetQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	db := models.DB

	if query.Month != "" {
		month, err := types.ParseMonth(query.Month)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errMonthInvalid.Error()})
			return
		}
		db = db.Where("month = ?", month)
	}

	if query.Account != "" {
		id, err := uuid.Parse(query.Account)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: errAccountInvalid.Error()})
			return
		}
		db = db.Where("account_id = ?", id)
	}

	var budgets []models.Budget
	if err := db.Find(&budgets).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// @Summary		Get budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(budget)})
}

// @Summary		Delete budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&budget).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &budget.Month, &budget.AccountID)
	c.Status(http.StatusNoContent)
}
