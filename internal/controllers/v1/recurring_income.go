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

type RecurringIncomeEditable struct {
	Name      string          `json:"name" example:"Salary" default:""`
	AccountID uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the account the income arrives on
	Amount    decimal.Decimal `json:"amount" example:"4200" minimum:"0.00000001"`               // Monthly amount, always positive
	Currency  types.Currency  `json:"currency" example:"EUR"`                                   // Currency of the amount
	Active    bool            `json:"active" example:"true" default:"true"`                     // Inactive incomes are ignored in projections
}

// model returns the database resource for the editable fields
func (editable RecurringIncomeEditable) model() models.RecurringIncome {
	return models.RecurringIncome{
		Name:      editable.Name,
		AccountID: editable.AccountID,
		Amount:    editable.Amount,
		Currency:  editable.Currency,
		Active:    editable.Active,
	}
}

type RecurringIncome struct {
	models.DefaultModel
	RecurringIncomeEditable
}

func newRecurringIncome(model models.RecurringIncome) RecurringIncome {
	return RecurringIncome{
		DefaultModel: model.DefaultModel,
		RecurringIncomeEditable: RecurringIncomeEditable{
			Name:      model.Name,
			AccountID: model.AccountID,
			Amount:    model.Amount,
			Currency:  model.Currency,
			Active:    model.Active,
		},
	}
}

type RecurringIncomeResponse struct {
	Data RecurringIncome `json:"data"`
}

type RecurringIncomeListResponse struct {
	Data []RecurringIncome `json:"data"`
}

func (co Controller) RegisterRecurringIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRecurringIncomeList)
		r.GET("", co.GetRecurringIncomes)
		r.POST("", co.CreateRecurringIncome)
	}
	{
		r.OPTIONS("/:id", OptionsRecurringIncomeDetail)
		r.GET("/:id", co.GetRecurringIncome)
		r.PATCH("/:id", co.UpdateRecurringIncome)
		r.DELETE("/:id", co.DeleteRecurringIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringIncomes
// @Success		204
// @Router			/v1/recurring-incomes [options]
func OptionsRecurringIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring-incomes/{id} [options]
func OptionsRecurringIncomeDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.RecurringIncome{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create recurring income
// @Tags			RecurringIncomes
// @Produce		json
// @Success		201		{object}	RecurringIncomeResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			income	body		RecurringIncomeEditable	true	"RecurringIncome"
// @Router			/v1/recurring-incomes [post]
func (co Controller) CreateRecurringIncome(c *gin.Context) {
	editable := RecurringIncomeEditable{Active: true}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	income := editable.model()
	if err := models.DB.Create(&income).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &income.AccountID)
	c.JSON(http.StatusCreated, RecurringIncomeResponse{Data: newRecurringIncome(income)})
}

// @Summary		List recurring incomes
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/recurring-incomes [get]
func (co Controller) GetRecurringIncomes(c *gin.Context) {
	var incomes []models.RecurringIncome
	if err := models.DB.Order("name ASC").Find(&incomes).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]RecurringIncome, 0, len(incomes))
	for _, income := range incomes {
		data = append(data, newRecurringIncome(income))
	}

	c.JSON(http.StatusOK, RecurringIncomeListResponse{Data: data})
}

// @Summary		Get recurring income
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200	{object}	RecurringIncomeResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-incomes/{id} [get]
func (co Controller) GetRecurringIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: newRecurringIncome(income)})
}

// @Summary		Update recurring income
// @Tags			RecurringIncomes
// @Produce		json
// @Success		200		{object}	RecurringIncomeResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string					true	"ID formatted as string"
// @Param			income	body		RecurringIncomeEditable	true	"RecurringIncome"
// @Router			/v1/recurring-incomes/{id} [patch]
func (co Controller) UpdateRecurringIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := RecurringIncomeEditable{
		Name:      income.Name,
		AccountID: income.AccountID,
		Amount:    income.Amount,
		Currency:  income.Currency,
		Active:    income.Active,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&income).
		Select("Name", "AccountID", "Amount", "Currency", "Active").
		Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &income.AccountID)
	c.JSON(http.StatusOK, RecurringIncomeResponse{Data: newRecurringIncome(income)})
}

// @Summary		Delete recurring income
// @Tags			RecurringIncomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-incomes/{id} [delete]
func (co Controller) DeleteRecurringIncome(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var income models.RecurringIncome
	if err := models.DB.First(&income, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&income).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &income.AccountID)
	c.Status(http.StatusNoContent)
}
