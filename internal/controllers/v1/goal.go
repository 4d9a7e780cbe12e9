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

type GoalEditable struct {
	Name      string          `json:"name" example:"Freelance target" default:""`
	Note      string          `json:"note" example:"Two client projects" default:""`
	AccountID uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the account
	Month     types.Month     `json:"month" example:"2026-07"`                                  // The month the goal applies to
	Amount    decimal.Decimal `json:"amount" example:"3000" minimum:"0.00000001"`               // The income target, always positive
	Currency  types.Currency  `json:"currency" example:"EUR"`                                   // Currency of the target
}

// model returns the database resource for the editable fields
func (editable GoalEditable) model() models.Goal {
	return models.Goal{
		Name:      editable.Name,
		Note:      editable.Note,
		AccountID: editable.AccountID,
		Month:     editable.Month,
		Amount:    editable.Amount,
		Currency:  editable.Currency,
	}
}

type Goal struct {
	models.DefaultModel
	GoalEditable
}

func newGoal(model models.Goal) Goal {
	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:      model.Name,
			Note:      model.Note,
			AccountID: model.AccountID,
			Month:     model.Month,
			Amount:    model.Amount,
			Currency:  model.Currency,
		},
	}
}

type GoalResponse struct {
	Data Goal `json:"data"`
}

type GoalListResponse struct {
	Data []Goal `json:"data"`
}

func (co Controller) RegisterGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsGoalList)
		r.GET("", co.GetGoals)
		r.POST("", co.CreateGoal)
	}
	{
		r.OPTIONS("/:id", OptionsGoalDetail)
		r.GET("/:id", co.GetGoal)
		r.PATCH("/:id", co.UpdateGoal)
		r.DELETE("/:id", co.DeleteGoal)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Router			/v1/goals [options]
func OptionsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/goals/{id} [options]
func OptionsGoalDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Goal{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create goal
// @Tags			Goals
// @Produce		json
// @Success		201		{object}	GoalResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals [post]
func (co Controller) CreateGoal(c *gin.Context) {
	var editable GoalEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	goal := editable.model()
	if err := models.DB.Create(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &goal.Month, &goal.AccountID)
	c.JSON(http.StatusCreated, GoalResponse{Data: newGoal(goal)})
}

// @Summary		List goals
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/goals [get]
func (co Controller) GetGoals(c *gin.Context) {
	var goals []models.Goal
	if err := models.DB.Order("month DESC").Find(&goals).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newGoal(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// @Summary		Get goal
// @Tags			Goals
// @Produce		json
// @Success		200	{object}	GoalResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/goals/{id} [get]
func (co Controller) GetGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// @Summary		Update goal
// @Tags			Goals
// @Produce		json
// @Success		200		{object}	GoalResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			goal	body		GoalEditable	true	"Goal"
// @Router			/v1/goals/{id} [patch]
func (co Controller) UpdateGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	previousMonth := goal.Month
	previousAccount := goal.AccountID

	editable := GoalEditable{
		Name:      goal.Name,
		Note:      goal.Note,
		AccountID: goal.AccountID,
		Month:     goal.Month,
		Amount:    goal.Amount,
		Currency:  goal.Currency,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&goal).
		Select("Name", "Note", "AccountID", "Month", "Amount", "Currency").
		Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &previousMonth, &previousAccount)
	if !previousMonth.Equal(goal.Month) || previousAccount != goal.AccountID {
		co.invalidate(c, &goal.Month, &goal.AccountID)
	}

	c.JSON(http.StatusOK, GoalResponse{Data: newGoal(goal)})
}

// @Summary		Delete goal
// @Tags			Goals
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/goals/{id} [delete]
func (co Controller) DeleteGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var goal models.Goal
	if err := models.DB.First(&goal, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&goal).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &goal.Month, &goal.AccountID)
	c.Status(http.StatusNoContent)
}
