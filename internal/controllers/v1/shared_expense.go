package v1

import (
	"net/http"
	"strings"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/split"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SharedExpenseParticipantInput struct {
	Email       string           `json:"email" example:"sam@example.com" binding:"required"` // Email of a registered user
	Percentage  *decimal.Decimal `json:"percentage,omitempty" example:"25"`                  // Share in percent, only for percentage splits
	FixedAmount *decimal.Decimal `json:"fixedAmount,omitempty" example:"12.50"`              // Fixed share, only for fixed splits
}

type SharedExpenseCreate struct {
	OwnerID       uuid.UUID                       `json:"ownerId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`       // User who paid the expense
	TransactionID uuid.UUID                       `json:"transactionId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // The underlying transaction
	SplitType     models.SplitType                `json:"splitType" example:"equal"`                                    // equal, percentage or fixed
	TotalAmount   decimal.Decimal                 `json:"totalAmount" example:"100" minimum:"0.00000001"`               // What the owner paid in total
	Currency      types.Currency                  `json:"currency" example:"EUR"`                                       // Currency of the expense
	Participants  []SharedExpenseParticipantInput `json:"participants" binding:"required"`                              // Everyone the expense is shared with, owner excluded
}

func (create SharedExpenseCreate) splitInputs() []split.ParticipantInput {
	inputs := make([]split.ParticipantInput, 0, len(create.Participants))
	for _, p := range create.Participants {
		inputs = append(inputs, split.ParticipantInput{
			Email:       strings.ToLower(strings.TrimSpace(p.Email)),
			Percentage:  p.Percentage,
			FixedAmount: p.FixedAmount,
		})
	}

	return inputs
}

type SharedExpenseParticipant struct {
	models.DefaultModel
	UserID          uuid.UUID                `json:"userId"`
	Email           string                   `json:"email" example:"sam@example.com"`
	ShareAmount     decimal.Decimal          `json:"shareAmount" example:"33.34"`
	SharePercentage *decimal.Decimal         `json:"sharePercentage,omitempty" example:"25"`
	Status          models.ParticipantStatus `json:"status" example:"pending"`
}

type SharedExpense struct {
	models.DefaultModel
	OwnerID       uuid.UUID                  `json:"ownerId"`
	TransactionID uuid.UUID                  `json:"transactionId"`
	SplitType     models.SplitType           `json:"splitType" example:"equal"`
	TotalAmount   decimal.Decimal            `json:"totalAmount" example:"100"`
	OwnerShare    decimal.Decimal            `json:"ownerShare" example:"33.32"` // What remains with the owner
	Currency      types.Currency             `json:"currency" example:"EUR"`
	Participants  []SharedExpenseParticipant `json:"participants"`
}

func newSharedExpense(model models.SharedExpense) SharedExpense {
	participants := make([]SharedExpenseParticipant, 0, len(model.Participants))
	ownerShare := model.TotalAmount

	for _, p := range model.Participants {
		participants = append(participants, SharedExpenseParticipant{
			DefaultModel:    p.DefaultModel,
			UserID:          p.UserID,
			Email:           p.User.Email,
			ShareAmount:     p.ShareAmount,
			SharePercentage: p.SharePercentage,
			Status:          p.Status,
		})
		ownerShare = ownerShare.Sub(p.ShareAmount)
	}

	return SharedExpense{
		DefaultModel:  model.DefaultModel,
		OwnerID:       model.OwnerID,
		TransactionID: model.TransactionID,
		SplitType:     model.SplitType,
		TotalAmount:   model.TotalAmount,
		OwnerShare:    ownerShare,
		Currency:      model.Currency,
		Participants:  participants,
	}
}

type SharedExpenseResponse struct {
	Data SharedExpense `json:"data"`
}

type SharedExpenseListResponse struct {
	Data []SharedExpense `json:"data"`
}

type SplitPreviewResponse struct {
	Data split.Result `json:"data"` // Calculated shares, or the validation errors
}

type ParticipantStatusEditable struct {
	Status models.ParticipantStatus `json:"status" example:"paid" binding:"required"` // pending, paid or declined
}

func (co Controller) RegisterSharedExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSharedExpenseList)
		r.GET("", co.GetSharedExpenses)
		r.POST("", co.CreateSharedExpense)
	}
	{
		r.OPTIONS("/preview", OptionsSharedExpensePreview)
		r.POST("/preview", co.PreviewSharedExpense)
	}
	{
		r.OPTIONS("/:id", OptionsSharedExpenseDetail)
		r.GET("/:id", co.GetSharedExpense)
		r.DELETE("/:id", co.DeleteSharedExpense)
	}
	{
		r.OPTIONS("/participants/:id", OptionsSharedExpenseParticipant)
		r.PATCH("/participants/:id", co.UpdateSharedExpenseParticipant)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SharedExpenses
// @Success		204
// @Router			/v1/shared-expenses [options]
func OptionsSharedExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SharedExpenses
// @Success		204
// @Router			/v1/shared-expenses/preview [options]
func OptionsSharedExpensePreview(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SharedExpenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shared-expenses/{id} [options]
func OptionsSharedExpenseDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.SharedExpense{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SharedExpenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/shared-expenses/participants/{id} [options]
func OptionsSharedExpenseParticipant(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.ExpenseParticipant{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Preview split
// @Description	Calculates the shares for a split without persisting anything. Validation errors are returned per field.
// @Tags			SharedExpenses
// @Produce		json
// @Success		200		{object}	SplitPreviewResponse
// @Failure		400		{object}	SplitPreviewResponse
// @Param			expense	body		SharedExpenseCreate	true	"SharedExpense"
// @Router			/v1/shared-expenses/preview [post]
func (co Controller) PreviewSharedExpense(c *gin.Context) {
	var create SharedExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	result := split.Compute(create.SplitType, create.TotalAmount, create.splitInputs())
	if !result.IsValid {
		c.JSON(http.StatusBadRequest, SplitPreviewResponse{Data: result})
		return
	}

	c.JSON(http.StatusOK, SplitPreviewResponse{Data: result})
}

// @Summary		Create shared expense
// @Description	Splits an expense between the owner and the participants and persists the shares
// @Tags			SharedExpenses
// @Produce		json
// @Success		201		{object}	SharedExpenseResponse
// @Failure		400		{object}	SplitPreviewResponse
// @Failure		500		{object}	httpError
// @Param			expense	body		SharedExpenseCreate	true	"SharedExpense"
// @Router			/v1/shared-expenses [post]
func (co Controller) CreateSharedExpense(c *gin.Context) {
	var create SharedExpenseCreate
	if err := httputil.BindData(c, &create); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	inputs := create.splitInputs()
	result := split.Compute(create.SplitType, create.TotalAmount, inputs)
	if !result.IsValid {
		c.JSON(http.StatusBadRequest, SplitPreviewResponse{Data: result})
		return
	}

	users, err := usersByEmail(inputs)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	expense := models.SharedExpense{
		OwnerID:       create.OwnerID,
		TransactionID: create.TransactionID,
		SplitType:     create.SplitType,
		TotalAmount:   create.TotalAmount,
		Currency:      create.Currency,
	}

	for _, share := range result.ParticipantShares {
		expense.Participants = append(expense.Participants, models.ExpenseParticipant{
			UserID:          users[share.Email].ID,
			ShareAmount:     share.Amount,
			SharePercentage: share.Percentage,
			Status:          models.ParticipantStatusPending,
		})
	}

	if err := models.DB.Create(&expense).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Reload with users for the response
	if err := models.DB.Preload("Participants.User").First(&expense, expense.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SharedExpenseResponse{Data: newSharedExpense(expense)})
}

// usersByEmail resolves participant emails to registered users.
func usersByEmail(inputs []split.ParticipantInput) (map[string]models.User, error) {
	emails := make([]string, 0, len(inputs))
	for _, in := range inputs {
		emails = append(emails, in.Email)
	}

	var users []models.User
	if err := models.DB.Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, err
	}

	byEmail := make(map[string]models.User, len(users))
	for _, user := range users {
		byEmail[user.Email] = user
	}

	for _, email := range emails {
		if _, ok := byEmail[email]; !ok {
			return nil, errParticipantsNotFound
		}
	}

	return byEmail, nil
}

// @Summary		List shared expenses
// @Tags			SharedExpenses
// @Produce		json
// @Success		200	{object}	SharedExpenseListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/shared-expenses [get]
func (co Controller) GetSharedExpenses(c *gin.Context) {
	var expenses []models.SharedExpense
	err := models.DB.Preload("Participants.User").Order("created_at DESC").Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]SharedExpense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newSharedExpense(expense))
	}

	c.JSON(http.StatusOK, SharedExpenseListResponse{Data: data})
}

// @Summary		Get shared expense
// @Tags			SharedExpenses
// @Produce		json
// @Success		200	{object}	SharedExpenseResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/shared-expenses/{id} [get]
func (co Controller) GetSharedExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.SharedExpense
	err := models.DB.Preload("Participants.User").First(&expense, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SharedExpenseResponse{Data: newSharedExpense(expense)})
}

// @Summary		Delete shared expense
// @Description	Deletes the expense together with its participant shares
// @Tags			SharedExpenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/shared-expenses/{id} [delete]
func (co Controller) DeleteSharedExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expense models.SharedExpense
	if err := models.DB.First(&expense, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err := models.DB.Where("shared_expense_id = ?", expense.ID).Delete(&models.ExpenseParticipant{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&expense).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Update participant status
// @Description	Marks a participant's share as pending, paid or declined
// @Tags			SharedExpenses
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id		path	string						true	"ID formatted as string"
// @Param			status	body	ParticipantStatusEditable	true	"Status"
// @Router			/v1/shared-expenses/participants/{id} [patch]
func (co Controller) UpdateSharedExpenseParticipant(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var participant models.ExpenseParticipant
	if err := models.DB.First(&participant, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var editable ParticipantStatusEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&participant).Select("Status").Updates(models.ExpenseParticipant{Status: editable.Status}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
