package v1

import (
	"net/http"
	"time"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2026-07-12T18:43:00Z"` // Date of the transaction, defaults to now

	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" multipleOf:"0.00000001"` // The amount, always positive

	Type       models.TransactionType `json:"type" example:"expense"`                                    // income or expense
	Currency   types.Currency         `json:"currency" example:"EUR"`                                    // Currency the amount is denominated in
	Note       string                 `json:"note" example:"Lunch" default:""`                           // A note
	AccountID  uuid.UUID              `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // ID of the account
	CategoryID uuid.UUID              `json:"categoryId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the category
	Reconciled bool                   `json:"reconciled" example:"false" default:"false"`                // Has the transaction been confirmed against a statement?
}

// model returns the database resource for the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:       editable.Date,
		Amount:     editable.Amount,
		Type:       editable.Type,
		Currency:   editable.Currency,
		Note:       editable.Note,
		AccountID:  editable.AccountID,
		CategoryID: editable.CategoryID,
		Reconciled: editable.Reconciled,
	}
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Month types.Month `json:"month" example:"2026-07"` // Derived from the date
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:       model.Date,
			Amount:     model.Amount,
			Type:       model.Type,
			Currency:   model.Currency,
			Note:       model.Note,
			AccountID:  model.AccountID,
			CategoryID: model.CategoryID,
			Reconciled: model.Reconciled,
		},
		Month: model.Month,
	}
}

type TransactionResponse struct {
	Data Transaction `json:"data"`
}

type TransactionListResponse struct {
	Data []Transaction `json:"data"`
}

// TransactionQuery filters the transaction list.
type TransactionQuery struct {
	Month   string `form:"month" example:"2026-07"` // Only transactions in this month
	Account string `form:"account" format:"UUID"`   // Only transactions on this account
}

func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Transaction{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create transaction
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	transaction := editable.model()
	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &transaction.Month, &transaction.AccountID)
	c.JSON(http.StatusCreated, TransactionResponse{Data: newTransaction(transaction)})
}

// @Summary		List transactions
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	TransactionListResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	false	"Only transactions in this month, YYYY-MM format"
// @Param			account	query		string	false	"Only transactions on this account"
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	db := models.DB.Order("date DESC")

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

	var transactions []models.Transaction
	if err := db.Find(&transactions).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Get transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(transaction)})
}

// @Summary		Update transaction
// @Tags			Transactions
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	httpError
// @Failure		404			{object}	httpError
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	previousMonth := transaction.Month
	previousAccount := transaction.AccountID

	editable := TransactionEditable{
		Date:       transaction.Date,
		Amount:     transaction.Amount,
		Type:       transaction.Type,
		Currency:   transaction.Currency,
		Note:       transaction.Note,
		AccountID:  transaction.AccountID,
		CategoryID: transaction.CategoryID,
		Reconciled: transaction.Reconciled,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&transaction).
		Select("Date", "Amount", "Type", "Currency", "Note", "AccountID", "CategoryID", "Reconciled").
		Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// The transaction may have moved to another month or account
	co.invalidate(c, &previousMonth, &previousAccount)
	if !previousMonth.Equal(transaction.Month) || previousAccount != transaction.AccountID {
		co.invalidate(c, &transaction.Month, &transaction.AccountID)
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: newTransaction(transaction)})
}

// @Summary		Delete transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, &transaction.Month, &transaction.AccountID)
	c.Status(http.StatusNoContent)
}
