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

type HoldingEditable struct {
	AccountID   uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`  // ID of the account holding the position
	CategoryID  uuid.UUID       `json:"categoryId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the category
	Symbol      string          `json:"symbol" example:"VWCE"`                                     // Ticker symbol
	Quantity    decimal.Decimal `json:"quantity" example:"12.5" minimum:"0"`                       // Number of units held
	AverageCost decimal.Decimal `json:"averageCost" example:"101.23" minimum:"0"`                  // Average cost per unit
	Currency    types.Currency  `json:"currency" example:"EUR"`                                    // Currency of the cost
}

// model returns the database resource for the editable fields
func (editable HoldingEditable) model() models.Holding {
	return models.Holding{
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Symbol:      editable.Symbol,
		Quantity:    editable.Quantity,
		AverageCost: editable.AverageCost,
		Currency:    editable.Currency,
	}
}

type Holding struct {
	models.DefaultModel
	HoldingEditable
}

func newHolding(model models.Holding) Holding {
	return Holding{
		DefaultModel: model.DefaultModel,
		HoldingEditable: HoldingEditable{
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Symbol:      model.Symbol,
			Quantity:    model.Quantity,
			AverageCost: model.AverageCost,
			Currency:    model.Currency,
		},
	}
}

type HoldingResponse struct {
	Data Holding `json:"data"`
}

type HoldingListResponse struct {
	Data []Holding `json:"data"`
}

func (co Controller) RegisterHoldingRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsHoldingList)
		r.GET("", co.GetHoldings)
		r.POST("", co.CreateHolding)
	}
	{
		r.OPTIONS("/:id", OptionsHoldingDetail)
		r.GET("/:id", co.GetHolding)
		r.PATCH("/:id", co.UpdateHolding)
		r.DELETE("/:id", co.DeleteHolding)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Holdings
// @Success		204
// @Router			/v1/holdings [options]
func OptionsHoldingList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Holdings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/holdings/{id} [options]
func OptionsHoldingDetail(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.First(&models.Holding{}, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create holding
// @Tags			Holdings
// @Produce		json
// @Success		201		{object}	HoldingResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			holding	body		HoldingEditable	true	"Holding"
// @Router			/v1/holdings [post]
func (co Controller) CreateHolding(c *gin.Context) {
	var editable HoldingEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	holding := editable.model()
	if err := models.DB.Create(&holding).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &holding.AccountID)
	c.JSON(http.StatusCreated, HoldingResponse{Data: newHolding(holding)})
}

// @Summary		List holdings
// @Tags			Holdings
// @Produce		json
// @Success		200	{object}	HoldingListResponse
// @Failure		500	{object}	httpError
// @Router			/v1/holdings [get]
func (co Controller) GetHoldings(c *gin.Context) {
	var holdings []models.Holding
	if err := models.DB.Order("symbol ASC").Find(&holdings).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Holding, 0, len(holdings))
	for _, holding := range holdings {
		data = append(data, newHolding(holding))
	}

	c.JSON(http.StatusOK, HoldingListResponse{Data: data})
}

// @Summary		Get holding
// @Tags			Holdings
// @Produce		json
// @Success		200	{object}	HoldingResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/holdings/{id} [get]
func (co Controller) GetHolding(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var holding models.Holding
	if err := models.DB.First(&holding, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, HoldingResponse{Data: newHolding(holding)})
}

// @Summary		Update holding
// @Tags			Holdings
// @Produce		json
// @Success		200		{object}	HoldingResponse
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			id		path		string			true	"ID formatted as string"
// @Param			holding	body		HoldingEditable	true	"Holding"
// @Router			/v1/holdings/{id} [patch]
func (co Controller) UpdateHolding(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var holding models.Holding
	if err := models.DB.First(&holding, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	editable := HoldingEditable{
		AccountID:   holding.AccountID,
		CategoryID:  holding.CategoryID,
		Symbol:      holding.Symbol,
		Quantity:    holding.Quantity,
		AverageCost: holding.AverageCost,
		Currency:    holding.Currency,
	}
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	err := models.DB.Model(&holding).
		Select("AccountID", "CategoryID", "Symbol", "Quantity", "AverageCost", "Currency").
		Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &holding.AccountID)
	c.JSON(http.StatusOK, HoldingResponse{Data: newHolding(holding)})
}

// @Summary		Delete holding
// @Tags			Holdings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/holdings/{id} [delete]
func (co Controller) DeleteHolding(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var holding models.Holding
	if err := models.DB.First(&holding, uri.ID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&holding).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	co.invalidate(c, nil, &holding.AccountID)
	c.Status(http.StatusNoContent)
}
