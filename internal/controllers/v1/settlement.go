package v1

import (
	"net/http"

	"github.com/fintrack-app/backend/internal/httputil"
	"github.com/fintrack-app/backend/internal/split"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SettlementListResponse struct {
	Data []split.Balance `json:"data"` // One balance per counterpart and currency, largest absolute net first
}

func (co Controller) RegisterSettlementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettlementList)
	r.GET("", co.GetSettlements)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settlements
// @Success		204
// @Router			/v1/settlements [options]
func OptionsSettlementList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get settlement balances
// @Description	Returns who owes whom, netted per counterpart and currency over all pending shares
// @Tags			Settlements
// @Produce		json
// @Success		200		{object}	SettlementListResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	query		string	true	"User to compute balances for"
// @Router			/v1/settlements [get]
func (co Controller) GetSettlements(c *gin.Context) {
	var query SettlementQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	userID, err := uuid.Parse(query.User)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errUserInvalid.Error()})
		return
	}

	balances, err := co.Settlements.SettlementBalances(c.Request.Context(), userID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SettlementListResponse{Data: balances})
}
