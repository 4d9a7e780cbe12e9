package v1

import (
	"errors"
	"net/http"

	"github.com/fintrack-app/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthInvalid         = errors.New("could not parse the specified month, did you use YYYY-MM format?")
	errAccountInvalid       = errors.New("the account parameter must be a valid UUID")
	errUserInvalid          = errors.New("the user parameter must be a valid UUID")
	errParticipantsNotFound = errors.New("one or more participant emails do not belong to a registered user")
)
