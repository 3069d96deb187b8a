package v1

import (
	"errors"
	"net/http"

	"github.com/kopilka/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"an error occurred on the server during your request"`
}

// status returns the appropriate HTTP status for an engine error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrConflictingUpdate) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
	errMonthNotSet        = errors.New("the month must be set")
	errBudgetNotFound     = errors.New("there is no budget for this month")
)
