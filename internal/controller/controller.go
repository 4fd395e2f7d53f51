package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrick-john02/ATCRS/internal/apperr"
	"github.com/patrick-john02/ATCRS/internal/dto"
)

// StatusCode maps the service error taxonomy to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrExamUnavailable),
		errors.Is(err, apperr.ErrCapacityExceeded),
		errors.Is(err, apperr.ErrAttemptLimitExceeded),
		errors.Is(err, apperr.ErrExamNotInProgress),
		errors.Is(err, apperr.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error with its mapped status. Internal errors
// are masked; taxonomy errors are user-actionable and passed through.
func RespondError(c *gin.Context, err error) {
	status := StatusCode(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, dto.ErrorResponse{Error: msg})
}
