package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

type errorMapping struct {
	err    error
	status int
}

// serviceErrors maps the booking error taxonomy to HTTP. Storage failures fall through
// to a generic 500.
var serviceErrors = []errorMapping{
	{services.ErrValidation, http.StatusBadRequest},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrNotAvailable, http.StatusConflict},
	{services.ErrNoTableAvailable, http.StatusConflict},
	{services.ErrInvalidTransition, http.StatusConflict},
}

var errInternal = errors.New("an internal error occurred, please try again later")

func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		utils.RespondErrorDetails(c, http.StatusBadRequest, err, gin.H{"errors": verr.Problems})
		return
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			utils.RespondError(c, m.status, err)
			return
		}
	}
	utils.ErrorLogger.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	utils.RespondError(c, http.StatusInternalServerError, errInternal)
}
