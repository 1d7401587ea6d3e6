package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every API reply uses.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	RespondErrorDetails(c, code, err, nil)
}

// RespondErrorDetails is RespondError with a payload, e.g. the list of validation problems.
func RespondErrorDetails(c *gin.Context, code int, err error, details interface{}) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    details,
	})
}
