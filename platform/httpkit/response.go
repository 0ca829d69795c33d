// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"transaction_form/platform/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape of every /api endpoint:
// {success, data} on success, {success:false, error, details?} on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// JSON sends a raw JSON payload with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK sends a 200 success envelope around data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Fail sends a failure envelope with the given status code.
func Fail(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, Envelope{Success: false, Error: message, Details: details})
}

// HandleError maps domain errors to failure envelopes.
// Typed *apperr.Error values use their Kind; anything else is a 500.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	_ = c.Error(err)

	if domainErr, ok := apperr.As(err); ok {
		Fail(c, domainErr.HTTPStatus(), domainErr.Message, domainErr.Details)
		return true
	}

	Fail(c, http.StatusInternalServerError, "internal server error", nil)
	return true
}
