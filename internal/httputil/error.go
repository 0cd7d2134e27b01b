package httputil

import (
	"github.com/gin-gonic/gin"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error   string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error
	Details any    `json:"details,omitempty"`                                             // Structured information about the error, if available
}

// NewError aborts the request with the status and an HTTPError body.
func NewError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: err.Error(),
	})
}
