package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/astropulse/internal/domain/dto"
)

// ErrorHandler answers with a JSON error body when a handler recorded errors
// through c.Error without writing a response itself.
//
// A dto.ErrorResponse recorded as the last error is sent as-is; anything
// else becomes a generic 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	var resp dto.ErrorResponse
	if !errors.As(last, &resp) {
		resp = dto.NewErrorResponse("Internal server error", last)
	}
	resp.RequestID = GetRequestID(c)

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

// AbortWithError records err on the context and aborts with a JSON body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	resp := dto.NewErrorResponse(message, err)
	resp.RequestID = GetRequestID(c)
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, resp)
}
