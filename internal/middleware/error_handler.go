package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradechart/internal/domain/dto"
	"github.com/guttosm/tradechart/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON ErrorResponse
// when no handler has written a body yet. An attached dto.ErrorResponse is
// sent as is with the status already set (c.AbortWithError writes the header
// immediately); anything else becomes a 500 unless an error status was set.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Size() > 0 {
		return
	}

	err := c.Errors.Last().Err
	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, resp)
}

// AbortWithError logs err, stops the handler chain and writes a standardized
// error body with the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	rid, _ := c.Get(RequestIDKey)
	ev := logger.L().Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.L().Error()
	}
	ev.Str("request_id", toString(rid)).
		Int("status", status).
		Err(err).
		Msg(message)

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
