package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/internal/domain/dto"
	"github.com/mfontes/hspulse/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context by handlers
// (via c.Error) into the standard JSON envelope. Handlers that already
// wrote a response are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal error", err))
}

// AbortWithError writes the standard error envelope with the given status
// and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
