package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/internal/domain/dto"
	"github.com/mfontes/hspulse/internal/logger"
)

// RecoveryMiddleware catches panics from downstream handlers, logs the
// stack, and answers a standardized 500 envelope instead of dropping the
// connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.L().Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
			}
		}()
		c.Next()
	}
}
