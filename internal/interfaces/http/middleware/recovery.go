package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// Recovery turns a handler panic into the JSON 500 envelope. Panics caused by
// the client hanging up are logged at warn level and get no response.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			fields := []any{
				"request_id", c.GetString(constants.ContextKeyRequestID),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(recovered),
			}

			if clientGone(recovered) {
				log.Warnw("client disconnected mid-response", fields...)
				c.Abort()
				return
			}

			log.Errorw("panic recovered", append(fields, "stack", string(debug.Stack()))...)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			utils.ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
			c.Abort()
		}()

		c.Next()
	}
}

func clientGone(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return errors.Is(err, http.ErrAbortHandler) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET)
}
