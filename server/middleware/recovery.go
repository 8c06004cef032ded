package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/restkit/logger"
)

// Recovery recovers handler panics, logs the stack and answers with a 500
// result envelope. The problem detail carries an errorId that is also logged.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.WithComponent("http")
	}
	return func(c *gin.Context) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			ctx := c.Request.Context()
			errorID := uuid.NewString()
			log.WithContext(ctx).Error("Panic recovered", map[string]interface{}{
				logger.FieldError:  fmt.Sprintf("%v", p),
				"stack":            string(debug.Stack()),
				logger.FieldPath:   c.Request.URL.Path,
				logger.FieldMethod: c.Request.Method,
				"client_ip":        c.ClientIP(),
				"error_id":         errorID,
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			abort(c, panicked(fmt.Errorf("panic: %v", p), c.Request.URL.Path, logger.RequestIDFromContext(ctx), errorID))
		}()
		c.Next()
	}
}
