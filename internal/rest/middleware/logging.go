package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/types"
)

// RequestLogger logs one line per request at debug level
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", types.GetRequestID(c.Request.Context()),
		)
	}
}
