package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/phenixmation/payables/internal/types"
)

// RequestIDMiddleware puts the caller's X-Request-ID, or a fresh one, in the
// request context. The id is forwarded to the invoice API and echoed back.
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	c.Request = c.Request.WithContext(types.SetRequestID(c.Request.Context(), requestID))

	// Add headers for response
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
