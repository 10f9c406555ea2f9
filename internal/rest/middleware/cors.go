package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phenixmation/payables/internal/types"
)

var corsAllowedHeaders = strings.Join([]string{
	"Content-Type",
	types.HeaderAuthorization,
	types.HeaderRequestID,
}, ", ")

// CORSMiddleware handles CORS headers
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
	c.Writer.Header().Set("Access-Control-Expose-Headers", types.HeaderRequestID+", Content-Disposition")
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
