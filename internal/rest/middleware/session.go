package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/phenixmation/payables/internal/errors"
)

// SessionChecker is satisfied by *session.Session
type SessionChecker interface {
	IsLoggedIn() bool
}

// RequireSession rejects requests made while nobody is logged in
func RequireSession(s SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.IsLoggedIn() {
			c.Error(ierr.NewError("no active session").
				WithHint("Please log in").
				Mark(ierr.ErrUnauthorized))
			c.Abort()
			return
		}
		c.Next()
	}
}
