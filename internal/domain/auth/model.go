package auth

import (
	"strings"
	"time"

	ierr "github.com/phenixmation/payables/internal/errors"
)

// Credentials are what the login form submits
type Credentials struct {
	Email    string
	Password string
}

// Validate checks that both credentials are present
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return ierr.NewError("missing credentials").
			WithHint("Email and password are required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Claims is the subset of the session token claims the client reads.
// The token is never verified locally, the API remains the authority.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is already past.
// A token without expiry never expires locally.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
