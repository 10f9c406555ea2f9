package auth

import (
	ierr "github.com/phenixmation/payables/internal/errors"
)

// rejectedTokenError remembers which bearer token the invoice API refused.
// The token never appears in the message.
type rejectedTokenError struct {
	cause error
	token string
}

func (e *rejectedTokenError) Error() string { return e.cause.Error() }
func (e *rejectedTokenError) Cause() error  { return e.cause }
func (e *rejectedTokenError) Unwrap() error { return e.cause }

// WithRejectedToken records on err the token the request was sent with
func WithRejectedToken(err error, token string) error {
	if err == nil || token == "" {
		return err
	}
	return &rejectedTokenError{cause: err, token: token}
}

// RejectedToken returns the token recorded by WithRejectedToken, if any
func RejectedToken(err error) (string, bool) {
	var rejected *rejectedTokenError
	if ierr.As(err, &rejected) {
		return rejected.token, true
	}
	return "", false
}
