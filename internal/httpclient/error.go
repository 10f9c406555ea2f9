package httpclient

import (
	goerrors "errors"
	"fmt"

	"github.com/phenixmation/payables/internal/errors"
)

// Error is returned by Send for responses with a status of 400 or more
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError.Unwrap()
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.InternalError.Error(), e.StatusCode)
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, "http client error"),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if goerrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsAuthError reports whether err is a 401 or 403 answer of the remote API
func IsAuthError(err error) bool {
	httpErr, ok := IsHTTPError(err)
	return ok && (httpErr.StatusCode == 401 || httpErr.StatusCode == 403)
}
