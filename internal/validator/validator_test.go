package validator

import (
	"testing"

	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	require.NoError(t, ValidateRequest(loginRequest{Email: "a@b.ca", Password: "x"}))

	err := ValidateRequest(loginRequest{Email: "nope"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
