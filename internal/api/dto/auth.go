package dto

import (
	"time"

	"github.com/phenixmation/payables/internal/validator"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SessionResponse tells the client whether it must log in first
type SessionResponse struct {
	LoggedIn  bool       `json:"logged_in"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
