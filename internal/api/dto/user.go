package dto

import "github.com/phenixmation/payables/internal/domain/user"

type UserResponse struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.DisplayName(),
		Email: u.Email,
	}
}

type ListUsersResponse = ListResponse[*UserResponse]
