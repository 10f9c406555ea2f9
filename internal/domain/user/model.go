package user

import "strings"

// User is an account of the remote invoicing API, shown in the user list
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName returns the name, falling back to the email when the name is blank
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
