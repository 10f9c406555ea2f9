package auth

import "context"

// Repository exchanges credentials for a session token
type Repository interface {
	Login(ctx context.Context, creds Credentials) (string, error)
}
