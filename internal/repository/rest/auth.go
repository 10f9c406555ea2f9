package rest

import (
	"context"
	"net/http"

	domainAuth "github.com/phenixmation/payables/internal/domain/auth"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
)

type authRepository struct {
	client *Client
	logger *logger.Logger
}

// NewAuthRepository creates the token endpoint repository
func NewAuthRepository(client *Client, logger *logger.Logger) domainAuth.Repository {
	return &authRepository{
		client: client,
		logger: logger,
	}
}

// Login exchanges credentials for a token. A rejected login and an answer
// without token are both unauthorized, other failures keep their own kind.
func (r *authRepository) Login(ctx context.Context, creds domainAuth.Credentials) (string, error) {
	var resp tokenResponse
	err := r.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/generatetoken",
		body: loginRequest{UserLogin: userLogin{
			Email:      creds.Email,
			MotDePasse: creds.Password,
		}},
		// unknown accounts come back as 400 or 404 depending on the API version
		notFound: []int{http.StatusBadRequest, http.StatusNotFound},
	}, &resp)
	if err != nil {
		if ierr.IsUnauthorized(err) || ierr.IsNotFound(err) {
			return "", ierr.NewError("login rejected").
				WithHint("Invalid email or password").
				Mark(ierr.ErrUnauthorized)
		}
		return "", err
	}

	if resp.Token == "" {
		return "", ierr.NewError("login answered without token").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}
	return resp.Token, nil
}
