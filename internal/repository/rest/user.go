package rest

import (
	"context"
	"net/http"

	domainUser "github.com/phenixmation/payables/internal/domain/user"
	"github.com/phenixmation/payables/internal/logger"
)

type userRepository struct {
	client *Client
	logger *logger.Logger
}

// NewUserRepository creates a user repository backed by the invoice API
func NewUserRepository(client *Client, logger *logger.Logger) domainUser.Repository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) List(ctx context.Context) ([]*domainUser.User, error) {
	var env usersEnvelope
	err := r.client.do(ctx, call{
		method:        http.MethodGet,
		path:          "/utilisateurs",
		authenticated: true,
	}, &env)
	if err != nil {
		return nil, err
	}

	users := make([]*domainUser.User, 0, len(env.Users))
	for _, u := range env.Users {
		users = append(users, u.toUser())
	}
	return users, nil
}
