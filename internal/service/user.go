package service

import (
	"context"

	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/domain/user"
	"github.com/samber/lo"
)

type UserService interface {
	ListUsers(ctx context.Context) (*dto.ListUsersResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
	}
}

// ListUsers returns the user directory, served from cache for cache.users_ttl
func (s *userService) ListUsers(ctx context.Context) (*dto.ListUsersResponse, error) {
	key := cache.GenerateKey(cache.PrefixUser, "all")
	if cached, ok := s.Cache.Get(ctx, key); ok {
		if users, ok := cached.([]*user.User); ok {
			return s.toResponse(users), nil
		}
	}

	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, s.Session.HandleAuthError(ctx, err)
	}

	s.Cache.Set(ctx, key, users, s.Config.Cache.UsersTTL)
	return s.toResponse(users), nil
}

func (s *userService) toResponse(users []*user.User) *dto.ListUsersResponse {
	return dto.NewListResponse(lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	}))
}
