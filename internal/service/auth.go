package service

import (
	"context"

	"github.com/phenixmation/payables/internal/api/dto"
	authToken "github.com/phenixmation/payables/internal/auth"
	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/domain/auth"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*dto.SessionResponse, error)
}

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

// Login exchanges credentials for a token and opens the session. A rejected
// login leaves the process logged out.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	creds := auth.Credentials{Email: req.Email, Password: req.Password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	token, err := s.AuthRepo.Login(ctx, creds)
	if err != nil {
		_ = s.Session.Logout(ctx)
		s.Logger.Infow("login rejected", "email", req.Email, "error", err)
		return nil, err
	}

	if err := s.Session.Start(ctx, token); err != nil {
		return nil, err
	}

	// the user directory may differ between accounts
	s.Cache.DeleteByPrefix(ctx, cache.PrefixUser)
	return s.Status(ctx)
}

func (s *authService) Logout(ctx context.Context) error {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixUser)
	if err := s.Session.Logout(ctx); err != nil {
		return err
	}
	s.Logger.Infow("logged out")
	return nil
}

// Status reports the session state. Subject and expiry are only known for
// JWT tokens.
func (s *authService) Status(ctx context.Context) (*dto.SessionResponse, error) {
	token := s.Session.Token()
	if token == "" {
		return &dto.SessionResponse{LoggedIn: false}, nil
	}

	resp := &dto.SessionResponse{LoggedIn: true}
	claims, err := authToken.ReadClaims(token)
	if err != nil {
		return resp, nil
	}
	resp.Subject = claims.Subject
	if !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp, nil
}
