package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/phenixmation/payables/internal/api/dto"
	"github.com/phenixmation/payables/internal/cache"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func signedToken(s *AuthServiceSuite, subject string, exp time.Time) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return token
}

func (s *AuthServiceSuite) TestLoginOpensSession() {
	exp := s.GetNow().Add(time.Hour).Truncate(time.Second)
	token := signedToken(s, "u-1", exp)
	s.GetStores().AuthRepo.Register("jeanne@example.fr", "secret", token)

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "secret"})
	s.Require().NoError(err)
	s.True(resp.LoggedIn)
	s.Equal("u-1", resp.Subject)
	s.Require().NotNil(resp.ExpiresAt)
	s.True(exp.Equal(*resp.ExpiresAt))

	s.Equal(token, s.GetSession().Token())
	s.Equal(token, s.GetStores().TokenStore.Stored())
}

func (s *AuthServiceSuite) TestLoginFlushesUserDirectory() {
	s.GetStores().AuthRepo.Register("jeanne@example.fr", "secret", "opaque")
	key := cache.GenerateKey(cache.PrefixUser, "all")
	s.GetCache().Set(s.GetContext(), key, "stale", time.Minute)

	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "secret"})
	s.Require().NoError(err)

	_, found := s.GetCache().Get(s.GetContext(), key)
	s.False(found)
}

func (s *AuthServiceSuite) TestLoginWithOpaqueToken() {
	s.GetStores().AuthRepo.Register("jeanne@example.fr", "secret", "opaque")

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "secret"})
	s.Require().NoError(err)
	s.True(resp.LoggedIn)
	s.Empty(resp.Subject)
	s.Nil(resp.ExpiresAt)
}

func (s *AuthServiceSuite) TestRejectedLoginLogsOut() {
	s.LogIn("previous")
	s.GetStores().AuthRepo.Register("jeanne@example.fr", "secret", "tok")

	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "wrong"})
	s.Require().Error(err)
	s.True(ierr.IsUnauthorized(err))
	s.False(s.GetSession().IsLoggedIn())
	s.Empty(s.GetStores().TokenStore.Stored())
}

func (s *AuthServiceSuite) TestLoginTransportFailureKeepsItsKind() {
	s.GetStores().AuthRepo.Fail(ierr.NewError("connection refused").Mark(ierr.ErrHTTPClient))

	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "secret"})
	s.Require().Error(err)
	s.True(ierr.IsHTTPClient(err))
	s.False(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestLoginValidation() {
	_, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "not-an-email", Password: "x"})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr"})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLoginSucceedsWhenTokenCannotBePersisted() {
	s.GetStores().AuthRepo.Register("jeanne@example.fr", "secret", "opaque")
	s.GetStores().TokenStore.FailSave(ierr.NewError("read-only disk").Mark(ierr.ErrSystem))

	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "jeanne@example.fr", Password: "secret"})
	s.Require().NoError(err)
	s.True(resp.LoggedIn)
	s.Equal("opaque", s.GetSession().Token())
}

func (s *AuthServiceSuite) TestLogoutAndStatus() {
	s.LogIn("opaque")

	status, err := s.service.Status(s.GetContext())
	s.Require().NoError(err)
	s.True(status.LoggedIn)

	s.Require().NoError(s.service.Logout(s.GetContext()))

	status, err = s.service.Status(s.GetContext())
	s.Require().NoError(err)
	s.False(status.LoggedIn)
	s.Empty(s.GetStores().TokenStore.Stored())
}
