package rest

import (
	"context"
	"net/http"
	"testing"

	authToken "github.com/phenixmation/payables/internal/auth"
	"github.com/phenixmation/payables/internal/config"
	domainAuth "github.com/phenixmation/payables/internal/domain/auth"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/testutil"
	"github.com/phenixmation/payables/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(token string) (*Client, *testutil.MockHTTPClient) {
	mock := testutil.NewMockHTTPClient()
	cfg := config.GetDefaultConfig()
	cfg.API.BaseURL = "http://invoices.test/api"
	return NewClient(cfg, mock, staticToken(token), logger.NewNopLogger()), mock
}

func TestClientForwardsRequestID(t *testing.T) {
	client, mock := newMockedClient("tok")
	mock.RegisterJSONResponse(http.MethodGet, "/utilisateurs", http.StatusOK, `{"users":[]}`)

	ctx := types.SetRequestID(context.Background(), "req-42")
	_, err := NewUserRepository(client, logger.NewNopLogger()).List(ctx)
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "http://invoices.test/api/utilisateurs", reqs[0].URL)
	assert.Equal(t, "req-42", reqs[0].Headers[types.HeaderRequestID])
	assert.Equal(t, "Bearer tok", reqs[0].Headers[types.HeaderAuthorization])
}

func TestClientRejectsUndecodableBody(t *testing.T) {
	client, mock := newMockedClient("tok")
	mock.RegisterJSONResponse(http.MethodGet, "/factures", http.StatusOK, `<html>oops</html>`)

	_, err := NewInvoiceRepository(client, logger.NewNopLogger()).List(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsHTTPClient(err))
	assert.Equal(t, http.StatusBadGateway, ierr.HTTPStatusFromErr(err))
}

func TestClientDoesNotCallAPIWithoutToken(t *testing.T) {
	client, mock := newMockedClient("")

	_, err := NewInvoiceRepository(client, logger.NewNopLogger()).Get(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, ierr.IsUnauthorized(err))
	assert.Empty(t, mock.Requests())
}

func TestClientRecordsRejectedToken(t *testing.T) {
	client, mock := newMockedClient("tok")
	mock.RegisterJSONResponse(http.MethodGet, "/factures", http.StatusUnauthorized, `{"message":"jwt expired"}`)

	_, err := NewInvoiceRepository(client, logger.NewNopLogger()).List(context.Background())
	require.Error(t, err)
	assert.True(t, ierr.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, ierr.HTTPStatusFromErr(err))
	assert.NotContains(t, err.Error(), "tok")

	token, ok := authToken.RejectedToken(err)
	require.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestLoginIsSentWithoutBearer(t *testing.T) {
	client, mock := newMockedClient("")
	mock.RegisterJSONResponse(http.MethodPost, "/generatetoken", http.StatusOK, `{"token":"fresh"}`)

	token, err := NewAuthRepository(client, logger.NewNopLogger()).Login(context.Background(), domainAuth.Credentials{Email: "a@b.fr", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	_, hasAuth := reqs[0].Headers[types.HeaderAuthorization]
	assert.False(t, hasAuth)
	assert.JSONEq(t, `{"userLogin":{"email":"a@b.fr","motDePasse":"pw"}}`, string(reqs[0].Body))
}
