package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/phenixmation/payables/internal/api/v1"
	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/domain/invoice"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/pdf"
	"github.com/phenixmation/payables/internal/service"
	"github.com/phenixmation/payables/internal/session"
	"github.com/phenixmation/payables/internal/testutil"
	"github.com/phenixmation/payables/internal/types"
	"github.com/phenixmation/payables/internal/validator"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
	router   *gin.Engine
	session  *session.Session
	invoices *testutil.InMemoryInvoiceStore
	params   service.ServiceParams
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	validator.NewValidator()
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()

	authRepo := testutil.NewInMemoryAuthRepository()
	authRepo.Register("jeanne@example.fr", "secret", "tok")
	s.invoices = testutil.NewInMemoryInvoiceStore()
	s.session = session.NewSession(testutil.NewInMemoryTokenStore(), log)

	s.params = service.NewServiceParams(
		log, cfg, s.session, pdf.NewGenerator(cfg),
		authRepo, testutil.NewInMemoryUserStore(), s.invoices,
		cache.NewInMemoryCache(cfg, log), cache.NewDraftStore(cfg, log),
	)

	handlers := Handlers{
		Health:  v1.NewHealthHandler(s.session, log),
		Auth:    v1.NewAuthHandler(service.NewAuthService(s.params), log),
		Invoice: v1.NewInvoiceHandler(service.NewInvoiceService(s.params), log),
		Draft:   v1.NewDraftHandler(service.NewDraftService(s.params), log),
		User:    v1.NewUserHandler(service.NewUserService(s.params), log),
	}
	s.router = NewRouter(handlers, cfg, log, nil, s.session)
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *RouterSuite) login() {
	w := s.do(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "jeanne@example.fr",
		"password": "secret",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestPrivateRoutesNeedSession() {
	w := s.do(http.MethodGet, "/v1/factures", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.False(resp.Success)
	s.Equal("Please log in", resp.Error.Display)
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(types.HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("req-1", w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestLoginAndSession() {
	w := s.do(http.MethodGet, "/v1/auth/session", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"logged_in":false}`, w.Body.String())

	s.login()

	w = s.do(http.MethodGet, "/v1/auth/session", nil)
	s.JSONEq(`{"logged_in":true}`, w.Body.String())

	w = s.do(http.MethodPost, "/v1/auth/logout", nil)
	s.Equal(http.StatusOK, w.Code)
	s.False(s.session.IsLoggedIn())
}

func (s *RouterSuite) TestBadLogin() {
	w := s.do(http.MethodPost, "/v1/auth/login", map[string]string{
		"email":    "jeanne@example.fr",
		"password": "nope",
	})
	s.Equal(http.StatusUnauthorized, w.Code)

	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invalid email or password", resp.Error.Display)

	w = s.do(http.MethodPost, "/v1/auth/login", map[string]string{"email": "jeanne@example.fr"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestDraftLifecycle() {
	s.login()

	w := s.do(http.MethodPost, "/v1/drafts", nil)
	s.Require().Equal(http.StatusCreated, w.Code)
	var draft struct {
		ID      string `json:"id"`
		Invoice struct {
			GrandTotal string `json:"grand_total"`
		} `json:"invoice"`
	}
	s.decode(w, &draft)
	s.Equal("105.00", draft.Invoice.GrandTotal)

	w = s.do(http.MethodPatch, "/v1/drafts/"+draft.ID+"/lines/0", map[string]any{"quantity": 2})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &draft)
	s.Equal("210.00", draft.Invoice.GrandTotal)

	w = s.do(http.MethodPatch, "/v1/drafts/"+draft.ID+"/lines/x", map[string]any{"quantity": 2})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, "/v1/drafts/"+draft.ID, map[string]any{"due_date": "demain"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/v1/drafts/"+draft.ID+"/submit", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var submitted struct {
		Created bool `json:"created"`
		Invoice struct {
			Number     int64  `json:"number"`
			GrandTotal string `json:"grand_total"`
		} `json:"invoice"`
	}
	s.decode(w, &submitted)
	s.True(submitted.Created)
	s.Equal(int64(1), submitted.Invoice.Number)
	s.Equal("210.00", submitted.Invoice.GrandTotal)

	w = s.do(http.MethodGet, "/v1/drafts/"+draft.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestInvoiceRoutes() {
	s.login()
	inv := invoice.NewBlankInvoice(s.params.InvoiceDefaults(), time.Now())
	inv.Number = 5
	s.invoices.Seed(inv)

	w := s.do(http.MethodGet, "/v1/factures", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/factures/5", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/factures/search?numero=5", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"total":1`)

	w = s.do(http.MethodGet, "/v1/factures/search?numero=abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/factures/99", nil)
	s.Equal(http.StatusNotFound, w.Code)
	var resp ierr.ErrorResponse
	s.decode(w, &resp)
	s.Equal("Invoice 99 not found", resp.Error.Display)

	w = s.do(http.MethodGet, "/v1/factures/5/pdf", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = s.do(http.MethodPost, "/v1/factures/5/draft", nil)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *RouterSuite) TestRejectedTokenEndsSession() {
	s.login()
	s.invoices.FailOn(testutil.OpList, ierr.NewError("remote API answered 401").
		WithHint("Your session has expired, please log in again").
		Mark(ierr.ErrUnauthorized))

	w := s.do(http.MethodGet, "/v1/factures", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(s.session.IsLoggedIn())

	w = s.do(http.MethodGet, "/v1/utilisateurs", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}
