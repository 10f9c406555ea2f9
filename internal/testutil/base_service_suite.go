package testutil

import (
	"context"
	"time"

	"github.com/phenixmation/payables/internal/cache"
	"github.com/phenixmation/payables/internal/config"
	"github.com/phenixmation/payables/internal/logger"
	"github.com/phenixmation/payables/internal/session"
	"github.com/phenixmation/payables/internal/types"
	"github.com/phenixmation/payables/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories used by service tests
type Stores struct {
	InvoiceRepo *InMemoryInvoiceStore
	UserRepo    *InMemoryUserStore
	AuthRepo    *InMemoryAuthRepository
	TokenStore  *InMemoryTokenStore
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
	session      *session.Session
	cache        cache.Cache
	drafts       *cache.DraftStore
	pdfGenerator *MockPDFGenerator
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelInfo
	s.logger = logger.NewNopLogger()
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		InvoiceRepo: NewInMemoryInvoiceStore(),
		UserRepo:    NewInMemoryUserStore(),
		AuthRepo:    NewInMemoryAuthRepository(),
		TokenStore:  NewInMemoryTokenStore(),
	}
	s.session = session.NewSession(s.stores.TokenStore, s.logger)
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.drafts = cache.NewDraftStore(s.config, s.logger)
	s.pdfGenerator = NewMockPDFGenerator()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.InvoiceRepo.Clear()
	s.stores.UserRepo.Clear()
	s.stores.AuthRepo.Clear()
	s.cache.Flush(s.ctx)
}

// LogIn opens the test session with token
func (s *BaseServiceTestSuite) LogIn(token string) {
	s.Require().NoError(s.session.Start(s.ctx, token))
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetSession returns the test session
func (s *BaseServiceTestSuite) GetSession() *session.Session {
	return s.session
}

// GetCache returns the cache of remote answers
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetDrafts returns the draft store
func (s *BaseServiceTestSuite) GetDrafts() *cache.DraftStore {
	return s.drafts
}

// GetPDFGenerator returns the test PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}
