package session

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/phenixmation/payables/internal/auth"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/logger"
	"go.uber.org/fx"
)

// Session is the authentication state of the single user of this process.
// It is created once, loaded at startup and cleared on logout or when the
// invoice API rejects the token.
type Session struct {
	mu     sync.RWMutex
	token  string
	store  TokenStore
	logger *logger.Logger
	now    func() time.Time
}

// NewSession creates an empty session. Call Init to load a persisted token.
func NewSession(store TokenStore, logger *logger.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Module provides the session and loads it when the application starts
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(NewFileTokenStore, fx.As(new(TokenStore))),
			NewSession,
		),
		fx.Invoke(RegisterHooks),
	)
}

// RegisterHooks loads the persisted session on start
func RegisterHooks(lc fx.Lifecycle, s *Session) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Init(ctx)
		},
	})
}

// Init loads the token from the environment or, failing that, from the
// store. A JWT whose expiry has passed is discarded.
func (s *Session) Init(ctx context.Context) error {
	token := os.Getenv(EnvToken)
	source := "env"
	if token == "" {
		var err error
		token, err = s.store.Load()
		if err != nil {
			return err
		}
		source = "file"
	}

	if token == "" {
		s.logger.Infow("no saved session")
		return nil
	}

	if auth.IsExpired(token, s.now()) {
		s.logger.Infow("saved session expired, logging out", "source", source)
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.logger.Infow("session restored", "source", source)
	return nil
}

// Start opens a session with a freshly issued token. Failing to persist the
// token is logged and the session still starts for this run.
func (s *Session) Start(ctx context.Context, token string) error {
	if token == "" {
		return ierr.NewError("empty session token").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		s.logger.Warnw("could not persist session token", "error", err)
	}
	s.logger.Infow("logged in")
	return nil
}

// Logout drops the token from memory and from the store
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Warnw("could not remove persisted session token", "error", err)
		return err
	}
	return nil
}

// Token returns the current bearer token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsLoggedIn reports whether a token is held
func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}

// HandleAuthError logs the user out when err says the invoice API rejected
// the token, then returns err unchanged. The session is cleared before the
// caller gets the error back. A rejection of a token that has since been
// replaced by a new login leaves the new session alone.
func (s *Session) HandleAuthError(ctx context.Context, err error) error {
	if err == nil || !ierr.IsUnauthorized(err) {
		return err
	}

	s.mu.Lock()
	current := s.token
	if rejected, ok := auth.RejectedToken(err); ok && current != "" && rejected != current {
		s.mu.Unlock()
		s.logger.Infow("ignoring rejection of a replaced session token")
		return err
	}
	s.token = ""
	s.mu.Unlock()

	if current != "" {
		s.logger.Warnw("session rejected by invoice API, logging out", "error", err)
	}
	if clearErr := s.store.Clear(); clearErr != nil {
		s.logger.Warnw("could not remove persisted session token", "error", clearErr)
	}
	return err
}
