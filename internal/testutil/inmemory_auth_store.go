package testutil

import (
	"context"
	"sync"

	"github.com/phenixmation/payables/internal/domain/auth"
	ierr "github.com/phenixmation/payables/internal/errors"
	"github.com/phenixmation/payables/internal/session"
)

var (
	_ auth.Repository    = (*InMemoryAuthRepository)(nil)
	_ session.TokenStore = (*InMemoryTokenStore)(nil)
)

// InMemoryAuthRepository issues a fixed token per registered account
type InMemoryAuthRepository struct {
	mu       sync.Mutex
	accounts map[string]account
	err      error
}

type account struct {
	password string
	token    string
}

func NewInMemoryAuthRepository() *InMemoryAuthRepository {
	return &InMemoryAuthRepository{
		accounts: make(map[string]account),
	}
}

// Register makes Login return token for email and password
func (r *InMemoryAuthRepository) Register(email, password, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[email] = account{password: password, token: token}
}

// Fail makes Login return err until Clear
func (r *InMemoryAuthRepository) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *InMemoryAuthRepository) Login(ctx context.Context, creds auth.Credentials) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return "", r.err
	}
	acc, ok := r.accounts[creds.Email]
	if !ok || acc.password != creds.Password {
		return "", ierr.NewError("login rejected").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}
	return acc.token, nil
}

func (r *InMemoryAuthRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]account)
	r.err = nil
}

// InMemoryTokenStore keeps the session token in memory instead of a file
type InMemoryTokenStore struct {
	mu    sync.Mutex
	token string
	err   error
}

func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{}
}

// FailSave makes Save return err
func (s *InMemoryTokenStore) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *InMemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *InMemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.token = token
	return nil
}

func (s *InMemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// Stored returns the persisted token
func (s *InMemoryTokenStore) Stored() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
