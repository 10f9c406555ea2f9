package testutil

import (
	"context"
	"sync"

	"github.com/phenixmation/payables/internal/domain/user"
)

var _ user.Repository = (*InMemoryUserStore)(nil)

// InMemoryUserStore is an in-memory implementation of the user directory
type InMemoryUserStore struct {
	mu    sync.Mutex
	users []*user.User
	err   error
	calls int
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{}
}

// Add appends users to the directory
func (r *InMemoryUserStore) Add(users ...*user.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, users...)
}

// Fail makes List return err until Clear
func (r *InMemoryUserStore) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls returns how many times List was called
func (r *InMemoryUserStore) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *InMemoryUserStore) List(ctx context.Context) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *InMemoryUserStore) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = nil
	r.err = nil
	r.calls = 0
}
