package memory

import (
	"context"
	"sync"

	account "github.com/campuseats/campuseats/internal/account/domain"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]*account.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*account.User)}
}

func (s *UserStore) FindByID(_ context.Context, id string) (*account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return u, nil
}

func (s *UserStore) Save(_ context.Context, u *account.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}
