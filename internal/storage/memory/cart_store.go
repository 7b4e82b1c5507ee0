package memory

import (
	"context"
	"sync"
	"time"

	cart "github.com/campuseats/campuseats/internal/cart/domain"
)

// CartStore keeps one active cart per user. Carts are stored and
// returned as deep copies so callers cannot mutate the stored state
// without going through Save.
type CartStore struct {
	mu     sync.RWMutex
	byUser map[string]*cart.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{byUser: make(map[string]*cart.Cart)}
}

func (s *CartStore) FindActiveByUserID(_ context.Context, userID string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byUser[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c.Clone(), nil
}

func (s *CartStore) Save(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[c.UserID] = c.Clone()
	return nil
}

func (s *CartStore) Delete(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byUser[c.UserID]
	if ok && stored.ID == c.ID {
		delete(s.byUser, c.UserID)
	}
	return nil
}

// DeleteExpired sweeps carts whose inactivity window has elapsed.
func (s *CartStore) DeleteExpired(_ context.Context, ttl time.Duration) (int, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, c := range s.byUser {
		if c.ExpiredAt(now, ttl) {
			delete(s.byUser, userID)
			removed++
		}
	}
	return removed, nil
}
