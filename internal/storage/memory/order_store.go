package memory

import (
	"context"
	"sync"

	order "github.com/campuseats/campuseats/internal/order/domain"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	byUser map[string][]string
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*order.Order),
		byUser: make(map[string][]string),
	}
}

func (s *OrderStore) Save(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[o.ID]; !exists {
		s.byUser[o.UserID] = append(s.byUser[o.UserID], o.ID)
	}
	s.orders[o.ID] = o
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderStore) FindByUserID(_ context.Context, userID string) ([]*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byUser[userID]
	out := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.orders[id])
	}
	return out, nil
}

func (s *OrderStore) ExistsActiveByUserID(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.byUser[userID] {
		if s.orders[id].Active() {
			return true, nil
		}
	}
	return false, nil
}
