package memory

import (
	"context"
	"sync"

	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
)

type RestaurantStore struct {
	mu          sync.RWMutex
	restaurants map[string]*catalog.Restaurant
}

func NewRestaurantStore() *RestaurantStore {
	return &RestaurantStore{restaurants: make(map[string]*catalog.Restaurant)}
}

func (s *RestaurantStore) FindByID(_ context.Context, id string) (*catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.restaurants[id]
	if !ok {
		return nil, catalog.ErrRestaurantNotFound
	}
	return r, nil
}

func (s *RestaurantStore) Save(_ context.Context, r *catalog.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants[r.ID] = r
	return nil
}
