package memory

import (
	"context"
	"sync"
	"time"

	schedule "github.com/campuseats/campuseats/internal/schedule/domain"
)

const dateLayout = "2006-01-02"

// SlotStore indexes delivery slots by id and by date. Slots are shared
// pointers: the reservation counter lives on the slot itself and is
// already guarded there.
type SlotStore struct {
	mu     sync.RWMutex
	byID   map[string]*schedule.TimeSlot
	byDate map[string][]string
}

func NewSlotStore() *SlotStore {
	return &SlotStore{
		byID:   make(map[string]*schedule.TimeSlot),
		byDate: make(map[string][]string),
	}
}

func (s *SlotStore) Save(_ context.Context, slot *schedule.TimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[slot.ID]; !exists {
		key := slot.StartTime.Format(dateLayout)
		s.byDate[key] = append(s.byDate[key], slot.ID)
	}
	s.byID[slot.ID] = slot
	return nil
}

func (s *SlotStore) Update(_ context.Context, slot *schedule.TimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[slot.ID]; !exists {
		return schedule.ErrSlotNotFound
	}
	s.byID[slot.ID] = slot
	return nil
}

func (s *SlotStore) FindByID(_ context.Context, id string) (*schedule.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.byID[id]
	if !ok {
		return nil, schedule.ErrSlotNotFound
	}
	return slot, nil
}

func (s *SlotStore) FindAvailableByDate(_ context.Context, date time.Time) ([]*schedule.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*schedule.TimeSlot
	for _, id := range s.byDate[date.Format(dateLayout)] {
		if slot := s.byID[id]; slot.Available() {
			out = append(out, slot)
		}
	}
	return out, nil
}
