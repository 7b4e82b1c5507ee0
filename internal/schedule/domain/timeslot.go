package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound    = errors.New("delivery slot not found")
	ErrSlotUnavailable = errors.New("delivery slot unavailable")
)

// SlotDuration is the fixed length of every bookable delivery window.
const SlotDuration = 30 * time.Minute

// TimeSlot is a capacity-bounded delivery window owned by one restaurant.
// The reservation counter is guarded so that check-and-increment is a
// single step; overbooking a slot is the one race with business impact.
type TimeSlot struct {
	ID           string
	RestaurantID string
	StartTime    time.Time
	EndTime      time.Time
	MaxCapacity  int

	mu       sync.Mutex
	reserved int
}

func NewTimeSlot(restaurantID string, start, end time.Time, maxCapacity int) *TimeSlot {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &TimeSlot{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		StartTime:    start,
		EndTime:      end,
		MaxCapacity:  maxCapacity,
	}
}

func (s *TimeSlot) Reserved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved
}

// Reserve claims one unit of capacity. It fails with ErrSlotUnavailable
// when the slot is full or its start time has already passed.
func (s *TimeSlot) Reserve() error {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserved >= s.MaxCapacity || s.StartTime.Before(now) {
		return ErrSlotUnavailable
	}
	s.reserved++
	return nil
}

// TryReserve is the non-failing wrapper around Reserve.
func (s *TimeSlot) TryReserve() bool {
	return s.Reserve() == nil
}

// Release returns one unit of capacity, floored at zero.
func (s *TimeSlot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserved > 0 {
		s.reserved--
	}
}

// Available reports whether the slot can still be reserved: spare
// capacity and a start time of now or later.
func (s *TimeSlot) Available() bool {
	return s.AvailableAt(time.Now().UTC())
}

func (s *TimeSlot) AvailableAt(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserved < s.MaxCapacity && !s.StartTime.Before(now)
}
