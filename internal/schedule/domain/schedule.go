package domain

import (
	"sync"
	"time"

	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
)

const dateLayout = "2006-01-02"

// DeliverySchedule is the per-restaurant calendar of delivery slots,
// keyed by date. Regenerating a date replaces its slots wholesale.
type DeliverySchedule struct {
	restaurantID string

	mu   sync.RWMutex
	days map[string][]*TimeSlot
}

func NewDeliverySchedule(restaurantID string) *DeliverySchedule {
	return &DeliverySchedule{
		restaurantID: restaurantID,
		days:         make(map[string][]*TimeSlot),
	}
}

func (ds *DeliverySchedule) RestaurantID() string { return ds.restaurantID }

// GenerateDailySlots partitions [opens, closes) into consecutive
// 30-minute slots. A trailing window that would end after closing time
// is discarded. Slots previously generated for the date are replaced.
func (ds *DeliverySchedule) GenerateDailySlots(date time.Time, hours catalog.OpeningHours, maxCapacity int) []*TimeSlot {
	opens := hours.Opens.On(date)
	closes := hours.Closes.On(date)

	var slots []*TimeSlot
	for start := opens; !start.Add(SlotDuration).After(closes); start = start.Add(SlotDuration) {
		slots = append(slots, NewTimeSlot(ds.restaurantID, start, start.Add(SlotDuration), maxCapacity))
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.days[date.Format(dateLayout)] = slots
	return ds.copySlots(slots)
}

// GenerateWeeklySlots generates daily slots for 7 consecutive dates
// starting at start.
func (ds *DeliverySchedule) GenerateWeeklySlots(start time.Time, hours catalog.OpeningHours, maxCapacity int) []*TimeSlot {
	var all []*TimeSlot
	for day := 0; day < 7; day++ {
		all = append(all, ds.GenerateDailySlots(start.AddDate(0, 0, day), hours, maxCapacity)...)
	}
	return all
}

// SlotsForDate returns every slot generated for the date, in order.
func (ds *DeliverySchedule) SlotsForDate(date time.Time) []*TimeSlot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.copySlots(ds.days[date.Format(dateLayout)])
}

// AvailableSlotsForDate returns only the slots that can still be booked.
func (ds *DeliverySchedule) AvailableSlotsForDate(date time.Time) []*TimeSlot {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	var available []*TimeSlot
	for _, s := range ds.days[date.Format(dateLayout)] {
		if s.Available() {
			available = append(available, s)
		}
	}
	return available
}

// FindSlotByID scans all dates for the slot.
func (ds *DeliverySchedule) FindSlotByID(id string) (*TimeSlot, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	for _, slots := range ds.days {
		for _, s := range slots {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return nil, ErrSlotNotFound
}

func (ds *DeliverySchedule) ReserveSlot(id string) error {
	slot, err := ds.FindSlotByID(id)
	if err != nil {
		return err
	}
	return slot.Reserve()
}

// ReleaseSlot is a no-op when the slot does not exist.
func (ds *DeliverySchedule) ReleaseSlot(id string) {
	slot, err := ds.FindSlotByID(id)
	if err != nil {
		return
	}
	slot.Release()
}

// CleanupPastSlots drops every date entry whose slots have all ended.
// Dates before today always qualify; today's entry is removed only once
// its last slot is over. Future dates are kept.
func (ds *DeliverySchedule) CleanupPastSlots() int {
	now := time.Now().UTC()

	ds.mu.Lock()
	defer ds.mu.Unlock()

	removed := 0
	for key, slots := range ds.days {
		ended := true
		for _, s := range slots {
			if s.EndTime.After(now) {
				ended = false
				break
			}
		}
		if ended {
			delete(ds.days, key)
			removed++
		}
	}
	return removed
}

func (ds *DeliverySchedule) copySlots(slots []*TimeSlot) []*TimeSlot {
	out := make([]*TimeSlot, len(slots))
	copy(out, slots)
	return out
}
