package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campuseats/campuseats/internal/events"
	"github.com/campuseats/campuseats/internal/schedule/domain"
)

// SlotView is the read model handed to callers; it carries no live
// reference to the underlying slot.
type SlotView struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	MaxCapacity  int       `json:"max_capacity"`
	Reserved     int       `json:"reserved"`
	Available    bool      `json:"available"`
}

func newSlotView(s *domain.TimeSlot) SlotView {
	return SlotView{
		ID:           s.ID,
		RestaurantID: s.RestaurantID,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		MaxCapacity:  s.MaxCapacity,
		Reserved:     s.Reserved(),
		Available:    s.Available(),
	}
}

// DeliveryService fronts the time-slot store for the ordering use cases.
type DeliveryService struct {
	log    *slog.Logger
	slots  TimeSlotRepository
	events events.Publisher
}

func NewDeliveryService(log *slog.Logger, slots TimeSlotRepository, publisher events.Publisher) *DeliveryService {
	return &DeliveryService{log: log, slots: slots, events: publisher}
}

func (s *DeliveryService) AvailableSlots(ctx context.Context, date time.Time) ([]SlotView, error) {
	slots, err := s.slots.FindAvailableByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, newSlotView(slot))
	}
	return views, nil
}

// ReserveSlot claims one unit of the slot's capacity and persists the
// updated counter.
func (s *DeliveryService) ReserveSlot(ctx context.Context, id string) (SlotView, error) {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return SlotView{}, err
	}
	if err := slot.Reserve(); err != nil {
		return SlotView{}, err
	}
	if err := s.slots.Update(ctx, slot); err != nil {
		slot.Release()
		return SlotView{}, err
	}

	if err := s.events.Publish(ctx, events.TypeSlotReserved, slot.ID, events.SlotReserved{
		SlotID:       slot.ID,
		RestaurantID: slot.RestaurantID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Reserved:     slot.Reserved(),
		MaxCapacity:  slot.MaxCapacity,
	}); err != nil {
		s.log.Warn("slot reserved but event not published", "slot_id", slot.ID, "err", err)
	}

	s.log.Info("slot reserved", "slot_id", slot.ID, "restaurant_id", slot.RestaurantID, "reserved", slot.Reserved())
	return newSlotView(slot), nil
}

// ReleaseSlot frees one unit of capacity. An unknown id is a no-op.
func (s *DeliveryService) ReleaseSlot(ctx context.Context, id string) error {
	slot, err := s.slots.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSlotNotFound) {
			return nil
		}
		return err
	}
	slot.Release()
	return s.slots.Update(ctx, slot)
}
