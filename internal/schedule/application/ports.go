package application

import (
	"context"
	"time"

	"github.com/campuseats/campuseats/internal/schedule/domain"
)

type TimeSlotRepository interface {
	FindAvailableByDate(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*domain.TimeSlot, error)
	Save(ctx context.Context, slot *domain.TimeSlot) error
	Update(ctx context.Context, slot *domain.TimeSlot) error
}
