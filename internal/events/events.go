package events

import "time"

const (
	TypeOrderPlaced  = "OrderPlaced"
	TypeSlotReserved = "SlotReserved"
)

type OrderPlaced struct {
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	RestaurantID  string    `json:"restaurant_id"`
	TotalCents    int64     `json:"total_cents"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	PlacedAt      time.Time `json:"placed_at"`
}

type SlotReserved struct {
	SlotID       string    `json:"slot_id"`
	RestaurantID string    `json:"restaurant_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Reserved     int       `json:"reserved"`
	MaxCapacity  int       `json:"max_capacity"`
}
