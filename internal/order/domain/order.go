package domain

import (
	"errors"
	"time"

	payment "github.com/campuseats/campuseats/internal/payment/domain"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrActiveOrderExists = errors.New("user already has an active order")
	ErrInvalidTransition = errors.New("order status may only advance")
)

type OrderStatus string

const (
	StatusCreated   OrderStatus = "CREATED"
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPaid      OrderStatus = "PAID"
	StatusExpired   OrderStatus = "EXPIRED"
)

// statusRank orders the lifecycle; Advance only moves up the ranks.
var statusRank = map[OrderStatus]int{
	StatusCreated:   0,
	StatusPending:   1,
	StatusPreparing: 2,
	StatusConfirmed: 3,
	StatusPaid:      4,
	StatusExpired:   5,
}

// OrderItem is a value snapshot of the dish at order time. It holds no
// live reference to the menu, so later menu edits never rewrite history.
type OrderItem struct {
	DishID         string
	Name           string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
}

// Order is the historical record of one placed order. User and
// restaurant are captured as id + name snapshots, not live objects.
type Order struct {
	ID             string
	UserID         string
	CustomerName   string
	RestaurantID   string
	RestaurantName string
	Items          []OrderItem
	Status         OrderStatus
	TotalCents     int64
	PaymentMethod  payment.Method
	Paid           bool
	CreatedAt      time.Time
	DeliveryTime   *time.Time
}

// OrderConfig names the fields needed to construct an order.
type OrderConfig struct {
	ID             string
	UserID         string
	CustomerName   string
	RestaurantID   string
	RestaurantName string
	Items          []OrderItem
	PaymentMethod  payment.Method
	DeliveryTime   *time.Time
}

// NewOrder builds an order in the CREATED state. The total is computed
// once here and never recomputed.
func NewOrder(cfg OrderConfig) *Order {
	items := make([]OrderItem, len(cfg.Items))
	copy(items, cfg.Items)

	var total int64
	for _, item := range items {
		total += item.TotalCents
	}

	return &Order{
		ID:             cfg.ID,
		UserID:         cfg.UserID,
		CustomerName:   cfg.CustomerName,
		RestaurantID:   cfg.RestaurantID,
		RestaurantName: cfg.RestaurantName,
		Items:          items,
		Status:         StatusCreated,
		TotalCents:     total,
		PaymentMethod:  cfg.PaymentMethod,
		CreatedAt:      time.Now().UTC(),
		DeliveryTime:   cfg.DeliveryTime,
	}
}

// Advance moves the order to a later lifecycle state. Moving backwards
// or standing still is rejected.
func (o *Order) Advance(next OrderStatus) error {
	if statusRank[next] <= statusRank[o.Status] {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// MarkPaid flags the order as settled and advances it to PAID.
func (o *Order) MarkPaid() {
	o.Paid = true
	o.Status = StatusPaid
}

// Active reports whether the order still blocks the user from placing
// another one. Settled and expired orders do not.
func (o *Order) Active() bool {
	return o.Status != StatusPaid && o.Status != StatusExpired
}
