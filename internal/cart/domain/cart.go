package domain

import (
	"errors"
	"time"

	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
)

var (
	ErrCartNotFound         = errors.New("no active cart for user")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartExpired          = errors.New("cart has expired")
	ErrDishUnavailable      = errors.New("dish is not available")
	ErrDishNotInCart        = errors.New("dish is not in the cart")
	ErrInvalidQuantity      = errors.New("quantity must be between 1 and 10")
	ErrCannotMixRestaurants = errors.New("cart already holds dishes from another restaurant")
)

const (
	MinQuantity = 1
	MaxQuantity = 10

	// TTL is the inactivity window after which an unordered cart expires.
	TTL = 5 * time.Minute
)

// CartItem snapshots the dish at add-time; later menu edits do not
// reach items already in a cart.
type CartItem struct {
	DishID         string
	Name           string
	Description    string
	UnitPriceCents int64
	Quantity       int
}

func (i CartItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Cart is the single in-progress order draft of one user. All dishes in
// a cart belong to one restaurant.
type Cart struct {
	ID           string
	UserID       string
	RestaurantID string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	items []CartItem
}

func NewCart(id, userID string) *Cart {
	now := time.Now().UTC()
	return &Cart{ID: id, UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// Restore rebuilds a cart from persisted state.
func Restore(id, userID, restaurantID string, items []CartItem, createdAt, updatedAt time.Time) *Cart {
	c := &Cart{
		ID:           id,
		UserID:       userID,
		RestaurantID: restaurantID,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	c.items = make([]CartItem, len(items))
	copy(c.items, items)
	return c
}

// AddDish appends a snapshot of the dish, or tops up the quantity when
// the dish is already in the cart. A validation failure leaves the cart
// unchanged.
func (c *Cart) AddDish(dish catalog.Dish, quantity int) error {
	if dish.ID == "" || !dish.Available {
		return ErrDishUnavailable
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if c.RestaurantID != "" && dish.RestaurantID != c.RestaurantID {
		return ErrCannotMixRestaurants
	}

	for i, item := range c.items {
		if item.DishID == dish.ID {
			merged := item.Quantity + quantity
			if merged > MaxQuantity {
				return ErrInvalidQuantity
			}
			c.items[i].Quantity = merged
			c.touch()
			return nil
		}
	}

	c.items = append(c.items, CartItem{
		DishID:         dish.ID,
		Name:           dish.Name,
		Description:    dish.Description,
		UnitPriceCents: dish.PriceCents,
		Quantity:       quantity,
	})
	if c.RestaurantID == "" {
		c.RestaurantID = dish.RestaurantID
	}
	c.touch()
	return nil
}

// UpdateQuantity sets the quantity of a dish already in the cart.
// A quantity of zero or less removes the line item.
func (c *Cart) UpdateQuantity(dishID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveDish(dishID)
		return nil
	}
	if quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	for i, item := range c.items {
		if item.DishID == dishID {
			c.items[i].Quantity = quantity
			c.touch()
			return nil
		}
	}
	return ErrDishNotInCart
}

// RemoveDish is idempotent; removing an absent dish is not an error.
func (c *Cart) RemoveDish(dishID string) {
	for i, item := range c.items {
		if item.DishID == dishID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.touch()
			return
		}
	}
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.items {
		total += item.SubtotalCents()
	}
	return total
}

func (c *Cart) TotalItems() int {
	var n int
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Items returns a defensive copy; mutating it does not touch the cart.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Clear() {
	c.items = nil
	c.touch()
}

// ExpiredAt reports whether the cart's inactivity window has elapsed.
func (c *Cart) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.CreatedAt) > ttl
}

func (c *Cart) Clone() *Cart {
	return Restore(c.ID, c.UserID, c.RestaurantID, c.items, c.CreatedAt, c.UpdatedAt)
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
