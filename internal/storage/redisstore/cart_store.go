package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cart "github.com/campuseats/campuseats/internal/cart/domain"
	"github.com/redis/go-redis/v9"
)

// CartStore keeps the active cart per user in redis. The cart expiry
// window maps directly onto the key TTL, so expired carts simply
// disappear instead of needing a sweep.
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartStore(rdb *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

type cartItemRecord struct {
	DishID         string `json:"dish_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type cartRecord struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	RestaurantID string           `json:"restaurant_id"`
	Items        []cartItemRecord `json:"items"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func key(userID string) string {
	return "cart:user:" + userID
}

func (s *CartStore) FindActiveByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	raw, err := s.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var rec cartRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]cart.CartItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, cart.CartItem{
			DishID:         it.DishID,
			Name:           it.Name,
			Description:    it.Description,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		})
	}
	return cart.Restore(rec.ID, rec.UserID, rec.RestaurantID, items, rec.CreatedAt, rec.UpdatedAt), nil
}

func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	rec := cartRecord{
		ID:           c.ID,
		UserID:       c.UserID,
		RestaurantID: c.RestaurantID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	for _, it := range c.Items() {
		rec.Items = append(rec.Items, cartItemRecord{
			DishID:         it.DishID,
			Name:           it.Name,
			Description:    it.Description,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
		})
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.rdb.Set(ctx, key(c.UserID), raw, s.ttl).Err()
}

func (s *CartStore) Delete(ctx context.Context, c *cart.Cart) error {
	return s.rdb.Del(ctx, key(c.UserID)).Err()
}

// DeleteExpired is satisfied by redis key TTLs; nothing to sweep.
func (s *CartStore) DeleteExpired(context.Context, time.Duration) (int, error) {
	return 0, nil
}
