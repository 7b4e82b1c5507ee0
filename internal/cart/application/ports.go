package application

import (
	"context"
	"time"

	cart "github.com/campuseats/campuseats/internal/cart/domain"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
)

type CartRepository interface {
	FindActiveByUserID(ctx context.Context, userID string) (*cart.Cart, error)
	Save(ctx context.Context, c *cart.Cart) error
	Delete(ctx context.Context, c *cart.Cart) error
	// DeleteExpired removes carts older than ttl and reports how many.
	DeleteExpired(ctx context.Context, ttl time.Duration) (int, error)
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.Restaurant, error)
}
