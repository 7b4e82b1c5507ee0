package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cart "github.com/campuseats/campuseats/internal/cart/domain"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
	"github.com/google/uuid"
)

// CartSummary is the result record returned after every cart mutation.
type CartSummary struct {
	CartID     string `json:"cart_id"`
	TotalItems int    `json:"total_items"`
	TotalCents int64  `json:"total_cents"`
}

func summarize(c *cart.Cart) CartSummary {
	return CartSummary{CartID: c.ID, TotalItems: c.TotalItems(), TotalCents: c.TotalCents()}
}

// CartService implements the cart mutation use cases. The cart itself
// enforces quantity and single-restaurant invariants; the service
// resolves dishes against the restaurant's current menu.
type CartService struct {
	log         *slog.Logger
	carts       CartRepository
	restaurants RestaurantRepository
}

func NewCartService(log *slog.Logger, carts CartRepository, restaurants RestaurantRepository) *CartService {
	return &CartService{log: log, carts: carts, restaurants: restaurants}
}

func (s *CartService) AddDish(ctx context.Context, userID, restaurantID, dishID string, quantity int) (CartSummary, error) {
	restaurant, err := s.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return CartSummary{}, err
	}
	dish, ok := restaurant.DishByID(dishID)
	if !ok {
		return CartSummary{}, fmt.Errorf("%w: %s", catalog.ErrDishNotFound, dishID)
	}

	c, err := s.carts.FindActiveByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		c = cart.NewCart(uuid.NewString(), userID)
	} else if err != nil {
		return CartSummary{}, err
	}

	if err := c.AddDish(dish, quantity); err != nil {
		return CartSummary{}, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return CartSummary{}, err
	}

	s.log.Info("dish added to cart", "cart_id", c.ID, "user_id", userID, "dish_id", dishID, "quantity", quantity)
	return summarize(c), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, dishID string, quantity int) (CartSummary, error) {
	c, err := s.carts.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	if err := c.UpdateQuantity(dishID, quantity); err != nil {
		return CartSummary{}, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return CartSummary{}, err
	}
	return summarize(c), nil
}

func (s *CartService) RemoveDish(ctx context.Context, userID, dishID string) (CartSummary, error) {
	c, err := s.carts.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}
	c.RemoveDish(dishID)
	if err := s.carts.Save(ctx, c); err != nil {
		return CartSummary{}, err
	}
	return summarize(c), nil
}

func (s *CartService) ViewCart(ctx context.Context, userID string) (*cart.Cart, error) {
	return s.carts.FindActiveByUserID(ctx, userID)
}

// ClearCart drops the user's active cart entirely.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	c, err := s.carts.FindActiveByUserID(ctx, userID)
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.carts.Delete(ctx, c)
}
