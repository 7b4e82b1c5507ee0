package application

import (
	"context"

	account "github.com/campuseats/campuseats/internal/account/domain"
	cart "github.com/campuseats/campuseats/internal/cart/domain"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
	order "github.com/campuseats/campuseats/internal/order/domain"
	payment "github.com/campuseats/campuseats/internal/payment/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*account.User, error)
	Save(ctx context.Context, u *account.User) error
}

type RestaurantRepository interface {
	FindByID(ctx context.Context, id string) (*catalog.Restaurant, error)
}

type CartRepository interface {
	FindActiveByUserID(ctx context.Context, userID string) (*cart.Cart, error)
	Delete(ctx context.Context, c *cart.Cart) error
}

type OrderRepository interface {
	ExistsActiveByUserID(ctx context.Context, userID string) (bool, error)
	Save(ctx context.Context, o *order.Order) error
}

// PaymentContextFactory builds the payment context for the requested
// method. Production wiring uses payment.NewPaymentContext; tests swap
// in deterministic strategies.
type PaymentContextFactory func(method payment.Method) (*payment.PaymentContext, error)
