package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	account "github.com/campuseats/campuseats/internal/account/domain"
	cart "github.com/campuseats/campuseats/internal/cart/domain"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
	"github.com/campuseats/campuseats/internal/events"
	order "github.com/campuseats/campuseats/internal/order/domain"
	payment "github.com/campuseats/campuseats/internal/payment/domain"
	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid place-order request")

type PlaceOrderRequest struct {
	UserID        string
	PaymentMethod payment.Method
	DeliveryTime  *time.Time
}

// PlaceOrderResult is the immutable record returned to the caller.
type PlaceOrderResult struct {
	OrderID        string            `json:"order_id"`
	CustomerName   string            `json:"customer_name"`
	RestaurantName string            `json:"restaurant_name"`
	TotalCents     int64             `json:"total_cents"`
	Status         order.OrderStatus `json:"status"`
	PaymentMethod  payment.Method    `json:"payment_method"`
	CreatedAt      time.Time         `json:"created_at"`
	DeliveryTime   *time.Time        `json:"delivery_time,omitempty"`
}

// PlaceOrderUseCase turns the user's active cart into an order:
// validate, pay, persist, then delete the cart. Payment runs strictly
// before order persistence, so a failed payment leaves the cart intact
// and creates no order.
type PlaceOrderUseCase struct {
	log         *slog.Logger
	users       UserRepository
	restaurants RestaurantRepository
	carts       CartRepository
	orders      OrderRepository
	publisher   events.Publisher
	payments    PaymentContextFactory
	cartTTL     time.Duration

	locks *userLocks
}

func NewPlaceOrderUseCase(
	log *slog.Logger,
	users UserRepository,
	restaurants RestaurantRepository,
	carts CartRepository,
	orders OrderRepository,
	publisher events.Publisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		log:         log,
		users:       users,
		restaurants: restaurants,
		carts:       carts,
		orders:      orders,
		publisher:   publisher,
		payments:    payment.NewPaymentContext,
		cartTTL:     cart.TTL,
		locks:       newUserLocks(),
	}
}

// WithPaymentFactory swaps the payment context construction; used to
// inject deterministic gateway behavior.
func (uc *PlaceOrderUseCase) WithPaymentFactory(f PaymentContextFactory) *PlaceOrderUseCase {
	uc.payments = f
	return uc
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (PlaceOrderResult, error) {
	if req.UserID == "" || req.PaymentMethod == "" {
		return PlaceOrderResult{}, ErrInvalidRequest
	}

	// Serialize the whole workflow per user so two concurrent calls
	// cannot both pass the active-order check.
	lock := uc.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	active, err := uc.orders.ExistsActiveByUserID(ctx, req.UserID)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if active {
		return PlaceOrderResult{}, order.ErrActiveOrderExists
	}

	user, err := uc.users.FindByID(ctx, req.UserID)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	userCart, err := uc.carts.FindActiveByUserID(ctx, req.UserID)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if userCart.IsEmpty() {
		return PlaceOrderResult{}, cart.ErrCartEmpty
	}
	if userCart.ExpiredAt(time.Now().UTC(), uc.cartTTL) {
		return PlaceOrderResult{}, cart.ErrCartExpired
	}

	restaurant, err := uc.restaurants.FindByID(ctx, userCart.RestaurantID)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	items, err := buildOrderItems(userCart, restaurant)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	payCtx, err := uc.payments(req.PaymentMethod)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	total := userCart.TotalCents()
	if !payCtx.CanUserPay(user, total) {
		if req.PaymentMethod == payment.MethodStudentCredit {
			return PlaceOrderResult{}, account.ErrInsufficientCredit
		}
		return PlaceOrderResult{}, (&payment.Error{
			Code:    payment.FailureServiceUnavailable,
			Message: "payment method cannot cover this order",
		})
	}

	result := payCtx.ExecutePayment(ctx, total, user)
	if err := result.Err(); err != nil {
		uc.log.Warn("payment rejected", "user_id", req.UserID, "method", req.PaymentMethod, "err", err)
		return PlaceOrderResult{}, err
	}

	// Student credit settles synchronously; persist the debited balance.
	if req.PaymentMethod == payment.MethodStudentCredit {
		if err := uc.users.Save(ctx, user); err != nil {
			return PlaceOrderResult{}, err
		}
	}

	o := order.NewOrder(order.OrderConfig{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		CustomerName:   user.Name,
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		Items:          items,
		PaymentMethod:  req.PaymentMethod,
		DeliveryTime:   req.DeliveryTime,
	})
	if req.PaymentMethod == payment.MethodStudentCredit {
		o.MarkPaid()
	} else {
		_ = o.Advance(order.StatusPending)
	}

	if err := uc.orders.Save(ctx, o); err != nil {
		return PlaceOrderResult{}, err
	}
	if err := uc.carts.Delete(ctx, userCart); err != nil {
		return PlaceOrderResult{}, err
	}

	if err := uc.publisher.Publish(ctx, events.TypeOrderPlaced, o.ID, events.OrderPlaced{
		OrderID:       o.ID,
		UserID:        o.UserID,
		RestaurantID:  o.RestaurantID,
		TotalCents:    o.TotalCents,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		PlacedAt:      o.CreatedAt,
	}); err != nil {
		uc.log.Warn("order placed but event not published", "order_id", o.ID, "err", err)
	}

	uc.log.Info("order placed",
		"order_id", o.ID,
		"user_id", o.UserID,
		"restaurant_id", o.RestaurantID,
		"total_cents", o.TotalCents,
		"method", o.PaymentMethod,
		"transaction_id", result.TransactionID,
	)

	return PlaceOrderResult{
		OrderID:        o.ID,
		CustomerName:   o.CustomerName,
		RestaurantName: o.RestaurantName,
		TotalCents:     o.TotalCents,
		Status:         o.Status,
		PaymentMethod:  o.PaymentMethod,
		CreatedAt:      o.CreatedAt,
		DeliveryTime:   o.DeliveryTime,
	}, nil
}

// buildOrderItems resolves every cart line against the restaurant's
// current menu; a dish removed from the menu since it was added fails
// the whole order.
func buildOrderItems(c *cart.Cart, restaurant *catalog.Restaurant) ([]order.OrderItem, error) {
	cartItems := c.Items()
	items := make([]order.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		if _, ok := restaurant.DishByID(item.DishID); !ok {
			return nil, fmt.Errorf("%w: %s no longer on the menu", catalog.ErrDishNotFound, item.Name)
		}
		items = append(items, order.OrderItem{
			DishID:         item.DishID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.SubtotalCents(),
		})
	}
	return items, nil
}
