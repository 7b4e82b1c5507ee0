package application_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	account "github.com/campuseats/campuseats/internal/account/domain"
	cart "github.com/campuseats/campuseats/internal/cart/domain"
	catalog "github.com/campuseats/campuseats/internal/catalog/domain"
	"github.com/campuseats/campuseats/internal/events"
	"github.com/campuseats/campuseats/internal/order/application"
	order "github.com/campuseats/campuseats/internal/order/domain"
	payment "github.com/campuseats/campuseats/internal/payment/domain"
	"github.com/campuseats/campuseats/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users       *memory.UserStore
	restaurants *memory.RestaurantStore
	carts       *memory.CartStore
	orders      *memory.OrderStore
	useCase     *application.PlaceOrderUseCase

	user       *account.User
	restaurant *catalog.Restaurant
}

// deterministicPayments builds payment contexts without gateway latency
// or random declines.
func deterministicPayments(method payment.Method) (*payment.PaymentContext, error) {
	switch method {
	case payment.MethodStudentCredit:
		return payment.NewPaymentContext(method)
	case payment.MethodExternalCard:
		cfg := payment.DefaultExternalCardConfig()
		cfg.Latency = 0
		cfg.FailureRate = 0
		return payment.NewPaymentContextWith(method, payment.NewExternalCardStrategy(cfg)), nil
	default:
		return payment.NewPaymentContext(method)
	}
}

func newFixture(t *testing.T, creditCents int64) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		users:       memory.NewUserStore(),
		restaurants: memory.NewRestaurantStore(),
		carts:       memory.NewCartStore(),
		orders:      memory.NewOrderStore(),
	}

	f.user = account.NewUser("u-1", "Dana Ilves", "dana@campus.edu", creditCents)
	require.NoError(t, f.users.Save(ctx, f.user))

	f.restaurant = &catalog.Restaurant{
		ID:   "r-1",
		Name: "Campus Pizzeria",
		Menu: []catalog.Dish{
			{ID: "d-1", RestaurantID: "r-1", Name: "Pizza Margherita", PriceCents: 850, Available: true},
			{ID: "d-2", RestaurantID: "r-1", Name: "Lasagne", PriceCents: 1050, Available: true},
		},
	}
	require.NoError(t, f.restaurants.Save(ctx, f.restaurant))

	f.useCase = application.NewPlaceOrderUseCase(
		slog.Default(), f.users, f.restaurants, f.carts, f.orders, events.NopPublisher{},
	).WithPaymentFactory(deterministicPayments)

	return f
}

func (f *fixture) fillCart(t *testing.T, dishID string, quantity int) *cart.Cart {
	t.Helper()
	c := cart.NewCart("c-1", f.user.ID)
	dish, ok := f.restaurant.DishByID(dishID)
	require.True(t, ok)
	require.NoError(t, c.AddDish(dish, quantity))
	require.NoError(t, f.carts.Save(context.Background(), c))
	return c
}

func TestPlaceOrderWithStudentCredit(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	result, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1700), result.TotalCents)
	assert.Equal(t, order.StatusPaid, result.Status)
	assert.Equal(t, "Dana Ilves", result.CustomerName)
	assert.Equal(t, "Campus Pizzeria", result.RestaurantName)

	// Credit decreased by exactly the order total.
	stored, err := f.users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3300), stored.CreditCents())

	// The cart is gone.
	_, err = f.carts.FindActiveByUserID(ctx, "u-1")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	placed, err := f.orders.FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.True(t, placed.Paid)
	assert.Equal(t, int64(1700), placed.TotalCents)
}

func TestPlaceOrderWithExternalCard(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	result, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodExternalCard,
	})
	require.NoError(t, err)

	// Card payments never touch student credit and settle later.
	stored, err := f.users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), stored.CreditCents())
	assert.Equal(t, order.StatusPending, result.Status)

	placed, err := f.orders.FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.False(t, placed.Paid)
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		request application.PlaceOrderRequest
		wantErr error
	}{
		{"missing user", application.PlaceOrderRequest{PaymentMethod: payment.MethodStudentCredit}, application.ErrInvalidRequest},
		{"missing method", application.PlaceOrderRequest{UserID: "u-1"}, application.ErrInvalidRequest},
		{"unknown user", application.PlaceOrderRequest{UserID: "ghost", PaymentMethod: payment.MethodStudentCredit}, account.ErrUserNotFound},
		{"unknown method", application.PlaceOrderRequest{UserID: "u-1", PaymentMethod: "CRYPTO"}, payment.ErrUnknownMethod},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 5000)
			f.fillCart(t, "d-1", 1)

			_, err := f.useCase.Execute(context.Background(), tc.request)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPlaceOrderWithoutCart(t *testing.T) {
	f := newFixture(t, 5000)

	_, err := f.useCase.Execute(context.Background(), application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestPlaceOrderWithEmptyCart(t *testing.T) {
	f := newFixture(t, 5000)
	require.NoError(t, f.carts.Save(context.Background(), cart.NewCart("c-1", "u-1")))

	_, err := f.useCase.Execute(context.Background(), application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
}

func TestPlaceOrderWithExpiredCart(t *testing.T) {
	f := newFixture(t, 5000)
	ctx := context.Background()

	old := time.Now().UTC().Add(-6 * time.Minute)
	dish, _ := f.restaurant.DishByID("d-1")
	stale := cart.Restore("c-1", "u-1", "r-1", []cart.CartItem{{
		DishID:         dish.ID,
		Name:           dish.Name,
		UnitPriceCents: dish.PriceCents,
		Quantity:       2,
	}}, old, old)
	require.NoError(t, f.carts.Save(ctx, stale))

	_, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	assert.ErrorIs(t, err, cart.ErrCartExpired)

	// The cart is not deleted by a failed attempt.
	_, err = f.carts.FindActiveByUserID(ctx, "u-1")
	assert.NoError(t, err)
}

func TestPlaceOrderRejectsSecondActiveOrder(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	// An unsettled card order is still active for the user.
	_, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodExternalCard,
	})
	require.NoError(t, err)

	f.fillCart(t, "d-2", 1)
	_, err = f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodExternalCard,
	})
	assert.ErrorIs(t, err, order.ErrActiveOrderExists)
}

func TestPlaceOrderDishRemovedFromMenu(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	// The dish disappears from the menu after it was added to the cart.
	f.restaurant.Menu = f.restaurant.Menu[1:]
	require.NoError(t, f.restaurants.Save(ctx, f.restaurant))

	_, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	assert.ErrorIs(t, err, catalog.ErrDishNotFound)
}

func TestPlaceOrderInsufficientCreditLeavesStateIntact(t *testing.T) {
	f := newFixture(t, 1000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	_, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodStudentCredit,
	})
	assert.ErrorIs(t, err, account.ErrInsufficientCredit)

	// No order was created, the cart survived, the balance is untouched.
	_, err = f.carts.FindActiveByUserID(ctx, "u-1")
	assert.NoError(t, err)
	stored, err := f.users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored.CreditCents())
	placed, err := f.orders.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, placed)
}

func TestPlaceOrderGatewayDownKeepsCart(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	f.useCase.WithPaymentFactory(func(method payment.Method) (*payment.PaymentContext, error) {
		cfg := payment.DefaultExternalCardConfig()
		cfg.GatewayUp = false
		return payment.NewPaymentContextWith(method, payment.NewExternalCardStrategy(cfg)), nil
	})

	_, err := f.useCase.Execute(ctx, application.PlaceOrderRequest{
		UserID:        "u-1",
		PaymentMethod: payment.MethodExternalCard,
	})
	require.Error(t, err)

	var payErr *payment.Error
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, payment.FailureServiceUnavailable, payErr.Code)

	_, err = f.carts.FindActiveByUserID(ctx, "u-1")
	assert.NoError(t, err)
	placed, err := f.orders.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, placed)
}

func TestPlaceOrderConcurrentCallsCreateOneOrder(t *testing.T) {
	f := newFixture(t, 5000)
	f.fillCart(t, "d-1", 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.useCase.Execute(ctx, application.PlaceOrderRequest{
				UserID:        "u-1",
				PaymentMethod: payment.MethodStudentCredit,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	placed, err := f.orders.FindByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, placed, 1)

	// Credit was debited exactly once.
	stored, err := f.users.FindByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3300), stored.CreditCents())
}
