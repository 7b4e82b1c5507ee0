package domain

import (
	"context"
	"fmt"

	account "github.com/campuseats/campuseats/internal/account/domain"
)

// PaymentContext holds the strategy selected for one payment and
// delegates execution to it. The strategy can be swapped at runtime.
type PaymentContext struct {
	method   Method
	strategy Strategy
}

// NewPaymentContext selects the strategy for the requested method.
func NewPaymentContext(method Method) (*PaymentContext, error) {
	switch method {
	case MethodStudentCredit:
		return &PaymentContext{method: method, strategy: NewStudentCreditStrategy()}, nil
	case MethodExternalCard:
		return &PaymentContext{method: method, strategy: NewExternalCardStrategy(DefaultExternalCardConfig())}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// NewPaymentContextWith wires an explicit strategy, bypassing the
// default construction for the method.
func NewPaymentContextWith(method Method, strategy Strategy) *PaymentContext {
	return &PaymentContext{method: method, strategy: strategy}
}

func (c *PaymentContext) SetStrategy(method Method, strategy Strategy) {
	c.method = method
	c.strategy = strategy
}

func (c *PaymentContext) Method() Method { return c.method }

func (c *PaymentContext) StrategyName() string { return c.strategy.Name() }

func (c *PaymentContext) ExecutePayment(ctx context.Context, amountCents int64, user *account.User) Result {
	return c.strategy.ProcessPayment(ctx, amountCents, user)
}

func (c *PaymentContext) CanUserPay(user *account.User, amountCents int64) bool {
	return c.strategy.CanPay(user, amountCents)
}
