package domain

import (
	"context"
	"math/rand"
	"time"

	account "github.com/campuseats/campuseats/internal/account/domain"
	"github.com/google/uuid"
)

// StudentCreditStrategy settles against the user's prepaid balance.
// Settlement is synchronous: a successful call has already debited the
// user.
type StudentCreditStrategy struct{}

func NewStudentCreditStrategy() *StudentCreditStrategy {
	return &StudentCreditStrategy{}
}

func (s *StudentCreditStrategy) ProcessPayment(_ context.Context, amountCents int64, user *account.User) Result {
	if amountCents <= 0 {
		return failure(FailureInvalidAmount, "amount must be positive")
	}
	if user == nil {
		return failure(FailureInvalidUser, "no user for payment")
	}
	if err := user.DeductCredit(amountCents); err != nil {
		return failure(FailureInsufficientFunds, err.Error())
	}
	return success("STU-" + uuid.NewString())
}

func (s *StudentCreditStrategy) CanPay(user *account.User, amountCents int64) bool {
	return user != nil && amountCents > 0 && user.CreditCents() >= amountCents
}

func (s *StudentCreditStrategy) Available() bool { return true }

func (s *StudentCreditStrategy) Name() string { return "student credit" }

// ExternalCardConfig carries the gateway parameters; the zero value is
// not usable, start from DefaultExternalCardConfig.
type ExternalCardConfig struct {
	MinAmountCents int64
	MaxAmountCents int64
	Latency        time.Duration
	FailureRate    float64
	GatewayUp      bool
}

func DefaultExternalCardConfig() ExternalCardConfig {
	return ExternalCardConfig{
		MinAmountCents: 100,
		MaxAmountCents: 100_000,
		Latency:        150 * time.Millisecond,
		FailureRate:    0.05,
		GatewayUp:      true,
	}
}

// ExternalCardStrategy simulates a card gateway: it enforces an amount
// band, sleeps for the configured network latency and fails a small
// fraction of attempts. It never touches student credit.
type ExternalCardStrategy struct {
	cfg ExternalCardConfig
}

func NewExternalCardStrategy(cfg ExternalCardConfig) *ExternalCardStrategy {
	return &ExternalCardStrategy{cfg: cfg}
}

func (s *ExternalCardStrategy) ProcessPayment(ctx context.Context, amountCents int64, user *account.User) Result {
	if user == nil {
		return failure(FailureInvalidUser, "no user for payment")
	}
	if !s.cfg.GatewayUp {
		return failure(FailureServiceUnavailable, "card gateway is down")
	}
	if amountCents < s.cfg.MinAmountCents {
		return failure(FailureAmountTooLow, "amount below gateway minimum")
	}
	if amountCents > s.cfg.MaxAmountCents {
		return failure(FailureAmountTooHigh, "amount above gateway maximum")
	}

	// Simulated round trip to the gateway. No locks are held here.
	if s.cfg.Latency > 0 {
		select {
		case <-time.After(s.cfg.Latency):
		case <-ctx.Done():
			return failure(FailureGateway, ctx.Err().Error())
		}
	}

	if s.cfg.FailureRate > 0 && rand.Float64() < s.cfg.FailureRate {
		return failure(FailureGateway, "card declined by gateway")
	}
	return success("EXT-" + uuid.NewString())
}

func (s *ExternalCardStrategy) CanPay(user *account.User, amountCents int64) bool {
	return user != nil &&
		s.cfg.GatewayUp &&
		amountCents >= s.cfg.MinAmountCents &&
		amountCents <= s.cfg.MaxAmountCents
}

func (s *ExternalCardStrategy) Available() bool { return s.cfg.GatewayUp }

func (s *ExternalCardStrategy) Name() string { return "external card" }
