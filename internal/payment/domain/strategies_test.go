package domain

import (
	"context"
	"strings"
	"testing"

	account "github.com/campuseats/campuseats/internal/account/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCreditStrategyProcessPayment(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		user     *account.User
		wantCode FailureCode
	}{
		{"success", 1700, account.NewUser("u-1", "Dana", "dana@campus.edu", 5000), ""},
		{"zero amount", 0, account.NewUser("u-1", "Dana", "dana@campus.edu", 5000), FailureInvalidAmount},
		{"negative amount", -100, account.NewUser("u-1", "Dana", "dana@campus.edu", 5000), FailureInvalidAmount},
		{"nil user", 1700, nil, FailureInvalidUser},
		{"insufficient funds", 1700, account.NewUser("u-1", "Dana", "dana@campus.edu", 1000), FailureInsufficientFunds},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStudentCreditStrategy()
			result := s.ProcessPayment(context.Background(), tc.amount, tc.user)

			if tc.wantCode != "" {
				assert.False(t, result.Success)
				assert.Equal(t, tc.wantCode, result.Code)
				assert.Error(t, result.Err())
				return
			}
			require.True(t, result.Success)
			assert.True(t, strings.HasPrefix(result.TransactionID, "STU-"))
			assert.NoError(t, result.Err())
		})
	}
}

func TestStudentCreditStrategyDeductsExactly(t *testing.T) {
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 5000)
	s := NewStudentCreditStrategy()

	result := s.ProcessPayment(context.Background(), 1700, user)
	require.True(t, result.Success)
	assert.Equal(t, int64(3300), user.CreditCents())
}

func TestStudentCreditStrategyFailureLeavesBalance(t *testing.T) {
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 1000)
	s := NewStudentCreditStrategy()

	result := s.ProcessPayment(context.Background(), 1700, user)
	require.False(t, result.Success)
	assert.Equal(t, int64(1000), user.CreditCents())
}

func TestStudentCreditStrategyCanPay(t *testing.T) {
	s := NewStudentCreditStrategy()
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 1000)

	assert.True(t, s.CanPay(user, 1000))
	assert.False(t, s.CanPay(user, 1001))
	assert.False(t, s.CanPay(user, 0))
	assert.False(t, s.CanPay(nil, 100))
}

func deterministicCard(up bool, failureRate float64) *ExternalCardStrategy {
	cfg := DefaultExternalCardConfig()
	cfg.Latency = 0
	cfg.FailureRate = failureRate
	cfg.GatewayUp = up
	return NewExternalCardStrategy(cfg)
}

func TestExternalCardStrategyProcessPayment(t *testing.T) {
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 0)

	tests := []struct {
		name     string
		strategy *ExternalCardStrategy
		amount   int64
		wantCode FailureCode
	}{
		{"success", deterministicCard(true, 0), 1700, ""},
		{"below minimum", deterministicCard(true, 0), 99, FailureAmountTooLow},
		{"above maximum", deterministicCard(true, 0), 100_001, FailureAmountTooHigh},
		{"gateway down", deterministicCard(false, 0), 1700, FailureServiceUnavailable},
		{"gateway declines", deterministicCard(true, 1), 1700, FailureGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.strategy.ProcessPayment(context.Background(), tc.amount, user)

			if tc.wantCode != "" {
				assert.False(t, result.Success)
				assert.Equal(t, tc.wantCode, result.Code)
				return
			}
			require.True(t, result.Success)
			assert.True(t, strings.HasPrefix(result.TransactionID, "EXT-"))
		})
	}
}

func TestExternalCardStrategyNeverTouchesCredit(t *testing.T) {
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 5000)

	result := deterministicCard(true, 0).ProcessPayment(context.Background(), 1700, user)
	require.True(t, result.Success)
	assert.Equal(t, int64(5000), user.CreditCents())
}

func TestExternalCardStrategyCanPay(t *testing.T) {
	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 0)

	up := deterministicCard(true, 0)
	assert.True(t, up.CanPay(user, 1700))
	assert.False(t, up.CanPay(user, 99))
	assert.False(t, up.CanPay(nil, 1700))

	down := deterministicCard(false, 0)
	assert.False(t, down.CanPay(user, 1700))
	assert.False(t, down.Available())
}

func TestPaymentContextSelectsStrategy(t *testing.T) {
	student, err := NewPaymentContext(MethodStudentCredit)
	require.NoError(t, err)
	assert.Equal(t, "student credit", student.StrategyName())

	card, err := NewPaymentContext(MethodExternalCard)
	require.NoError(t, err)
	assert.Equal(t, "external card", card.StrategyName())

	_, err = NewPaymentContext(Method("CRYPTO"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestPaymentContextSwitchesStrategyAtRuntime(t *testing.T) {
	ctx, err := NewPaymentContext(MethodStudentCredit)
	require.NoError(t, err)

	ctx.SetStrategy(MethodExternalCard, deterministicCard(true, 0))
	assert.Equal(t, MethodExternalCard, ctx.Method())

	user := account.NewUser("u-1", "Dana", "dana@campus.edu", 5000)
	result := ctx.ExecutePayment(context.Background(), 1700, user)
	require.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.TransactionID, "EXT-"))
	assert.Equal(t, int64(5000), user.CreditCents())
}

func TestPaymentContextCanUserPayDelegates(t *testing.T) {
	ctx, err := NewPaymentContext(MethodStudentCredit)
	require.NoError(t, err)

	rich := account.NewUser("u-1", "Dana", "dana@campus.edu", 5000)
	broke := account.NewUser("u-2", "Ilya", "ilya@campus.edu", 100)

	assert.True(t, ctx.CanUserPay(rich, 1700))
	assert.False(t, ctx.CanUserPay(broke, 1700))
}
