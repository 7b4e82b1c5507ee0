package domain

import (
	"context"
	"errors"
	"fmt"

	account "github.com/campuseats/campuseats/internal/account/domain"
)

var ErrUnknownMethod = errors.New("unknown payment method")

type Method string

const (
	MethodStudentCredit Method = "STUDENT_CREDIT"
	MethodExternalCard  Method = "EXTERNAL_CARD"
)

type FailureCode string

const (
	FailureInvalidAmount      FailureCode = "INVALID_AMOUNT"
	FailureInvalidUser        FailureCode = "INVALID_USER"
	FailureInsufficientFunds  FailureCode = "INSUFFICIENT_FUNDS"
	FailureAmountTooLow       FailureCode = "AMOUNT_TOO_LOW"
	FailureAmountTooHigh      FailureCode = "AMOUNT_TOO_HIGH"
	FailureServiceUnavailable FailureCode = "SERVICE_UNAVAILABLE"
	FailureGateway            FailureCode = "GATEWAY_ERROR"
)

// Result reports the outcome of one payment attempt.
type Result struct {
	Success       bool
	TransactionID string
	Code          FailureCode
	Message       string
}

func success(transactionID string) Result {
	return Result{Success: true, TransactionID: transactionID}
}

func failure(code FailureCode, message string) Result {
	return Result{Code: code, Message: message}
}

// Err converts a failed result into a typed error; nil for successes.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Code: r.Code, Message: r.Message}
}

// Error is the typed failure raised by payment strategies, carrying the
// machine-readable code callers branch on.
type Error struct {
	Code    FailureCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment failed (%s): %s", e.Code, e.Message)
}

// Strategy is an interchangeable algorithm for authorizing and settling
// the payment of an order total.
type Strategy interface {
	ProcessPayment(ctx context.Context, amountCents int64, user *account.User) Result
	CanPay(user *account.User, amountCents int64) bool
	Available() bool
	Name() string
}
