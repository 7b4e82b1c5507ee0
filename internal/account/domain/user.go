package domain

import (
	"errors"
	"sync"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientCredit = errors.New("insufficient student credit")
	ErrInvalidAmount      = errors.New("amount must be positive")
)

// User is a campus account holding a prepaid student-credit balance.
// The balance never goes negative: deduction fails closed.
type User struct {
	ID    string
	Name  string
	Email string

	mu          sync.Mutex
	creditCents int64
}

func NewUser(id, name, email string, creditCents int64) *User {
	if creditCents < 0 {
		creditCents = 0
	}
	return &User{ID: id, Name: name, Email: email, creditCents: creditCents}
}

func (u *User) CreditCents() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.creditCents
}

// DeductCredit atomically checks and debits the balance.
func (u *User) DeductCredit(amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.creditCents < amountCents {
		return ErrInsufficientCredit
	}
	u.creditCents -= amountCents
	return nil
}

func (u *User) AddCredit(amountCents int64) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.creditCents += amountCents
	return nil
}
