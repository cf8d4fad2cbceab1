package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule failures are a closed set of typed errors so callers can
// match on the type instead of the message. The message text still carries
// the stable substrings ("not found", "insufficient stock", ...) that the
// web client keys on.

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

type ItemUnavailableError struct {
	Name string
}

func (e *ItemUnavailableError) Error() string {
	return e.Name + " is no longer available"
}

type InsufficientStockError struct {
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested",
		e.Name, e.Available, e.Requested)
}

type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return "customer with email " + e.Email + " already exists"
}

type TotalMismatchError struct {
	Expected decimal.Decimal
	Provided decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("total amount mismatch: expected %s, got %s",
		e.Expected.StringFixed(2), e.Provided.StringFixed(2))
}

var ErrCartEmpty = errors.New("cart is empty")
