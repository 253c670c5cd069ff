package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no user is logged in on the session.
	ErrUnauthenticated = errors.New("login required")
	// ErrEmptyCart means checkout or order placement was attempted with no
	// purchasable items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidLineItem means an order line had a non-positive quantity or
	// a negative unit price.
	ErrInvalidLineItem = errors.New("invalid order line")
)

// PaymentInputError reports a malformed payment field. The checkout state is
// unchanged and the user may resubmit.
type PaymentInputError struct {
	Field  string
	Reason string
}

func (e *PaymentInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a storage failure. The cart and session are left
// untouched, so retrying is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
