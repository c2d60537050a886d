// internal/domain/order/errors.go
package order

import "errors"

var (
	// ErrOrderNotFound is returned for lookups or advances on an
	// unknown order id
	ErrOrderNotFound = errors.New("order not found")

	// ErrTerminalState is returned when advancing an order that has
	// already reached delivered or cancelled
	ErrTerminalState = errors.New("order is in a terminal state")

	// ErrEmptyCart is returned when checkout is attempted with no items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidPaymentMethod is returned for unknown payment methods
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrNoCurrentOrder is returned when no order is being tracked
	ErrNoCurrentOrder = errors.New("no order is currently being tracked")
)
