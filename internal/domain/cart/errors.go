// internal/domain/cart/errors.go
package cart

import "errors"

var (
	// ErrServiceMismatch is returned when an item's service type
	// conflicts with the cart's existing one. The caller must clear
	// the cart before ordering from a different service.
	ErrServiceMismatch = errors.New("cart holds items from a different service; clear your cart to add items from a different service")

	// ErrItemNotFound is returned for operations on an unknown line item
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrInvalidQuantity is returned when a requested quantity is not
	// a non-negative integer
	ErrInvalidQuantity = errors.New("quantity must be a non-negative integer")

	// ErrCartNotFound is returned by stores when no cart exists for
	// the session
	ErrCartNotFound = errors.New("cart not found")
)
