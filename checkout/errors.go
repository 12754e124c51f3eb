package checkout

import "errors"

var (
	// ErrEmptyCart rejects a checkout submission before any side effects.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrMissingReference marks a cart line whose product vanished from the
	// catalog between add and checkout. It fails the line, not the order.
	ErrMissingReference = errors.New("cart line references a product that no longer exists")

	// ErrInsufficientStock fails the whole order under the reject_order policy.
	ErrInsufficientStock = errors.New("insufficient stock")
)
