package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrIncompleteAddress = errors.New("all shipping address fields are required")
	ErrPaymentNotSettled = errors.New("payment has not succeeded")
	ErrNotStarted        = errors.New("checkout has no payment intent")
)
