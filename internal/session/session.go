package session

import (
	"teabloom-be/internal/cart"
	"teabloom-be/internal/checkout"
	"teabloom-be/internal/identity"
)

// Session is one browser session: its identity, its in-memory cart and any
// in-flight checkout. Nothing here is persisted; an evicted session silently
// discards its cart and any checkout attempt along with it.
type Session struct {
	ID       string
	Identity identity.Identity
	Cart     *cart.Cart
	Checkout *checkout.Checkout
}
