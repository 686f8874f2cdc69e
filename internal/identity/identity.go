package identity

import "context"

// Kind separates registered customers from anonymous shoppers doing
// guest checkouts. There is no other identity class.
type Kind string

const (
	KindGuest      Kind = "GUEST"
	KindRegistered Kind = "REGISTERED"
)

// Identity is the explicit request-scoped view of "who is shopping".
// It replaces inspection of a shared mutable auth store: components receive
// it as a value and never mutate it.
type Identity struct {
	Kind   Kind
	UserID string
	Email  string
	Name   string
	Admin  bool
}

func Guest() Identity {
	return Identity{Kind: KindGuest}
}

func (i Identity) Registered() bool {
	return i.Kind == KindRegistered
}

func (i Identity) IsAdmin() bool {
	return i.Registered() && i.Admin
}

type ctxKey string

const identityKey ctxKey = "identity"

func WithContext(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// FromCtx returns the request identity, defaulting to a guest.
func FromCtx(ctx context.Context) Identity {
	if v, ok := ctx.Value(identityKey).(Identity); ok {
		return v
	}
	return Guest()
}
