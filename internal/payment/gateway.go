package payment

import "context"

// Intent is the processor's handle for an in-progress charge attempt. The
// client secret drives the hosted payment widget on the storefront.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Succeeded reports whether the charge completed.
func (i *Intent) Succeeded() bool {
	return i.Status == "succeeded"
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
}
