package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"teabloom-be/internal/cart"
	"teabloom-be/internal/logger"
	"teabloom-be/internal/product"
	"teabloom-be/internal/recordstore"
)

// Reconciler pushes realtime product changes into every open cart, so a
// shopper's lines track server-side price and stock instead of going stale.
type Reconciler struct {
	manager *Manager
}

func NewReconciler(manager *Manager) *Reconciler {
	return &Reconciler{manager: manager}
}

// Run applies events from the hub until the channel closes.
func (r *Reconciler) Run(ctx context.Context, events <-chan recordstore.Event) {
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			r.Apply(evt)
		case <-ctx.Done():
			return
		}
	}
}

// Apply reconciles one pushed change event into all live carts. Updates
// replace the product snapshot on matching lines; a deleted product is
// dropped from carts since it can no longer be purchased.
func (r *Reconciler) Apply(evt recordstore.Event) {
	var p product.Product
	if err := json.Unmarshal(evt.Record, &p); err != nil {
		logger.L().Warn("cart reconcile event with undecodable record",
			zap.String("action", string(evt.Action)),
			zap.Error(err),
		)
		return
	}
	if p.ID == "" {
		return
	}

	switch evt.Action {
	case recordstore.ActionCreate, recordstore.ActionUpdate:
		r.manager.ForEachCart(func(c *cart.Cart) {
			c.Reconcile(p)
		})

	case recordstore.ActionDelete:
		r.manager.ForEachCart(func(c *cart.Cart) {
			c.Remove(p.ID)
		})
	}
}
