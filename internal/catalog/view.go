package catalog

import (
	"context"
	"encoding/json"
	"sync"

	"teabloom-be/internal/logger"
	"teabloom-be/internal/product"
	"teabloom-be/internal/recordstore"

	"go.uber.org/zap"
)

// Lister is the fetch side of the product service.
type Lister interface {
	ListVisible(ctx context.Context) ([]product.Product, error)
}

// View is the visibility-filtered materialized view of the catalog, kept in
// sync by the realtime push feed. One consistency rule set applies:
// creates append only visible in-stock products, updates upsert or evict
// based on recomputed visibility, deletes evict unconditionally.
type View struct {
	lister Lister

	mu       sync.RWMutex
	products []product.Product
}

func NewView(lister Lister) *View {
	return &View{lister: lister}
}

// Load replaces the view contents with a fresh fetch.
func (v *View) Load(ctx context.Context) error {
	products, err := v.lister.ListVisible(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.products = products
	v.mu.Unlock()

	return nil
}

// Run applies events from the hub until the channel closes.
func (v *View) Run(ctx context.Context, events <-chan recordstore.Event) {
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return
			}
			v.Apply(evt)
		case <-ctx.Done():
			return
		}
	}
}

// Apply reconciles one pushed change event into the view.
func (v *View) Apply(evt recordstore.Event) {
	var p product.Product
	if err := json.Unmarshal(evt.Record, &p); err != nil {
		logger.L().Warn("catalog event with undecodable record",
			zap.String("action", string(evt.Action)),
			zap.Error(err),
		)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch evt.Action {
	case recordstore.ActionCreate:
		if p.InStock && p.Visible() {
			v.products = append(v.products, p)
		}

	case recordstore.ActionUpdate:
		if p.Visible() {
			v.upsert(p)
		} else {
			v.remove(p.ID)
		}

	case recordstore.ActionDelete:
		v.remove(p.ID)
	}
}

// Products returns a snapshot copy of the visible catalog.
func (v *View) Products() []product.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]product.Product, len(v.products))
	copy(out, v.products)
	return out
}

// Contains reports whether a product id is currently visible.
func (v *View) Contains(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, p := range v.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.products)
}

// upsert replaces an existing entry in place, otherwise prepends: a product
// newly turned visible shows up at the front until the next full load.
func (v *View) upsert(p product.Product) {
	for i := range v.products {
		if v.products[i].ID == p.ID {
			v.products[i] = p
			return
		}
	}
	v.products = append([]product.Product{p}, v.products...)
}

func (v *View) remove(id string) {
	for i := range v.products {
		if v.products[i].ID == id {
			v.products = append(v.products[:i], v.products[i+1:]...)
			return
		}
	}
}
