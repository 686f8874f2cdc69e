package cart

import (
	"sync"

	"teabloom-be/internal/logger"
	"teabloom-be/internal/product"

	"go.uber.org/zap"
)

// Item is one cart line: a product snapshot plus a purchase quantity.
type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the in-memory state container for what a shopper intends to buy.
// It is owned by a single session, never persisted, and keeps itself
// numerically consistent with server-reported price and stock: mutations are
// bounded by the last-known stock and Reconcile absorbs pushed product
// updates. Stock-limit violations are soft: they block the mutation and log
// a warning, they never surface as errors.
type Cart struct {
	mu    sync.Mutex
	items []*Item
}

func New() *Cart {
	return &Cart{}
}

// Add inserts a new line at quantity 1 or increments an existing one.
// It reports false when known stock is zero or the increment would exceed it.
func (c *Cart) Add(p product.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Stock <= 0 {
		logger.L().Warn("add to cart rejected: out of stock",
			zap.String("product_id", p.ID),
			zap.String("product_name", p.Name),
		)
		return false
	}

	if item := c.find(p.ID); item != nil {
		if item.Quantity+1 > p.Stock {
			logger.L().Warn("add to cart rejected: stock ceiling reached",
				zap.String("product_id", p.ID),
				zap.Int("quantity", item.Quantity),
				zap.Int("stock", p.Stock),
			)
			return false
		}
		item.Quantity++
		return true
	}

	c.items = append(c.items, &Item{Product: p, Quantity: 1})
	return true
}

// Remove deletes the line for productID; it is a no-op if absent.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// SetQuantity sets a line's quantity. A value of zero or below removes the
// line; a value above known stock is clamped down to the stock ceiling.
func (c *Cart) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.find(productID)
	if item == nil {
		return
	}

	if quantity > item.Product.Stock {
		logger.L().Warn("cart quantity clamped to stock",
			zap.String("product_id", productID),
			zap.Int("requested", quantity),
			zap.Int("stock", item.Product.Stock),
		)
		quantity = item.Product.Stock
	}

	if quantity <= 0 {
		c.remove(productID)
		return
	}

	item.Quantity = quantity
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum over lines of effective unit price times quantity.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, item := range c.items {
		total += item.Product.EffectivePrice() * float64(item.Quantity)
	}
	return total
}

// Reconcile absorbs an externally pushed product update: if a line for the
// product exists, every product field is replaced while the quantity is
// preserved. Shoppers keep their quantity even when an admin edits the
// product under them.
func (c *Cart) Reconcile(p product.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.find(p.ID); item != nil {
		item.Product = p
	}
}

// Items returns a snapshot copy of the cart lines.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) find(productID string) *Item {
	for _, item := range c.items {
		if item.Product.ID == productID {
			return item
		}
	}
	return nil
}

func (c *Cart) remove(productID string) {
	for i, item := range c.items {
		if item.Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
