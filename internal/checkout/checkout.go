package checkout

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"teabloom-be/internal/cart"
	"teabloom-be/internal/logger"
	"teabloom-be/internal/mailer"
	"teabloom-be/internal/order"
	"teabloom-be/internal/payment"
)

const (
	shippingFee    = 5.00
	freeShippingAt = 50.00
	currency       = "usd"
)

// ShippingFee returns the flat delivery charge for a cart subtotal.
// Orders at or above the free-shipping threshold ship for nothing.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= freeShippingAt {
		return 0
	}
	return shippingFee
}

// GrandTotal is the amount the customer is actually charged.
func GrandTotal(subtotal float64) float64 {
	return subtotal + ShippingFee(subtotal)
}

// Checkout is a payment attempt in flight. It freezes the cart contents
// and prices at the moment it was begun; later cart edits do not affect it.
type Checkout struct {
	Customer     order.Customer
	Address      order.ShippingAddress
	Items        []cart.Item
	Subtotal     float64
	Fee          float64
	Total        float64
	IntentID     string
	ClientSecret string

	cart *cart.Cart
}

// LineFailure records one product-level write that did not land during
// finalization. The order itself may still exist.
type LineFailure struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
}

// FinalizeResult reports what actually happened after a settled payment.
// Each write phase is attempted independently; a failure in one never
// rolls back another, because the customer has already been charged.
type FinalizeResult struct {
	Order         *order.Order  `json:"order,omitempty"`
	OrderError    string        `json:"orderError,omitempty"`
	ItemFailures  []LineFailure `json:"itemFailures,omitempty"`
	StockFailures []LineFailure `json:"stockFailures,omitempty"`
}

func (r *FinalizeResult) Clean() bool {
	return r.OrderError == "" && len(r.ItemFailures) == 0 && len(r.StockFailures) == 0
}

// Orders is the slice of the order repository checkout writes through.
type Orders interface {
	CreateOrder(ctx context.Context, in order.NewOrder) (*order.Order, error)
	CreateItem(ctx context.Context, in order.NewItem) (*order.Item, error)
}

// Stock adjusts product inventory after a sale.
type Stock interface {
	DecrementStock(ctx context.Context, productID string, qty int) (int, error)
}

// Sender delivers the confirmation email. Delivery is best-effort.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, conf mailer.OrderConfirmation) error
}

type Service interface {
	Begin(ctx context.Context, customer order.Customer, c *cart.Cart, addr order.ShippingAddress) (*Checkout, error)
	Finalize(ctx context.Context, chk *Checkout) (*FinalizeResult, error)
}

type service struct {
	orders  Orders
	stock   Stock
	gateway payment.Gateway
	mail    Sender
}

func NewService(orders Orders, stock Stock, gateway payment.Gateway, mail Sender) Service {
	return &service{
		orders:  orders,
		stock:   stock,
		gateway: gateway,
		mail:    mail,
	}
}

func (s *service) Begin(ctx context.Context, customer order.Customer, c *cart.Cart, addr order.ShippingAddress) (*Checkout, error) {
	if addr.Name == "" || addr.Email == "" || addr.Street == "" ||
		addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		return nil, ErrIncompleteAddress
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := c.TotalPrice()
	fee := ShippingFee(subtotal)
	total := subtotal + fee

	intent, err := s.gateway.CreateIntent(ctx, toCents(total), currency)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("checkout started",
		zap.String("intent_id", intent.ID),
		zap.Float64("subtotal", subtotal),
		zap.Float64("shipping_fee", fee),
		zap.Float64("total", total),
	)

	return &Checkout{
		Customer:     customer,
		Address:      addr,
		Items:        items,
		Subtotal:     subtotal,
		Fee:          fee,
		Total:        total,
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		cart:         c,
	}, nil
}

// Finalize verifies the payment settled, then records the order, its
// lines and the stock adjustments. The three write phases run
// independently: a failed order insert does not stop stock from being
// decremented, since the goods are sold either way.
func (s *service) Finalize(ctx context.Context, chk *Checkout) (*FinalizeResult, error) {
	if chk == nil || chk.IntentID == "" {
		return nil, ErrNotStarted
	}

	intent, err := s.gateway.GetIntent(ctx, chk.IntentID)
	if err != nil {
		return nil, err
	}
	if !intent.Succeeded() {
		logger.FromCtx(ctx).Warn("finalize attempted before payment settled",
			zap.String("intent_id", chk.IntentID),
			zap.String("intent_status", intent.Status),
		)
		return nil, ErrPaymentNotSettled
	}

	result := &FinalizeResult{}

	ord, err := s.orders.CreateOrder(ctx, order.NewOrder{
		Total:    chk.Total,
		Shipping: chk.Address,
		Customer: chk.Customer,
	})
	if err != nil {
		logger.FromCtx(ctx).Error("order record creation failed",
			zap.String("intent_id", chk.IntentID),
			zap.Error(err),
		)
		result.OrderError = err.Error()
	} else {
		result.Order = ord
		result.ItemFailures = s.writeItems(ctx, ord.ID, chk.Items)
	}

	result.StockFailures = s.decrementStock(ctx, chk.Items)

	chk.cart.Clear()

	if s.mail != nil && result.Order != nil {
		s.sendConfirmation(ctx, chk, result.Order)
	}

	return result, nil
}

func (s *service) writeItems(ctx context.Context, orderID string, items []cart.Item) []LineFailure {
	var (
		mu       sync.Mutex
		failures []LineFailure
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		go func(item cart.Item) {
			defer wg.Done()

			_, err := s.orders.CreateItem(ctx, order.NewItem{
				OrderID:     orderID,
				ProductID:   item.Product.ID,
				ProductName: item.Product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   item.Product.EffectivePrice(),
			})
			if err != nil {
				mu.Lock()
				failures = append(failures, LineFailure{
					ProductID: item.Product.ID,
					Name:      item.Product.Name,
					Reason:    err.Error(),
				})
				mu.Unlock()
			}
		}(item)
	}

	wg.Wait()
	return failures
}

func (s *service) decrementStock(ctx context.Context, items []cart.Item) []LineFailure {
	var (
		mu       sync.Mutex
		failures []LineFailure
		wg       sync.WaitGroup
	)

	for _, item := range items {
		wg.Add(1)
		go func(item cart.Item) {
			defer wg.Done()

			if _, err := s.stock.DecrementStock(ctx, item.Product.ID, item.Quantity); err != nil {
				mu.Lock()
				failures = append(failures, LineFailure{
					ProductID: item.Product.ID,
					Name:      item.Product.Name,
					Reason:    err.Error(),
				})
				mu.Unlock()
			}
		}(item)
	}

	wg.Wait()
	return failures
}

func (s *service) sendConfirmation(ctx context.Context, chk *Checkout, ord *order.Order) {
	lines := make([]mailer.Line, 0, len(chk.Items))
	for _, item := range chk.Items {
		lines = append(lines, mailer.Line{
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.EffectivePrice(),
		})
	}

	err := s.mail.SendOrderConfirmation(ctx, chk.Address.Email, mailer.OrderConfirmation{
		OrderID:     ord.ID,
		Total:       chk.Total,
		ShippingFee: chk.Fee,
		Lines:       lines,
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("order confirmation email not sent",
			zap.String("order_id", ord.ID),
			zap.Error(err),
		)
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
