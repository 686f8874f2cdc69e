package product

import (
	"context"

	"teabloom-be/internal/recordstore"
)

const listPageSize = 200

// Store is the record store surface the repository needs.
type Store interface {
	List(ctx context.Context, collection string, opts recordstore.ListOptions, items any) (int, error)
	Get(ctx context.Context, collection, id string, out any) error
	Create(ctx context.Context, collection string, body, out any, opts ...recordstore.RequestOption) error
	Update(ctx context.Context, collection, id string, body, out any, opts ...recordstore.RequestOption) error
	Delete(ctx context.Context, collection, id string) error
}

type Repository interface {
	ListVisible(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id string) error
	SetStock(ctx context.Context, id string, stock int) error
}

type repository struct {
	store Store
}

func NewRepository(store Store) Repository {
	return &repository{store: store}
}

// ListVisible fetches the storefront catalog: hidden products excluded,
// sorted by descending display order then descending creation time.
func (r *repository) ListVisible(ctx context.Context) ([]Product, error) {
	return r.list(ctx, recordstore.Eq("hidden", false))
}

// ListAll fetches every product unfiltered. Used by the admin console and as
// the fallback path when the filtered query fails.
func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, "")
}

func (r *repository) list(ctx context.Context, filter string) ([]Product, error) {
	var all []Product

	for page := 1; ; page++ {
		var items []Product
		total, err := r.store.List(ctx, Collection, recordstore.ListOptions{
			Filter:  filter,
			Sort:    recordstore.SortDesc("display_order", "created"),
			Page:    page,
			PerPage: listPageSize,
		}, &items)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
		if len(items) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := r.store.Get(ctx, Collection, id, &p); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProduct) (*Product, error) {
	body := struct {
		NewProduct
		InStock bool `json:"in_stock"`
	}{NewProduct: input, InStock: input.Stock > 0}

	var p Product
	if err := r.store.Create(ctx, Collection, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	var p Product
	if err := r.store.Update(ctx, Collection, id, input, &p); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// The in-stock flag shadows the stock count.
	if input.Stock != nil && p.InStock != (*input.Stock > 0) {
		if err := r.store.Update(ctx, Collection, id, map[string]bool{"in_stock": *input.Stock > 0}, &p); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, Collection, id); err != nil {
		if recordstore.IsNotFound(err) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (r *repository) SetStock(ctx context.Context, id string, stock int) error {
	body := map[string]any{
		"stock":    stock,
		"in_stock": stock > 0,
	}
	return r.store.Update(ctx, Collection, id, body, nil)
}
