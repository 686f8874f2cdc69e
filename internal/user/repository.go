package user

import (
	"context"

	"teabloom-be/internal/recordstore"
)

const listPageSize = 200

// Store is the record store surface the repository needs.
type Store interface {
	List(ctx context.Context, collection string, opts recordstore.ListOptions, items any) (int, error)
	Get(ctx context.Context, collection, id string, out any) error
}

type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type repository struct {
	store Store
}

func NewRepository(store Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var all []User

	for page := 1; ; page++ {
		var items []User
		total, err := r.store.List(ctx, Collection, recordstore.ListOptions{
			Sort:    recordstore.SortDesc("created"),
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

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.store.Get(ctx, Collection, id, &u); err != nil {
		if recordstore.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
