package order

import (
	"context"

	"teabloom-be/internal/identity"
	"teabloom-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Order, error)
	ListMine(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, []Item, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns every order; admin only.
func (s *service) List(ctx context.Context) ([]Order, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx)
}

// ListMine returns the calling registered user's own orders. Guest orders
// have no linked user and are not reachable here.
func (s *service) ListMine(ctx context.Context) ([]Order, error) {
	ident := identity.FromCtx(ctx)
	if !ident.Registered() {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, ident.UserID)
}

// Get returns an order with its items; owners see their own, admins see all.
func (s *service) Get(ctx context.Context, id string) (*Order, []Item, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	ident := identity.FromCtx(ctx)
	if !ident.IsAdmin() && (o.UserID == "" || o.UserID != ident.UserID) {
		return nil, nil, ErrUnauthorized
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return o, items, nil
}

// UpdateStatus overwrites an order's status; admin only. Any member of the
// status enumeration is accepted, transitions are not constrained.
func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}

	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	return o, nil
}
