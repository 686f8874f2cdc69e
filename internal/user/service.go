package user

import (
	"context"

	"teabloom-be/internal/identity"
)

type Service interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]User, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repo.List(ctx)
}

// GetByID returns a user profile. Admins can read anyone; a registered
// customer can only read their own record.
func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	ident := identity.FromCtx(ctx)
	if !ident.IsAdmin() && ident.UserID != id {
		return nil, ErrUnauthorized
	}
	return s.repo.GetByID(ctx, id)
}
