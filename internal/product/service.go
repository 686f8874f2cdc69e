package product

import (
	"context"
	"sort"
	"strings"

	"teabloom-be/internal/identity"
	"teabloom-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListVisible(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProduct) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProduct) (*Product, error)
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListVisible returns the storefront catalog. If the filtered query fails,
// it falls back to an unfiltered fetch and filters client-side; the record
// store's filter rules have drifted before.
func (s *service) ListVisible(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListVisible"),
	)

	products, err := s.repo.ListVisible(ctx)
	if err == nil {
		return products, nil
	}

	log.Warn("filtered product query failed, falling back to unfiltered fetch", zap.Error(err))

	all, fallbackErr := s.repo.ListAll(ctx)
	if fallbackErr != nil {
		log.Error("fallback product fetch failed", zap.Error(fallbackErr))
		return nil, fallbackErr
	}

	visible := make([]Product, 0, len(all))
	for _, p := range all {
		if p.Visible() {
			visible = append(visible, p)
		}
	}
	SortForDisplay(visible)

	return visible, nil
}

func (s *service) ListAll(ctx context.Context) ([]Product, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.repo.ListAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProduct) (*Product, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	return s.repo.Create(ctx, input)
}

func (s *service) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	if !identity.FromCtx(ctx).IsAdmin() {
		return nil, ErrUnauthorized
	}

	if id == "" {
		return nil, ErrIDRequired
	}
	if !input.HasAnyField() {
		return nil, ErrNoFields
	}

	// Validate only provided fields
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !identity.FromCtx(ctx).IsAdmin() {
		return ErrUnauthorized
	}
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}

// DecrementStock re-fetches the current stock, subtracts the purchased
// quantity floored at zero and writes it back. It returns the new stock.
func (s *service) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	newStock := p.Stock - quantity
	if newStock < 0 {
		newStock = 0
	}

	if err := s.repo.SetStock(ctx, id, newStock); err != nil {
		return 0, err
	}

	return newStock, nil
}

// SortForDisplay orders products by descending display order, ties broken by
// newest first.
func SortForDisplay(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].DisplayOrder != products[j].DisplayOrder {
			return products[i].DisplayOrder > products[j].DisplayOrder
		}
		return products[i].Created.After(products[j].Created)
	})
}
