package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"teabloom-be/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListVisible(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input NewProduct) (*Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id string, input UpdateProduct) (*Product, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetStock(ctx context.Context, id string, stock int) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}

func adminCtx() context.Context {
	return identity.WithContext(context.Background(), identity.Identity{
		Kind:   identity.KindRegistered,
		UserID: "admin-1",
		Admin:  true,
	})
}

func TestService_ListVisible(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - filtered query", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := []Product{{ID: "p1"}}

		mockRepo.On("ListVisible", ctx).Return(expected, nil).Once()

		products, err := svc.ListVisible(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fallback - filtered query fails, filters client-side", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		now := time.Now()
		all := []Product{
			{ID: "old", DisplayOrder: 0, Created: now.Add(-time.Hour)},
			{ID: "hidden", Hidden: true},
			{ID: "featured", DisplayOrder: 5},
			{ID: "new", DisplayOrder: 0, Created: now},
		}

		mockRepo.On("ListVisible", ctx).Return(nil, errors.New("filter rejected")).Once()
		mockRepo.On("ListAll", ctx).Return(all, nil).Once()

		products, err := svc.ListVisible(ctx)

		assert.NoError(t, err)
		assert.Len(t, products, 3)
		assert.Equal(t, "featured", products[0].ID)
		assert.Equal(t, "new", products[1].ID)
		assert.Equal(t, "old", products[2].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - both paths fail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		dbErr := errors.New("store down")

		mockRepo.On("ListVisible", ctx).Return(nil, errors.New("filter rejected")).Once()
		mockRepo.On("ListAll", ctx).Return(nil, dbErr).Once()

		_, err := svc.ListVisible(ctx)

		assert.Error(t, err)
		assert.Equal(t, dbErr, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_ListAll(t *testing.T) {
	t.Run("Admin only", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.ListAll(context.Background())

		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ctx := adminCtx()

		mockRepo.On("ListAll", ctx).Return([]Product{{ID: "p1", Hidden: true}}, nil).Once()

		products, err := svc.ListAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Create(t *testing.T) {
	input := NewProduct{Name: "Sencha", Price: 12.5, Stock: 10}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ctx := adminCtx()

		mockRepo.On("Create", ctx, input).Return(&Product{ID: "p1"}, nil).Once()

		p, err := svc.Create(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, "p1", p.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - not admin", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), input)

		assert.Equal(t, ErrUnauthorized, err)
	})

	t.Run("Error - empty name", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(adminCtx(), NewProduct{Name: "  ", Price: 10})

		assert.Equal(t, ErrNameRequired, err)
	})

	t.Run("Error - invalid price", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(adminCtx(), NewProduct{Name: "Sencha", Price: 0})

		assert.Equal(t, ErrInvalidPrice, err)
	})

	t.Run("Error - negative stock", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(adminCtx(), NewProduct{Name: "Sencha", Price: 10, Stock: -1})

		assert.Equal(t, ErrInvalidStock, err)
	})
}

func TestService_Update(t *testing.T) {
	name := "Genmaicha"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ctx := adminCtx()
		input := UpdateProduct{Name: &name}

		mockRepo.On("Update", ctx, "p1", input).Return(&Product{ID: "p1", Name: name}, nil).Once()

		p, err := svc.Update(ctx, "p1", input)

		assert.NoError(t, err)
		assert.Equal(t, name, p.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - no fields", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Update(adminCtx(), "p1", UpdateProduct{})

		assert.Equal(t, ErrNoFields, err)
	})

	t.Run("Error - missing id", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Update(adminCtx(), "", UpdateProduct{Name: &name})

		assert.Equal(t, ErrIDRequired, err)
	})

	t.Run("Error - blank name", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		blank := "   "

		_, err := svc.Update(adminCtx(), "p1", UpdateProduct{Name: &blank})

		assert.Equal(t, ErrNameRequired, err)
	})

	t.Run("Error - not admin", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Update(context.Background(), "p1", UpdateProduct{Name: &name})

		assert.Equal(t, ErrUnauthorized, err)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		ctx := adminCtx()

		mockRepo.On("Delete", ctx, "p1").Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, "p1"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - not admin", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		assert.Equal(t, ErrUnauthorized, svc.Delete(context.Background(), "p1"))
	})
}

func TestService_DecrementStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Subtracts purchased quantity", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, "p1").Return(&Product{ID: "p1", Stock: 5}, nil).Once()
		mockRepo.On("SetStock", ctx, "p1", 3).Return(nil).Once()

		newStock, err := svc.DecrementStock(ctx, "p1", 2)

		assert.NoError(t, err)
		assert.Equal(t, 3, newStock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Floors at zero", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, "p1").Return(&Product{ID: "p1", Stock: 1}, nil).Once()
		mockRepo.On("SetStock", ctx, "p1", 0).Return(nil).Once()

		newStock, err := svc.DecrementStock(ctx, "p1", 4)

		assert.NoError(t, err)
		assert.Equal(t, 0, newStock)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - product missing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetByID", ctx, "ghost").Return(nil, ErrProductNotFound).Once()

		_, err := svc.DecrementStock(ctx, "ghost", 1)

		assert.Equal(t, ErrProductNotFound, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - write fails", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		writeErr := errors.New("store down")

		mockRepo.On("GetByID", ctx, "p1").Return(&Product{ID: "p1", Stock: 5}, nil).Once()
		mockRepo.On("SetStock", ctx, "p1", 4).Return(writeErr).Once()

		_, err := svc.DecrementStock(ctx, "p1", 1)

		assert.Equal(t, writeErr, err)
		mockRepo.AssertExpectations(t)
	})
}
