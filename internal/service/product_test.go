package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/repository"
)

// --- Mock Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) ProductCreated(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPublisher) ProductUpdated(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPublisher) ProductDeleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPublisher) CartUpdated(ctx context.Context, userID string, items []domain.CartItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *mockPublisher) WishlistUpdated(ctx context.Context, userID string, items []domain.WishlistItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockProductRepository, producer *mockPublisher) *ProductService {
	return NewProductService(repo, producer, newTestLogger())
}

func strPtr(s string) *string { return &s }

func amountPtr(a domain.Amount) *domain.Amount { return &a }

// --- Tests ---

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	producer := new(mockPublisher)
	svc := newTestService(repo, producer)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	producer.On("ProductCreated", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:          "Banarasi Silk Saree",
		Price:         4999,
		OriginalPrice: 6999,
		JustIn:        true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "banarasi-silk-saree", product.Slug)
	assert.Equal(t, domain.Amount(4999), product.Price)
	assert.True(t, product.JustIn)
	assert.False(t, product.CreatedAt.IsZero())

	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newTestService(new(mockProductRepository), new(mockPublisher))

	tests := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Price: 100}},
		{"negative price", CreateProductInput{Name: "x", Price: -1}},
		{"original below price", CreateProductInput{Name: "x", Price: 500, OriginalPrice: 400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), &tt.input)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCreateProduct_EventFailureDoesNotFail(t *testing.T) {
	repo := new(mockProductRepository)
	producer := new(mockPublisher)
	svc := newTestService(repo, producer)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("ProductCreated", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{Name: "Dupatta", Price: 799})
	assert.NoError(t, err)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := new(mockProductRepository)
	producer := new(mockPublisher)
	svc := newTestService(repo, producer)

	existing := &domain.Product{
		ID:    "prod-1",
		Name:  "Old Name",
		Slug:  "old-name",
		Price: 1000,
	}
	repo.On("GetByID", mock.Anything, "prod-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
	producer.On("ProductUpdated", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.UpdateProduct(context.Background(), "prod-1", &UpdateProductInput{
		Name:  strPtr("New Name"),
		Price: amountPtr(1499),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, domain.Amount(1499), updated.Price)

	repo.AssertExpectations(t)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo, new(mockPublisher))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.UpdateProduct(context.Background(), "missing", &UpdateProductInput{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteProduct_PublishesEvent(t *testing.T) {
	repo := new(mockProductRepository)
	producer := new(mockPublisher)
	svc := newTestService(repo, producer)

	repo.On("Delete", mock.Anything, "prod-1").Return(nil)
	producer.On("ProductDeleted", mock.Anything, "prod-1").Return(nil)

	require.NoError(t, svc.DeleteProduct(context.Background(), "prod-1"))
	producer.AssertExpectations(t)
}

func TestListProducts_ClampsPagination(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo, new(mockPublisher))

	repo.On("List", mock.Anything, repository.ProductFilter{Page: 1, PerPage: 100}).
		Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(context.Background(), repository.ProductFilter{Page: 0, PerPage: 500})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
