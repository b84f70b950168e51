// Package repository defines persistence ports for the admin catalog.
package repository

import (
	"context"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	CategoryID *string
	JustIn     *bool
	Search     *string
	Page       int
	PerPage    int
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	// Create inserts a new product.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// List returns products matching the filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// ListAll returns every product, newest first. The storefront pipeline
	// filters and windows in memory.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// Update modifies an existing product.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id string) error
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// TagRepository is the persistence port for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	ListAll(ctx context.Context) ([]domain.Tag, error)
	Delete(ctx context.Context, id string) error
}
