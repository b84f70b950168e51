package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/slug"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/repository"
)

// TaxonomyService manages categories and tags.
type TaxonomyService struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
	logger     *slog.Logger
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(categories repository.CategoryRepository, tags repository.TagRepository, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{
		categories: categories,
		tags:       tags,
		logger:     logger,
	}
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name        string
	Description string
	ImageURL    string
}

// CreateCategory creates a new category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("category name is required")
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// ListCategories returns all categories.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategoryInput holds the parameters for updating a category.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

// UpdateCategory applies the non-nil fields of input to the category.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, id string, input *UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("category name must not be empty")
		}
		category.Name = *input.Name
		category.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.logger.InfoContext(ctx, "category updated",
		slog.String("category_id", category.ID),
	)

	return category, nil
}

// DeleteCategory removes a category by its ID.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.InfoContext(ctx, "category deleted",
		slog.String("category_id", id),
	)
	return nil
}

// CreateTag creates a new tag.
func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	if name == "" {
		return nil, apperrors.InvalidInput("tag name is required")
	}

	tag := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Generate(name),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	s.logger.InfoContext(ctx, "tag created",
		slog.String("tag_id", tag.ID),
		slog.String("slug", tag.Slug),
	)

	return tag, nil
}

// ListTags returns all tags.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag by its ID.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.InfoContext(ctx, "tag deleted",
		slog.String("tag_id", id),
	)
	return nil
}
