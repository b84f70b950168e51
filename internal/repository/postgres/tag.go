package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/errors"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// TagRepository implements repository.TagRepository using PostgreSQL.
type TagRepository struct {
	db DB
}

// NewTagRepository creates a new PostgreSQL-backed tag repository.
func NewTagRepository(db DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a new tag.
func (r *TagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `
		INSERT INTO tags (id, name, slug, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, t.ID, t.Name, t.Slug, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("tag", "slug", t.Slug)
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// GetByID retrieves a tag by its ID.
func (r *TagRepository) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM tags
		WHERE id = $1`

	var t domain.Tag
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("tag", id)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

// ListAll returns all tags ordered by name.
func (r *TagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM tags
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}

	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}

// Delete removes a tag by its ID.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("tag", id)
	}
	return nil
}
