package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const storyColumns = `id, title, slug, body, cover_image, gallery_images, published_at, created_at, updated_at`

type StoryRepository struct {
	db *DB
}

func NewStoryRepository(db *DB) *StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Create(ctx context.Context, s *domain.Story) error {
	query := `
		INSERT INTO stories (` + storyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		s.ID, s.Title, s.Slug, s.Body, s.CoverImage, nonNilStrings(s.GalleryImages),
		s.PublishedAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("A story with this title already exists")
		}
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *StoryRepository) FindByID(ctx context.Context, id string) (*domain.Story, error) {
	return scanStory(r.db.Pool.QueryRow(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = $1`, id))
}

func (r *StoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Story, error) {
	return scanStory(r.db.Pool.QueryRow(ctx, `SELECT `+storyColumns+` FROM stories WHERE slug = $1`, slug))
}

func (r *StoryRepository) Update(ctx context.Context, s *domain.Story) error {
	query := `
		UPDATE stories
		SET title = $1, slug = $2, body = $3, cover_image = $4, gallery_images = $5, updated_at = $6
		WHERE id = $7
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		s.Title, s.Slug, s.Body, s.CoverImage, nonNilStrings(s.GalleryImages), s.UpdatedAt, s.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("A story with this title already exists")
		}
		return fmt.Errorf("failed to update story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Story")
	}
	return nil
}

func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Story")
	}
	return nil
}

func (r *StoryRepository) List(ctx context.Context, page domain.Page) ([]*domain.Story, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM stories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stories: %w", err)
	}

	query := `SELECT ` + storyColumns + ` FROM stories ORDER BY published_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Pool.Query(ctx, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("query stories: %w", err)
	}
	stories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Story, error) {
		return scanStory(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan stories: %w", err)
	}
	return stories, total, nil
}

func scanStory(row pgx.Row) (*domain.Story, error) {
	var s domain.Story
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Body, &s.CoverImage, &s.GalleryImages, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Story")
		}
		return nil, fmt.Errorf("failed to scan story: %w", err)
	}
	return &s, nil
}
