package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, slug, description, location, start_date_time, end_date_time, images, created_at, updated_at`

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		e.ID, e.Title, e.Slug, e.Description, e.Location, e.StartDateTime, e.EndDateTime,
		nonNilStrings(e.Images), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("An event with this title already exists")
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.db.Pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
}

func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return scanEvent(r.db.Pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug))
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, slug = $2, description = $3, location = $4, start_date_time = $5,
			end_date_time = $6, images = $7, updated_at = $8
		WHERE id = $9
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		e.Title, e.Slug, e.Description, e.Location, e.StartDateTime, e.EndDateTime,
		nonNilStrings(e.Images), e.UpdatedAt, e.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("An event with this title already exists")
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Event")
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Event")
	}
	return nil
}

func (r *EventRepository) List(
	ctx context.Context,
	window domain.EventWindow,
	now time.Time,
	page domain.Page,
) ([]*domain.Event, int, error) {
	var b whereBuilder
	switch window {
	case domain.EventsUpcoming:
		b.where("start_date_time >= " + b.arg(now))
	case domain.EventsPast:
		b.where("start_date_time < " + b.arg(now))
	}

	total, err := b.count(ctx, r.db.Pool, "events")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	query := `SELECT ` + eventColumns + ` FROM events` + b.sql() + ` ORDER BY start_date_time ASC` + limit

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query events: %w", err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan events: %w", err)
	}
	return events, total, nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Location, &e.StartDateTime, &e.EndDateTime,
		&e.Images, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Event")
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &e, nil
}
