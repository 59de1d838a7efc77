package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const volunteerColumns = `
	id, name, email, phone, address, availability, interests, notes, status, admin_note, created_at, updated_at`

type VolunteerRepository struct {
	db *DB
}

func NewVolunteerRepository(db *DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

func (r *VolunteerRepository) Create(ctx context.Context, v *domain.VolunteerApplication) error {
	query := `
		INSERT INTO volunteer_applications (` + volunteerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		v.ID, v.Name, v.Email, v.Phone, v.Address, v.Availability, nonNilStrings(v.Interests),
		v.Notes, string(v.Status), v.AdminNote, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create volunteer application: %w", err)
	}
	return nil
}

func (r *VolunteerRepository) FindByID(ctx context.Context, id string) (*domain.VolunteerApplication, error) {
	query := `SELECT ` + volunteerColumns + ` FROM volunteer_applications WHERE id = $1`
	return scanVolunteer(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *VolunteerRepository) Update(ctx context.Context, v *domain.VolunteerApplication) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE volunteer_applications SET status = $1, admin_note = $2, updated_at = $3 WHERE id = $4`,
		string(v.Status), v.AdminNote, v.UpdatedAt, v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update volunteer application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("Volunteer application")
	}
	return nil
}

func (r *VolunteerRepository) List(
	ctx context.Context,
	status domain.ReviewStatus,
	page domain.Page,
) ([]*domain.VolunteerApplication, int, error) {
	var b whereBuilder
	if status != "" {
		b.where("status = " + b.arg(string(status)))
	}

	total, err := b.count(ctx, r.db.Pool, "volunteer_applications")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	query := `SELECT ` + volunteerColumns + ` FROM volunteer_applications` + b.sql() + ` ORDER BY created_at DESC` + limit

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query volunteer applications: %w", err)
	}
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.VolunteerApplication, error) {
		return scanVolunteer(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan volunteer applications: %w", err)
	}
	return apps, total, nil
}

func scanVolunteer(row pgx.Row) (*domain.VolunteerApplication, error) {
	var (
		v      domain.VolunteerApplication
		status string
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.Availability, &v.Interests,
		&v.Notes, &status, &v.AdminNote, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Volunteer application")
		}
		return nil, fmt.Errorf("failed to scan volunteer application: %w", err)
	}
	v.Status = domain.ReviewStatus(status)
	return &v, nil
}
