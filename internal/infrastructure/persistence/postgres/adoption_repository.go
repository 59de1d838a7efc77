package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const adoptionSelect = `
	SELECT a.id, a.pet_id, a.user_id, a.applicant_info, a.status, a.admin_note,
		a.created_at, a.updated_at,
		p.name, p.photos, p.status, u.name, u.email
	FROM adoption_applications a
	JOIN pets p ON p.id = a.pet_id
	JOIN users u ON u.id = a.user_id`

type AdoptionRepository struct {
	db *DB
}

func NewAdoptionRepository(db *DB) *AdoptionRepository {
	return &AdoptionRepository{db: db}
}

func (r *AdoptionRepository) Create(ctx context.Context, a *domain.AdoptionApplication) error {
	query := `
		INSERT INTO adoption_applications (id, pet_id, user_id, applicant_info, status, admin_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		a.ID, a.PetID, a.UserID, a.ApplicantInfo, string(a.Status), a.AdminNote, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create adoption application: %w", err)
	}
	return nil
}

func (r *AdoptionRepository) FindByID(ctx context.Context, id string) (*domain.AdoptionApplication, error) {
	return scanAdoption(r.db.Pool.QueryRow(ctx, adoptionSelect+` WHERE a.id = $1`, id))
}

func (r *AdoptionRepository) SaveReview(
	ctx context.Context,
	a *domain.AdoptionApplication,
	petStatus *domain.PetStatus,
) error {
	return r.db.inTx(ctx, func(q Executor) error {
		tag, err := q.Exec(ctx,
			`UPDATE adoption_applications SET status = $1, admin_note = $2, updated_at = $3 WHERE id = $4`,
			string(a.Status), a.AdminNote, a.UpdatedAt, a.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update adoption application: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("Adoption application")
		}

		if petStatus == nil {
			return nil
		}
		tag, err = q.Exec(ctx,
			`UPDATE pets SET status = $1, updated_at = NOW() WHERE id = $2`,
			string(*petStatus), a.PetID,
		)
		if err != nil {
			return fmt.Errorf("failed to update pet status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFoundError("pet")
		}
		return nil
	})
}

func (r *AdoptionRepository) List(
	ctx context.Context,
	f application.ReviewFilter,
	page domain.Page,
) ([]*domain.AdoptionApplication, int, error) {
	var b whereBuilder
	if f.Status != "" {
		b.where("a.status = " + b.arg(string(f.Status)))
	}
	if f.UserID != "" {
		b.where("a.user_id = " + b.arg(f.UserID))
	}

	total, err := b.count(ctx, r.db.Pool, "adoption_applications a")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	apps, err := queryAdoptions(ctx, r.db.Pool, adoptionSelect+b.sql()+` ORDER BY a.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func queryAdoptions(ctx context.Context, q Executor, query string, args ...any) ([]*domain.AdoptionApplication, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query adoption applications: %w", err)
	}
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.AdoptionApplication, error) {
		return scanAdoption(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan adoption applications: %w", err)
	}
	return apps, nil
}

func scanAdoption(row pgx.Row) (*domain.AdoptionApplication, error) {
	var (
		a         domain.AdoptionApplication
		status    string
		pet       domain.PetSummary
		petStatus string
		user      domain.UserSummary
	)
	err := row.Scan(
		&a.ID, &a.PetID, &a.UserID, &a.ApplicantInfo, &status, &a.AdminNote, &a.CreatedAt, &a.UpdatedAt,
		&pet.Name, &pet.Photos, &petStatus, &user.Name, &user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Adoption application")
		}
		return nil, fmt.Errorf("failed to scan adoption application: %w", err)
	}
	a.Status = domain.ReviewStatus(status)
	pet.ID = a.PetID
	pet.Status = domain.PetStatus(petStatus)
	user.ID = a.UserID
	a.Pet = &pet
	a.User = &user
	return &a, nil
}
