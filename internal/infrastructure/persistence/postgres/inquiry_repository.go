package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const inquirySelect = `
	SELECT i.id, i.pet_id, i.name, i.email, i.phone, i.message, i.status, i.created_at, i.updated_at,
		p.name
	FROM adoption_inquiries i
	JOIN pets p ON p.id = i.pet_id`

type InquiryRepository struct {
	db *DB
}

func NewInquiryRepository(db *DB) *InquiryRepository {
	return &InquiryRepository{db: db}
}

func (r *InquiryRepository) Create(ctx context.Context, i *domain.AdoptionInquiry) error {
	query := `
		INSERT INTO adoption_inquiries (id, pet_id, name, email, phone, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		i.ID, i.PetID, i.Name, i.Email, i.Phone, i.Message, string(i.Status), i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.AdoptionInquiry, error) {
	return scanInquiry(r.db.Pool.QueryRow(ctx, inquirySelect+` WHERE i.id = $1`, id))
}

func (r *InquiryRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.InquiryStatus,
) (*domain.AdoptionInquiry, error) {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE adoption_inquiries SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NewNotFoundError("Inquiry")
	}
	return r.FindByID(ctx, id)
}

func (r *InquiryRepository) List(
	ctx context.Context,
	status domain.InquiryStatus,
	page domain.Page,
) ([]*domain.AdoptionInquiry, int, error) {
	var b whereBuilder
	if status != "" {
		b.where("i.status = " + b.arg(string(status)))
	}

	total, err := b.count(ctx, r.db.Pool, "adoption_inquiries i")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	rows, err := r.db.Pool.Query(ctx, inquirySelect+b.sql()+` ORDER BY i.created_at DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query inquiries: %w", err)
	}
	inquiries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.AdoptionInquiry, error) {
		return scanInquiry(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan inquiries: %w", err)
	}
	return inquiries, total, nil
}

func scanInquiry(row pgx.Row) (*domain.AdoptionInquiry, error) {
	var (
		i       domain.AdoptionInquiry
		status  string
		petName string
	)
	err := row.Scan(&i.ID, &i.PetID, &i.Name, &i.Email, &i.Phone, &i.Message, &status, &i.CreatedAt, &i.UpdatedAt, &petName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Inquiry")
		}
		return nil, fmt.Errorf("failed to scan inquiry: %w", err)
	}
	i.Status = domain.InquiryStatus(status)
	i.Pet = &domain.PetSummary{ID: i.PetID, Name: petName}
	return &i, nil
}
