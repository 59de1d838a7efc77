package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateTranID is returned by Create when the external transaction id is taken.
var ErrDuplicateTranID = fmt.Errorf("duplicate transaction id: %w", domain.ErrConflict)

const donationColumns = `
	id, donor_name, donor_email, donor_phone, amount, currency, purpose,
	pet_id, user_id, tran_id, ssl_status, val_id, session_key, created_at, updated_at`

type DonationRepository struct {
	db *DB
}

func NewDonationRepository(db *DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(ctx context.Context, d *domain.Donation) error {
	query := `
		INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		d.ID,
		d.DonorName,
		d.DonorEmail,
		d.DonorPhone,
		d.Amount,
		d.Currency,
		string(d.Purpose),
		d.PetID,
		d.UserID,
		d.SSL.TranID,
		string(d.SSL.Status),
		d.SSL.ValID,
		d.SSL.SessionKey,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateTranID, d.SSL.TranID)
		}
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) FindByTranID(ctx context.Context, tranID string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE tran_id = $1`
	return scanDonation(r.db.Pool.QueryRow(ctx, query, tranID))
}

func (r *DonationRepository) SetSessionKey(ctx context.Context, tranID, sessionKey string) error {
	query := `UPDATE donations SET session_key = $1, updated_at = NOW() WHERE tran_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, sessionKey, tranID)
	if err != nil {
		return fmt.Errorf("failed to store session key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("transaction")
	}
	return nil
}

func (r *DonationRepository) CompleteTransaction(
	ctx context.Context,
	tranID string,
	status domain.TransactionStatus,
	valID *string,
) (bool, error) {
	query := `
		UPDATE donations
		SET ssl_status = $1,
			val_id = COALESCE(NULLIF($2, ''), val_id),
			updated_at = NOW()
		WHERE tran_id = $3 AND ssl_status = 'PENDING'
	`

	tag, err := r.db.Pool.Exec(ctx, query, string(status), valID, tranID)
	if err != nil {
		return false, fmt.Errorf("failed to complete transaction: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	err = r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM donations WHERE tran_id = $1)`, tranID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction: %w", err)
	}
	if !exists {
		return false, domain.NewNotFoundError("transaction")
	}
	return false, nil
}

func (r *DonationRepository) List(
	ctx context.Context,
	filter application.DonationFilter,
	page domain.Page,
) ([]*domain.Donation, int, error) {
	var b whereBuilder
	if filter.Status != "" {
		b.where("ssl_status = " + b.arg(string(filter.Status)))
	}
	if filter.Purpose != "" {
		b.where("purpose = " + b.arg(string(filter.Purpose)))
	}

	total, err := b.count(ctx, r.db.Pool, "donations")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	query := `SELECT ` + donationColumns + ` FROM donations` + b.sql() + ` ORDER BY created_at DESC` + limit

	donations, err := queryDonations(ctx, r.db.Pool, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return donations, total, nil
}

func queryDonations(ctx context.Context, q Executor, query string, args ...any) ([]*domain.Donation, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query donations: %w", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Donation, error) {
		return scanDonation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan donations: %w", err)
	}
	return results, nil
}

// scanDonation converts a database row into a domain Donation.
func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var (
		d       domain.Donation
		purpose string
		status  string
	)
	err := row.Scan(
		&d.ID, &d.DonorName, &d.DonorEmail, &d.DonorPhone, &d.Amount, &d.Currency, &purpose,
		&d.PetID, &d.UserID, &d.SSL.TranID, &status, &d.SSL.ValID, &d.SSL.SessionKey,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("transaction")
		}
		return nil, fmt.Errorf("failed to scan donation: %w", err)
	}
	d.Purpose = domain.DonationPurpose(purpose)
	d.SSL.Status = domain.TransactionStatus(status)
	return &d, nil
}
