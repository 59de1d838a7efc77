package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, phone, role, is_disabled, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, string(u.Role), u.IsDisabled, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("User already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, phone = $4, role = $5,
			is_disabled = $6, updated_at = $7
		WHERE id = $8
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Phone, string(u.Role), u.IsDisabled, u.UpdatedAt, u.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return domain.NewConflictError("Email already in use")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("User")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("User")
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f application.UserFilter, page domain.Page) ([]*domain.User, int, error) {
	var b whereBuilder
	if f.Search != "" {
		b.ilike(f.Search, "name", "email")
	}
	if f.Role != "" {
		b.where("role = " + b.arg(string(f.Role)))
	}
	if f.IsDisabled != nil {
		b.where("is_disabled = " + b.arg(*f.IsDisabled))
	}

	total, err := b.count(ctx, r.db.Pool, "users")
	if err != nil {
		return nil, 0, err
	}

	limit, args := b.page(page.Limit, page.Offset())
	query := `SELECT ` + userColumns + ` FROM users` + b.sql() + ` ORDER BY created_at DESC` + limit

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.User, error) {
		return scanUser(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan users: %w", err)
	}
	return users, total, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &role, &u.IsDisabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
