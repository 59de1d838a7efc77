package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

const petColumns = `
	p.id, p.name, p.species, p.breed, p.age, p.size, p.gender, p.description,
	p.medical_notes, p.special_needs, p.photos, p.status, p.submitted_by_user_id,
	p.owner_contact, p.is_deleted, p.created_at, p.updated_at`

var petSortColumns = map[application.PetSort]string{
	application.PetSortCreatedAt: "p.created_at",
	application.PetSortName:      "p.name",
	application.PetSortAge:       "p.age",
}

type PetRepository struct {
	db *DB
}

func NewPetRepository(db *DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	query := `
		INSERT INTO pets (
			id, name, species, breed, age, size, gender, description,
			medical_notes, special_needs, photos, status, submitted_by_user_id,
			owner_contact, is_deleted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		pet.ID, pet.Name, pet.Species, pet.Breed, pet.Age, pet.Size, pet.Gender, pet.Description,
		pet.MedicalNotes, pet.SpecialNeeds, nonNilStrings(pet.Photos), string(pet.Status), pet.SubmittedByUserID,
		pet.OwnerContact, pet.IsDeleted, pet.CreatedAt, pet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// FindByID returns soft-deleted pets too; callers decide visibility.
func (r *PetRepository) FindByID(ctx context.Context, id string) (*domain.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets p WHERE p.id = $1`
	return scanPet(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *PetRepository) Update(ctx context.Context, pet *domain.Pet) error {
	return updatePet(ctx, r.db.Pool, pet)
}

func updatePet(ctx context.Context, q Executor, pet *domain.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, species = $2, breed = $3, age = $4, size = $5, gender = $6,
			description = $7, medical_notes = $8, special_needs = $9, photos = $10,
			status = $11, owner_contact = $12, is_deleted = $13, updated_at = $14
		WHERE id = $15
	`

	tag, err := q.Exec(ctx, query,
		pet.Name, pet.Species, pet.Breed, pet.Age, pet.Size, pet.Gender,
		pet.Description, pet.MedicalNotes, pet.SpecialNeeds, nonNilStrings(pet.Photos),
		string(pet.Status), pet.OwnerContact, pet.IsDeleted, pet.UpdatedAt,
		pet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("pet")
	}
	return nil
}

func (r *PetRepository) List(ctx context.Context, f application.PetFilter, page domain.Page) ([]*domain.Pet, int, error) {
	var b whereBuilder
	if !f.IncludeHidden {
		b.where("p.is_deleted = FALSE")
	}
	if f.Status != "" {
		b.where("p.status = " + b.arg(string(f.Status)))
	}
	if f.SubmittedBy != "" {
		b.where("p.submitted_by_user_id = " + b.arg(f.SubmittedBy))
	}
	if f.Name != "" {
		b.ilike(f.Name, "p.name")
	}
	if f.Search != "" {
		b.ilike(f.Search, "p.name", "p.species", "p.breed")
	}
	if f.Species != "" {
		b.where("LOWER(p.species) = LOWER(" + b.arg(f.Species) + ")")
	}
	if f.Breed != "" {
		b.ilike(f.Breed, "p.breed")
	}
	if f.Size != "" {
		b.where("LOWER(p.size) = LOWER(" + b.arg(f.Size) + ")")
	}
	if f.Gender != "" {
		b.where("LOWER(p.gender) = LOWER(" + b.arg(f.Gender) + ")")
	}
	if f.AgeMin != nil {
		b.where("p.age >= " + b.arg(*f.AgeMin))
	}
	if f.AgeMax != nil {
		b.where("p.age <= " + b.arg(*f.AgeMax))
	}

	total, err := b.count(ctx, r.db.Pool, "pets p")
	if err != nil {
		return nil, 0, err
	}

	sortCol, ok := petSortColumns[f.SortBy]
	if !ok {
		sortCol = petSortColumns[application.PetSortCreatedAt]
	}
	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}

	limit, args := b.page(page.Limit, page.Offset())
	query := `
		SELECT ` + petColumns + `, u.id, u.name, u.email
		FROM pets p
		LEFT JOIN users u ON u.id = p.submitted_by_user_id` +
		b.sql() +
		` ORDER BY ` + sortCol + ` ` + dir + `, p.id` + limit

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query pets: %w", err)
	}
	pets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Pet, error) {
		var uid, uname, uemail *string
		pet, err := scanPetWith(row, &uid, &uname, &uemail)
		if err != nil {
			return nil, err
		}
		if uid != nil {
			pet.SubmittedBy = &domain.UserSummary{ID: *uid, Name: deref(uname), Email: deref(uemail)}
		}
		return pet, nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan pets: %w", err)
	}
	return pets, total, nil
}

func scanPet(row pgx.Row) (*domain.Pet, error) {
	return scanPetWith(row)
}

// scanPetWith scans the pet columns followed by any extra destinations.
func scanPetWith(row pgx.Row, extra ...any) (*domain.Pet, error) {
	var (
		p      domain.Pet
		status string
	)
	dest := []any{
		&p.ID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.Size, &p.Gender, &p.Description,
		&p.MedicalNotes, &p.SpecialNeeds, &p.Photos, &status, &p.SubmittedByUserID,
		&p.OwnerContact, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("pet")
		}
		return nil, fmt.Errorf("failed to scan pet: %w", err)
	}
	p.Status = domain.PetStatus(status)
	if p.Photos == nil {
		p.Photos = []string{}
	}
	return &p, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
