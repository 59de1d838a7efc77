package testhelpers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *postgres.DB, role domain.Role) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	id := uuid.New().String()
	user := &domain.User{
		ID:           id,
		Name:         "User " + id[:8],
		Email:        id[:8] + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, postgres.NewUserRepository(db).Create(context.Background(), user))
	return user
}

// CreatePet inserts a dog with the given status.
func CreatePet(t *testing.T, db *postgres.DB, status domain.PetStatus) *domain.Pet {
	t.Helper()
	pet := DefaultPet(status)
	require.NoError(t, postgres.NewPetRepository(db).Create(context.Background(), pet))
	return pet
}

func DefaultPet(status domain.PetStatus) *domain.Pet {
	now := time.Now().UTC()
	return &domain.Pet{
		ID:          uuid.New().String(),
		Name:        "Buddy",
		Species:     "Dog",
		Breed:       "Labrador",
		Age:         3,
		Size:        "Large",
		Gender:      "Male",
		Description: "Friendly and loves walks",
		Photos:      []string{"https://example.com/buddy.jpg"},
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DefaultApplicantInfo returns a complete applicant form.
func DefaultApplicantInfo() domain.ApplicantInfo {
	return domain.ApplicantInfo{
		Address:       "12 Lake Road, Dhaka",
		Experience:    "Had dogs for 10 years",
		HouseholdInfo: "Two adults, fenced yard",
	}
}

// CreatePendingDonation inserts a general donation awaiting the gateway.
func CreatePendingDonation(t *testing.T, db *postgres.DB, tranID string) *domain.Donation {
	t.Helper()
	d, err := domain.NewDonation(uuid.New().String(), tranID, decimal.NewFromInt(500), domain.PurposeGeneral)
	require.NoError(t, err)
	require.NoError(t, postgres.NewDonationRepository(db).Create(context.Background(), d))
	return d
}

// DiscardLogger is a logger for tests that do not assert on log output.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
