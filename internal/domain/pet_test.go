package domain_test

import (
	"testing"

	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestPet_ApplyOwnerEdit(t *testing.T) {
	t.Run("rejected submission returns to review", func(t *testing.T) {
		pet := &domain.Pet{Name: "Rex", Status: domain.PetRejected}

		err := pet.ApplyOwnerEdit(domain.PetPatch{Name: ptr("Max")})

		require.NoError(t, err)
		assert.Equal(t, "Max", pet.Name)
		assert.Equal(t, domain.PetPendingReview, pet.Status)
	})

	t.Run("owner cannot change status", func(t *testing.T) {
		pet := &domain.Pet{Status: domain.PetPendingReview}
		adopted := domain.PetAdopted

		require.NoError(t, pet.ApplyOwnerEdit(domain.PetPatch{Status: &adopted}))
		assert.Equal(t, domain.PetPendingReview, pet.Status)
	})

	t.Run("available pet is locked", func(t *testing.T) {
		pet := &domain.Pet{Name: "Rex", Status: domain.PetAvailable}

		err := pet.ApplyOwnerEdit(domain.PetPatch{Name: ptr("Max")})

		assert.ErrorIs(t, err, domain.ErrNotEditable)
		assert.Equal(t, "Rex", pet.Name)
	})

	t.Run("empty strings keep current values", func(t *testing.T) {
		pet := &domain.Pet{Name: "Rex", Breed: "Lab", Status: domain.PetPendingReview}

		require.NoError(t, pet.ApplyOwnerEdit(domain.PetPatch{Name: ptr(""), Age: ptr(4)}))
		assert.Equal(t, "Rex", pet.Name)
		assert.Equal(t, "Lab", pet.Breed)
		assert.Equal(t, 4, pet.Age)
	})
}

func TestPet_Withdraw(t *testing.T) {
	pet := &domain.Pet{Status: domain.PetPendingReview}
	require.NoError(t, pet.Withdraw())
	assert.True(t, pet.IsDeleted)

	reviewed := &domain.Pet{Status: domain.PetAvailable}
	assert.ErrorIs(t, reviewed.Withdraw(), domain.ErrNotEditable)
	assert.False(t, reviewed.IsDeleted)
}

func TestPet_AcceptsApplications(t *testing.T) {
	assert.True(t, (&domain.Pet{Status: domain.PetAvailable}).AcceptsApplications())
	assert.True(t, (&domain.Pet{Status: domain.PetPendingAdoption}).AcceptsApplications())
	assert.False(t, (&domain.Pet{Status: domain.PetAdopted}).AcceptsApplications())
	assert.False(t, (&domain.Pet{Status: domain.PetAvailable, IsDeleted: true}).AcceptsApplications())
}

func TestAdoptionApplication_Review(t *testing.T) {
	app := &domain.AdoptionApplication{Status: domain.ReviewPending}

	require.NoError(t, app.Review(domain.ReviewApproved, ptr("looks good")))
	assert.Equal(t, domain.ReviewApproved, app.Status)
	assert.Equal(t, "looks good", *app.AdminNote)

	assert.ErrorIs(t, app.Review("MAYBE", nil), domain.ErrInvalidStatus)
}

func TestNewPageResult(t *testing.T) {
	page := domain.NewPage(0, 0, 9)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 9, page.Limit)
	assert.Equal(t, 0, page.Offset())

	res := domain.NewPageResult[int](nil, domain.NewPage(3, 10, 10), 21)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, 21, res.Meta.Total)
	assert.Equal(t, 20, domain.NewPage(3, 10, 10).Offset())
}

func TestNewPage_Bounds(t *testing.T) {
	page := domain.NewPage(1, 1_000_000, 9)
	assert.Equal(t, domain.MaxPageLimit, page.Limit)

	huge := domain.NewPage(int(^uint(0)>>1), int(^uint(0)>>1), 9)
	assert.Equal(t, domain.MaxPageLimit, huge.Limit)
	assert.Positive(t, huge.Offset())
}
