package postgres_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/shelter-api/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PetRepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDatabase
	repo         *postgres.PetRepository
	adoptionRepo *postgres.AdoptionRepository
}

func TestPetRepositorySuite(t *testing.T) {
	suite.Run(t, new(PetRepositoryTestSuite))
}

func (suite *PetRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewPetRepository(suite.testDB.DB)
	suite.adoptionRepo = postgres.NewAdoptionRepository(suite.testDB.DB)
}

func (suite *PetRepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *PetRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *PetRepositoryTestSuite) Test_FindByID_RoundTripsArraysAndJSON() {
	ctx := context.Background()
	t := suite.T()
	pet := testhelpers.DefaultPet(domain.PetPendingReview)
	pet.OwnerContact = &domain.OwnerContact{Name: "Karim", Phone: "01700000000"}
	require.NoError(t, suite.repo.Create(ctx, pet))

	found, err := suite.repo.FindByID(ctx, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.Photos, found.Photos)
	require.NotNil(t, found.OwnerContact)
	assert.Equal(t, "Karim", found.OwnerContact.Name)
	assert.Equal(t, domain.PetPendingReview, found.Status)
}

func (suite *PetRepositoryTestSuite) Test_List_PublicFilters() {
	ctx := context.Background()
	t := suite.T()

	available := testhelpers.CreatePet(suite.T(), suite.testDB.DB, domain.PetAvailable)
	testhelpers.CreatePet(suite.T(), suite.testDB.DB, domain.PetPendingReview)
	deleted := testhelpers.DefaultPet(domain.PetAvailable)
	deleted.IsDeleted = true
	require.NoError(t, suite.repo.Create(ctx, deleted))

	cat := testhelpers.DefaultPet(domain.PetAvailable)
	cat.Name = "Whiskers"
	cat.Species = "Cat"
	cat.Age = 1
	require.NoError(t, suite.repo.Create(ctx, cat))

	pets, total, err := suite.repo.List(ctx, application.PetFilter{Status: domain.PetAvailable}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, pets, 2)

	pets, total, err = suite.repo.List(ctx, application.PetFilter{Status: domain.PetAvailable, Species: "cat"}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, cat.ID, pets[0].ID)

	minAge := 2
	pets, _, err = suite.repo.List(ctx, application.PetFilter{Status: domain.PetAvailable, AgeMin: &minAge}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, available.ID, pets[0].ID)

	pets, _, err = suite.repo.List(ctx, application.PetFilter{Status: domain.PetAvailable, SortBy: application.PetSortName, SortAsc: true}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "Buddy", pets[0].Name)
}

func (suite *PetRepositoryTestSuite) Test_List_SearchEscapesWildcards() {
	ctx := context.Background()
	t := suite.T()
	testhelpers.CreatePet(t, suite.testDB.DB, domain.PetAvailable)

	pets, total, err := suite.repo.List(ctx, application.PetFilter{Name: "%"}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, pets)

	pets, _, err = suite.repo.List(ctx, application.PetFilter{Search: "labr"}, domain.NewPage(1, 9, 9))
	require.NoError(t, err)
	assert.Len(t, pets, 1)
}

func (suite *PetRepositoryTestSuite) Test_List_JoinsSubmitter() {
	ctx := context.Background()
	t := suite.T()
	user := testhelpers.CreateUser(t, suite.testDB.DB, domain.RoleUser)
	pet := testhelpers.DefaultPet(domain.PetPendingReview)
	pet.SubmittedByUserID = &user.ID
	require.NoError(t, suite.repo.Create(ctx, pet))

	pets, _, err := suite.repo.List(ctx, application.PetFilter{SubmittedBy: user.ID}, domain.NewPage(1, 10, 10))
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.NotNil(t, pets[0].SubmittedBy)
	assert.Equal(t, user.Email, pets[0].SubmittedBy.Email)
}

func (suite *PetRepositoryTestSuite) Test_SaveReview_ApprovalUpdatesPetInSameTransaction() {
	ctx := context.Background()
	t := suite.T()
	user := testhelpers.CreateUser(t, suite.testDB.DB, domain.RoleUser)
	pet := testhelpers.CreatePet(t, suite.testDB.DB, domain.PetAvailable)

	app := &domain.AdoptionApplication{
		ID:            "7b0c7b8e-0000-4000-8000-000000000001",
		PetID:         pet.ID,
		UserID:        user.ID,
		ApplicantInfo: testhelpers.DefaultApplicantInfo(),
		Status:        domain.ReviewPending,
		CreatedAt:     pet.CreatedAt,
		UpdatedAt:     pet.CreatedAt,
	}
	require.NoError(t, suite.adoptionRepo.Create(ctx, app))

	require.NoError(t, app.Review(domain.ReviewApproved, nil))
	status := domain.PetPendingAdoption
	require.NoError(t, suite.adoptionRepo.SaveReview(ctx, app, &status))

	saved, err := suite.adoptionRepo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewApproved, saved.Status)
	assert.Equal(t, domain.PetPendingAdoption, saved.Pet.Status)
	assert.Equal(t, user.Name, saved.User.Name)
	assert.Equal(t, "Had dogs for 10 years", saved.ApplicantInfo.Experience)
}
