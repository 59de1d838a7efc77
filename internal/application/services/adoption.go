package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/google/uuid"
)

const ReviewPageSize = 20

type AdoptionService struct {
	adoptions application.AdoptionRepository
	pets      application.PetRepository
	logger    *slog.Logger
}

func NewAdoptionService(
	adoptions application.AdoptionRepository,
	pets application.PetRepository,
	logger *slog.Logger,
) *AdoptionService {
	return &AdoptionService{adoptions: adoptions, pets: pets, logger: logger}
}

func (s *AdoptionService) Apply(ctx context.Context, userID string, cmd ApplyAdoptionCommand) (*domain.AdoptionApplication, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	pet, err := findPet(ctx, s.pets, cmd.PetID)
	if err != nil {
		return nil, err
	}
	if !pet.AcceptsApplications() {
		return nil, domain.ErrPetUnavailable
	}

	now := time.Now().UTC()
	app := &domain.AdoptionApplication{
		ID:            uuid.New().String(),
		PetID:         pet.ID,
		UserID:        userID,
		ApplicantInfo: cmd.ApplicantInfo,
		Status:        domain.ReviewPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.adoptions.Create(ctx, app); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("adoption application submitted",
		"application_id", app.ID,
		"pet_id", pet.ID,
		"user_id", userID,
	)
	return app, nil
}

func (s *AdoptionService) Mine(ctx context.Context, userID string, status domain.ReviewStatus, page domain.Page) (domain.PageResult[*domain.AdoptionApplication], error) {
	return s.List(ctx, application.ReviewFilter{Status: status, UserID: userID}, page)
}

func (s *AdoptionService) List(ctx context.Context, filter application.ReviewFilter, page domain.Page) (domain.PageResult[*domain.AdoptionApplication], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.PageResult[*domain.AdoptionApplication]{}, application.NewInvalidInputError(domain.NewInvalidStatusError("adoption", string(filter.Status)))
	}
	items, total, err := s.adoptions.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[*domain.AdoptionApplication]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

// Review records the admin decision. A request that approves also marks the pet PENDING_ADOPTION.
func (s *AdoptionService) Review(ctx context.Context, id string, cmd ReviewCommand) (*domain.AdoptionApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Application")
	}
	app, err := s.adoptions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewNotFoundError("Application")
		}
		return nil, application.NewInternalError(err)
	}

	requested := reviewStatus(cmd.Status)
	if err := app.Review(requested, cmd.AdminNote); err != nil {
		return nil, application.NewInvalidInputError(err)
	}

	// Only an explicit approval touches the pet; a note-only edit must not
	// pull an adopted pet back to PENDING_ADOPTION.
	var petStatus *domain.PetStatus
	if requested == domain.ReviewApproved {
		status := domain.PetPendingAdoption
		petStatus = &status
	}

	if err := s.adoptions.SaveReview(ctx, app, petStatus); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("adoption application reviewed",
		"application_id", app.ID,
		"pet_id", app.PetID,
		"status", app.Status,
	)
	return app, nil
}

// findPet resolves a live pet for the public and user flows.
func findPet(ctx context.Context, pets application.PetRepository, id string) (*domain.Pet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Pet")
	}
	pet, err := pets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewNotFoundError("Pet")
		}
		return nil, application.NewInternalError(err)
	}
	if pet.IsDeleted {
		return nil, application.NewNotFoundError("Pet")
	}
	return pet, nil
}
