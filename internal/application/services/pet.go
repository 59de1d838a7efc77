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

const (
	PublicPetPageSize = 9
	AdminPetPageSize  = 20
)

type PetService struct {
	pets   application.PetRepository
	logger *slog.Logger
}

func NewPetService(pets application.PetRepository, logger *slog.Logger) *PetService {
	return &PetService{pets: pets, logger: logger}
}

// ListPublic returns adoptable pets. Status and visibility in filter are overridden.
func (s *PetService) ListPublic(ctx context.Context, filter application.PetFilter, page domain.Page) (domain.PageResult[*domain.Pet], error) {
	filter.Status = domain.PetAvailable
	filter.IncludeHidden = false
	filter.SubmittedBy = ""
	filter.Search = ""
	return s.list(ctx, filter, page)
}

func (s *PetService) Get(ctx context.Context, id string) (*domain.Pet, error) {
	pet, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet.IsDeleted {
		return nil, application.NewNotFoundError("Pet")
	}
	return pet, nil
}

// Submit records a user's pet for admin review.
func (s *PetService) Submit(ctx context.Context, userID string, cmd SubmitPetCommand) (*domain.Pet, error) {
	pet, err := s.newPet(cmd, domain.PetPendingReview)
	if err != nil {
		return nil, err
	}
	pet.SubmittedByUserID = &userID

	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, application.NewInternalError(err)
	}
	s.logger.Info("pet submitted for review", "pet_id", pet.ID, "user_id", userID)
	return pet, nil
}

func (s *PetService) MySubmissions(ctx context.Context, userID string, page domain.Page) (domain.PageResult[*domain.Pet], error) {
	return s.list(ctx, application.PetFilter{SubmittedBy: userID}, page)
}

func (s *PetService) UpdateMySubmission(ctx context.Context, userID, petID string, patch domain.PetPatch) (*domain.Pet, error) {
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return nil, err
	}
	if err := pet.ApplyOwnerEdit(patch); err != nil {
		return nil, err
	}
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, s.wrap(err)
	}
	return pet, nil
}

func (s *PetService) DeleteMySubmission(ctx context.Context, userID, petID string) error {
	pet, err := s.owned(ctx, userID, petID)
	if err != nil {
		return err
	}
	if err := pet.Withdraw(); err != nil {
		return err
	}
	if err := s.pets.Update(ctx, pet); err != nil {
		return s.wrap(err)
	}
	s.logger.Info("pet submission withdrawn", "pet_id", pet.ID, "user_id", userID)
	return nil
}

// AdminList sees every pet that is not deleted, with submitter details.
func (s *PetService) AdminList(ctx context.Context, filter application.PetFilter, page domain.Page) (domain.PageResult[*domain.Pet], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.PageResult[*domain.Pet]{}, application.NewInvalidInputError(domain.NewInvalidStatusError("pet", string(filter.Status)))
	}
	filter.IncludeHidden = false
	return s.list(ctx, filter, page)
}

// AdminCreate adds a pet straight to the adoptable listing.
func (s *PetService) AdminCreate(ctx context.Context, cmd SubmitPetCommand) (*domain.Pet, error) {
	pet, err := s.newPet(cmd, domain.PetAvailable)
	if err != nil {
		return nil, err
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, application.NewInternalError(err)
	}
	s.logger.Info("pet created", "pet_id", pet.ID)
	return pet, nil
}

func (s *PetService) AdminUpdate(ctx context.Context, petID string, patch domain.PetPatch) (*domain.Pet, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, application.NewInvalidInputError(domain.NewInvalidStatusError("pet", string(*patch.Status)))
	}
	pet, err := s.Get(ctx, petID)
	if err != nil {
		return nil, err
	}
	from := pet.Status
	pet.Apply(patch)
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, s.wrap(err)
	}
	if from != pet.Status {
		s.logger.Info("pet status changed", "pet_id", pet.ID, "from", from, "to", pet.Status)
	}
	return pet, nil
}

func (s *PetService) AdminDelete(ctx context.Context, petID string) error {
	pet, err := s.Get(ctx, petID)
	if err != nil {
		return err
	}
	pet.SoftDelete()
	if err := s.pets.Update(ctx, pet); err != nil {
		return s.wrap(err)
	}
	s.logger.Info("pet deleted", "pet_id", pet.ID)
	return nil
}

func (s *PetService) list(ctx context.Context, filter application.PetFilter, page domain.Page) (domain.PageResult[*domain.Pet], error) {
	items, total, err := s.pets.List(ctx, filter, page)
	if err != nil {
		return domain.PageResult[*domain.Pet]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

func (s *PetService) newPet(cmd SubmitPetCommand, status domain.PetStatus) (*domain.Pet, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	photos := cmd.Photos
	if photos == nil {
		photos = []string{}
	}
	now := time.Now().UTC()
	return &domain.Pet{
		ID:           uuid.New().String(),
		Name:         cmd.Name,
		Species:      cmd.Species,
		Breed:        cmd.Breed,
		Age:          cmd.Age,
		Size:         cmd.Size,
		Gender:       cmd.Gender,
		Description:  cmd.Description,
		MedicalNotes: trimmedOrNil(cmd.MedicalNotes),
		SpecialNeeds: cmd.SpecialNeeds,
		Photos:       photos,
		Status:       status,
		OwnerContact: cmd.OwnerContact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// owned loads a live submission and checks it belongs to userID.
func (s *PetService) owned(ctx context.Context, userID, petID string) (*domain.Pet, error) {
	pet, err := s.Get(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.SubmittedByUserID == nil || *pet.SubmittedByUserID != userID {
		return nil, application.NewForbiddenError("Not authorized to modify this pet")
	}
	return pet, nil
}

func (s *PetService) find(ctx context.Context, id string) (*domain.Pet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Pet")
	}
	pet, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap(err)
	}
	return pet, nil
}

func (s *PetService) wrap(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return application.NewNotFoundError("Pet")
	}
	return application.NewInternalError(err)
}
