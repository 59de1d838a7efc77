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

type InquiryService struct {
	inquiries application.InquiryRepository
	pets      application.PetRepository
	logger    *slog.Logger
}

func NewInquiryService(
	inquiries application.InquiryRepository,
	pets application.PetRepository,
	logger *slog.Logger,
) *InquiryService {
	return &InquiryService{inquiries: inquiries, pets: pets, logger: logger}
}

// Create records a public question about a pet.
func (s *InquiryService) Create(ctx context.Context, cmd CreateInquiryCommand) (*domain.AdoptionInquiry, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	pet, err := findPet(ctx, s.pets, cmd.PetID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	inquiry := &domain.AdoptionInquiry{
		ID:        uuid.New().String(),
		PetID:     pet.ID,
		Name:      cmd.Name,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Message:   cmd.Message,
		Status:    domain.InquiryNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, application.NewInternalError(err)
	}
	s.logger.Info("inquiry received", "inquiry_id", inquiry.ID, "pet_id", pet.ID)
	return inquiry, nil
}

func (s *InquiryService) List(ctx context.Context, status domain.InquiryStatus, page domain.Page) (domain.PageResult[*domain.AdoptionInquiry], error) {
	if status != "" && !status.Valid() {
		return domain.PageResult[*domain.AdoptionInquiry]{}, application.NewInvalidInputError(domain.NewInvalidStatusError("inquiry", string(status)))
	}
	items, total, err := s.inquiries.List(ctx, status, page)
	if err != nil {
		return domain.PageResult[*domain.AdoptionInquiry]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

func (s *InquiryService) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.AdoptionInquiry, error) {
	if !status.Valid() {
		return nil, application.NewInvalidInputError(domain.NewInvalidStatusError("inquiry", string(status)))
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Inquiry")
	}
	inquiry, err := s.inquiries.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewNotFoundError("Inquiry")
		}
		return nil, application.NewInternalError(err)
	}
	return inquiry, nil
}
