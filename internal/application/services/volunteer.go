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

type VolunteerService struct {
	volunteers application.VolunteerRepository
	logger     *slog.Logger
}

func NewVolunteerService(volunteers application.VolunteerRepository, logger *slog.Logger) *VolunteerService {
	return &VolunteerService{volunteers: volunteers, logger: logger}
}

func (s *VolunteerService) Apply(ctx context.Context, cmd ApplyVolunteerCommand) (*domain.VolunteerApplication, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	interests := cmd.Interests
	if interests == nil {
		interests = []string{}
	}

	now := time.Now().UTC()
	app := &domain.VolunteerApplication{
		ID:           uuid.New().String(),
		Name:         cmd.Name,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
		Address:      trimmedOrNil(cmd.Address),
		Availability: cmd.Availability,
		Interests:    interests,
		Notes:        trimmedOrNil(cmd.Notes),
		Status:       domain.ReviewPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.volunteers.Create(ctx, app); err != nil {
		return nil, application.NewInternalError(err)
	}
	s.logger.Info("volunteer application received", "application_id", app.ID)
	return app, nil
}

func (s *VolunteerService) List(ctx context.Context, status domain.ReviewStatus, page domain.Page) (domain.PageResult[*domain.VolunteerApplication], error) {
	if status != "" && !status.Valid() {
		return domain.PageResult[*domain.VolunteerApplication]{}, application.NewInvalidInputError(domain.NewInvalidStatusError("volunteer", string(status)))
	}
	items, total, err := s.volunteers.List(ctx, status, page)
	if err != nil {
		return domain.PageResult[*domain.VolunteerApplication]{}, application.NewInternalError(err)
	}
	return domain.NewPageResult(items, page, total), nil
}

func (s *VolunteerService) Review(ctx context.Context, id string, cmd ReviewCommand) (*domain.VolunteerApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, application.NewNotFoundError("Application")
	}
	app, err := s.volunteers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, application.NewNotFoundError("Application")
		}
		return nil, application.NewInternalError(err)
	}
	if err := app.Review(reviewStatus(cmd.Status), cmd.AdminNote); err != nil {
		return nil, application.NewInvalidInputError(err)
	}
	if err := s.volunteers.Update(ctx, app); err != nil {
		return nil, application.NewInternalError(err)
	}
	s.logger.Info("volunteer application reviewed", "application_id", app.ID, "status", app.Status)
	return app, nil
}
