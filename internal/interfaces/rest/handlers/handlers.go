package handlers

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/shelter-api/internal/application/services"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
)

// Services groups the application services the handlers call.
type Services struct {
	Auth       *services.AuthService
	Users      *services.UserService
	Pets       *services.PetService
	Adoptions  *services.AdoptionService
	Inquiries  *services.InquiryService
	Volunteers *services.VolunteerService
	Events     *services.EventService
	Stories    *services.StoryService
	Donations  *services.DonationService
	Analytics  *services.AnalyticsService
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	svc             Services
	health          HealthChecker
	redirectBaseURL string
	errs            *rest.ErrorWriter
	logger          *slog.Logger
}

// NewHandlers wires the HTTP layer. redirectBaseURL is where payer browsers land
// after a gateway redirect callback.
func NewHandlers(
	svc Services,
	health HealthChecker,
	redirectBaseURL string,
	errs *rest.ErrorWriter,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		svc:             svc,
		health:          health,
		redirectBaseURL: redirectBaseURL,
		errs:            errs,
		logger:          logger,
	}
}
